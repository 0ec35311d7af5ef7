// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"neotech/internal/config"
	"neotech/internal/db"
	"neotech/internal/model"
)

// NewDB opens a migrated SQLite database in a per-test temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "neotech_test.sqlite"),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// CreateCategory inserts a category.
func CreateCategory(t *testing.T, gdb *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	if err := gdb.Create(c).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

// CreateProduct inserts an active product. createdAt orders listings deterministically.
func CreateProduct(t *testing.T, gdb *gorm.DB, categoryID *uint, name string, priceCents int64, createdAt time.Time) *model.Product {
	t.Helper()
	p := &model.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: name + " description",
		PriceCents:  priceCents,
		Active:      true,
		CreatedAt:   createdAt,
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

// CreateUser inserts a user with an already hashed password.
func CreateUser(t *testing.T, gdb *gorm.DB, email, passwordHash string, isAdmin bool) *model.User {
	t.Helper()
	u := &model.User{Name: "Test", Email: email, PasswordHash: passwordHash, IsAdmin: isAdmin}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"neotech/internal/config"
	"neotech/internal/db"
	"neotech/internal/logging"
	"neotech/internal/model"
	"neotech/internal/repository"
	"neotech/internal/service"
)

//go:embed defaults/*.json
var defaults embed.FS

// SeedAdmin is the admin.json layout.
type SeedAdmin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedCategory is one entry of categories.json.
type SeedCategory struct {
	Name string `json:"name"`
}

// SeedProduct is one entry of products.json. Category refers to a category by name.
type SeedProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Active      *bool  `json:"active"`
}

// Summary counts what a run inserted.
type Summary struct {
	AdminCreated      bool
	CategoriesCreated int
	ProductsCreated   int
	ProductsSkipped   int
}

func main() {
	logging.Info().Msg("starting seed")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal().Err(err).Msg("run migrations")
	}
	logging.Info().Str("driver", cfg.Database.Driver).Msg("database migrations completed")

	summary, err := Run(context.Background(), gormDB, cfg.SeedDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("seed failed")
	}

	logging.Info().
		Bool("admin_created", summary.AdminCreated).
		Int("categories_created", summary.CategoriesCreated).
		Int("products_created", summary.ProductsCreated).
		Int("products_skipped", summary.ProductsSkipped).
		Msg("seed completed")
}

// Run seeds the admin user, categories and products. Running it again inserts nothing new.
func Run(ctx context.Context, gormDB *gorm.DB, dir string) (*Summary, error) {
	var admin SeedAdmin
	if err := load(dir, "admin.json", &admin); err != nil {
		return nil, err
	}
	var categories []SeedCategory
	if err := load(dir, "categories.json", &categories); err != nil {
		return nil, err
	}
	var products []SeedProduct
	if err := load(dir, "products.json", &products); err != nil {
		return nil, err
	}

	summary := &Summary{}
	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB), admin)
	if err != nil {
		return nil, err
	}
	summary.AdminCreated = created

	ids, n, err := seedCategories(ctx, repository.NewCategoryRepository(gormDB), categories)
	if err != nil {
		return nil, err
	}
	summary.CategoriesCreated = n

	summary.ProductsCreated, summary.ProductsSkipped, err = seedProducts(ctx, repository.NewProductRepository(gormDB), ids, products)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// load reads name from dir, falling back to the embedded default when the file is absent.
func load(dir, name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = defaults.ReadFile("defaults/" + name)
		if err == nil {
			logging.Debug().Str("file", name).Msg("using built-in seed data")
		}
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func seedAdmin(ctx context.Context, repo repository.UserRepository, admin SeedAdmin) (bool, error) {
	if admin.Email == "" || admin.Password == "" {
		return false, errors.New("admin.json needs email and password")
	}
	hash, err := service.HashPassword(admin.Password)
	if err != nil {
		return false, err
	}
	user := &model.User{Name: admin.Name, Email: admin.Email, PasswordHash: hash, IsAdmin: true}
	created, err := repo.FirstOrCreateByEmail(ctx, user)
	if err != nil {
		return false, fmt.Errorf("seed admin %s: %w", admin.Email, err)
	}
	if !created && !user.IsAdmin {
		logging.Warn().Str("email", admin.Email).Msg("seed admin email belongs to a non-admin user, left unchanged")
	}
	return created, nil
}

func seedCategories(ctx context.Context, repo repository.CategoryRepository, categories []SeedCategory) (map[string]uint, int, error) {
	before, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	ids := make(map[string]uint, len(categories))
	for _, c := range categories {
		if c.Name == "" {
			continue
		}
		category, err := repo.FirstOrCreateByName(ctx, c.Name)
		if err != nil {
			return nil, 0, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		ids[c.Name] = category.ID
	}

	after, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	return ids, int(after - before), nil
}

func seedProducts(ctx context.Context, repo repository.ProductRepository, categories map[string]uint, products []SeedProduct) (created, skipped int, err error) {
	for _, p := range products {
		product := &model.Product{
			Name:        p.Name,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			Active:      p.Active == nil || *p.Active,
		}
		if p.ImageURL != "" {
			url := p.ImageURL
			product.ImageURL = &url
		}
		if p.Category != "" {
			id, ok := categories[p.Category]
			if !ok {
				logging.Warn().Str("product", p.Name).Str("category", p.Category).Msg("unknown category, product skipped")
				skipped++
				continue
			}
			product.CategoryID = &id
		}

		ok, err := repo.FirstOrCreateByName(ctx, product)
		if err != nil {
			return created, skipped, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		if ok {
			created++
		}
	}
	return created, skipped, nil
}

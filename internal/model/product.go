package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry priced in minor currency units.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PriceCents  int64     `json:"price_cents" gorm:"not null"`
	ImageURL    *string   `json:"image_url" gorm:"size:1024"`
	Active      bool      `json:"active" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	// Read-only projections filled by joins and aggregates.
	CategoryName string `json:"category_name,omitempty" gorm:"->;-:migration"`
	Sold         int64  `json:"sold,omitempty" gorm:"->;-:migration"`

	PriceDisplay string `json:"price_display" gorm:"-"`
}

// AfterFind fills the display fields.
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.Decorate()
	return nil
}

// Decorate fills the display fields of a product that was not loaded by gorm.
func (p *Product) Decorate() {
	p.PriceDisplay = FormatMinor(p.PriceCents)
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle state. Admins may set any non-empty value.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
)

func (s OrderStatus) String() string { return string(s) }

// MaxStatusLength bounds admin-entered status values.
const MaxStatusLength = 32

// Order is a checkout attempt and, once verified, a paid purchase.
type Order struct {
	ID                uint        `json:"id" gorm:"primaryKey"`
	UserID            uint        `json:"user_id" gorm:"not null;index"`
	Status            OrderStatus `json:"status" gorm:"size:32;not null;default:'PENDING';index"`
	TotalCents        int64       `json:"total_cents" gorm:"not null"`
	PaystackReference *string     `json:"paystack_reference" gorm:"size:128;uniqueIndex"`
	CreatedAt         time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	UserEmail string `json:"user_email,omitempty" gorm:"->;-:migration"`

	TotalDisplay string `json:"total_display" gorm:"-"`
}

// AfterFind fills the display fields.
func (o *Order) AfterFind(tx *gorm.DB) error {
	o.TotalDisplay = FormatMinor(o.TotalCents)
	return nil
}

// OrderItem is one cart line frozen at checkout. UnitPriceCents never follows later price edits.
type OrderItem struct {
	ID             uint  `json:"id" gorm:"primaryKey"`
	OrderID        uint  `json:"order_id" gorm:"not null;index"`
	ProductID      uint  `json:"product_id" gorm:"not null;index"`
	Quantity       int   `json:"quantity" gorm:"not null"`
	UnitPriceCents int64 `json:"unit_price_cents" gorm:"not null"`
}

// LineTotal is quantity times the snapshotted unit price.
func (i OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.UnitPriceCents
}

// SumItems totals the given lines.
func SumItems(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

package model

import "time"

// EventActionView marks a product detail page view.
const EventActionView = "view"

// Event is an append-only record of a customer interaction.
type Event struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ProductID uint      `json:"product_id" gorm:"index"`
	Action    string    `json:"action" gorm:"size:32;not null"`
	CreatedAt time.Time `json:"created_at"`
}

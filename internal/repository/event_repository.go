package repository

import (
	"context"

	"gorm.io/gorm"

	"neotech/internal/model"
)

// EventRepository appends interaction events.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create appends an event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

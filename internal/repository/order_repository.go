package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"neotech/internal/model"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	SetReference(ctx context.Context, id uint, reference string) error
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems writes the order row and then its items in one transaction.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(items, 100).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// FindByID finds an order with its items.
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// SetReference stores the gateway reference on an order.
func (r *orderRepository) SetReference(ctx context.Context, id uint, reference string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"paystack_reference": reference})
}

// UpdateStatus sets the status and bumps updated_at.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *orderRepository) updateColumns(ctx context.Context, id uint, cols map[string]interface{}) error {
	cols["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAll lists every order with the buyer's email, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("orders.*, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").Order("orders.id DESC").
		Find(&orders).Error
	return orders, err
}

// ListByUser lists a customer's orders with items, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// Count returns the number of orders.
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

// CountByStatus returns the number of orders in status.
func (r *orderRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

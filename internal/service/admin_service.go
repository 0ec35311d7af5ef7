package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "neotech/internal/errors"
	"neotech/internal/model"
	"neotech/internal/repository"
)

// Dashboard holds the back-office counters.
type Dashboard struct {
	Products   int64 `json:"products"`
	Categories int64 `json:"categories"`
	Orders     int64 `json:"orders"`
	PaidOrders int64 `json:"paid_orders"`
}

// ProductInput is the editable part of a product.
type ProductInput struct {
	CategoryID  *uint
	Name        string
	Description string
	PriceCents  int64
	ImageURL    *string
	Active      bool
}

// ProductInvalidator drops cached product reads after a write.
type ProductInvalidator interface {
	InvalidateProduct(ctx context.Context, id uint)
}

// AdminService is the back-office over catalog and orders. Callers enforce admin access.
type AdminService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	Orders(ctx context.Context) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, id uint, status string) (*model.Order, error)
}

type adminService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	cache      ProductInvalidator
}

// NewAdminService builds the back-office service.
func NewAdminService(products repository.ProductRepository, categories repository.CategoryRepository, orders repository.OrderRepository, cache ProductInvalidator) AdminService {
	return &adminService{products: products, categories: categories, orders: orders, cache: cache}
}

func (s *adminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error
	if d.Products, err = s.products.Count(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if d.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if d.Orders, err = s.orders.Count(ctx); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if d.PaidOrders, err = s.orders.CountByStatus(ctx, model.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("count paid orders: %w", err)
	}
	return &d, nil
}

func (s *adminService) Products(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return nonNil(products), nil
}

// Product returns a product regardless of its active flag.
func (s *adminService) Product(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *adminService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	product := &model.Product{}
	apply(product, in)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product.Decorate()
	return product, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	product, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	apply(product, in)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.cache.InvalidateProduct(ctx, id)
	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return updated, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.cache.InvalidateProduct(ctx, id)
	return nil
}

func (s *adminService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}

func apply(p *model.Product, in ProductInput) {
	p.CategoryID = in.CategoryID
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.ImageURL = in.ImageURL
	p.Active = in.Active
}

func (s *adminService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return nonNil(categories), nil
}

func (s *adminService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{Name: strings.TrimSpace(name)}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes the category; its products keep a dangling category id.
func (s *adminService) DeleteCategory(ctx context.Context, id uint) error {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	for _, p := range products {
		if p.CategoryID != nil && *p.CategoryID == id {
			s.cache.InvalidateProduct(ctx, p.ID)
		}
	}
	return nil
}

func (s *adminService) Orders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return nonNil(orders), nil
}

// SetOrderStatus overrides the status with any non-blank value up to MaxStatusLength.
func (s *adminService) SetOrderStatus(ctx context.Context, id uint, status string) (*model.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" || len(status) > model.MaxStatusLength {
		return nil, apperrors.ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, id, model.OrderStatus(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	return order, nil
}

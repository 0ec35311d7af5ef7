package repository

import (
	"context"

	"gorm.io/gorm"

	"neotech/internal/model"
)

// RecommendLimit caps the related-products list.
const RecommendLimit = 6

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	ListActiveByCategory(ctx context.Context, categoryID uint) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Recommend(ctx context.Context, product *model.Product, limit int) ([]model.Product, error)
	FirstOrCreateByName(ctx context.Context, product *model.Product) (created bool, err error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// withCategory selects products joined with their category name.
func (r *productRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

// Create creates a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update saves every column of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{ID: product.ID}).
		Select("category_id", "name", "description", "price_cents", "image_url", "active").
		Updates(product).Error
}

// Delete removes a product. Past order items keep their product_id and price snapshot.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

// FindByID finds a product by ID with its category name.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.withCategory(ctx).Where("products.id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs returns the products that exist among ids, active or not.
func (r *productRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListActive lists active products, newest first.
func (r *productRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.withCategory(ctx).
		Where("products.active = ?", true).
		Order("products.created_at DESC").Order("products.id DESC").
		Find(&products).Error
	return products, err
}

// ListActiveByCategory lists active products in a category, newest first.
func (r *productRepository) ListActiveByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND category_id = ?", true, categoryID).
		Order("created_at DESC").Order("id DESC").
		Find(&products).Error
	return products, err
}

// ListAll lists every product for the admin console, newest first.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.withCategory(ctx).
		Order("products.created_at DESC").Order("products.id DESC").
		Find(&products).Error
	return products, err
}

// Recommend returns up to limit other active products of the same category ranked by units
// sold, then recency. A product without a category has no recommendations.
func (r *productRepository) Recommend(ctx context.Context, product *model.Product, limit int) ([]model.Product, error) {
	if product == nil || product.CategoryID == nil {
		return []model.Product{}, nil
	}
	if limit <= 0 {
		limit = RecommendLimit
	}

	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.*, COALESCE(SUM(order_items.quantity), 0) AS sold").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Where("products.active = ? AND products.category_id = ? AND products.id <> ?", true, *product.CategoryID, product.ID).
		Group("products.id").
		Order("sold DESC").Order("products.created_at DESC").Order("products.id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FirstOrCreateByName inserts product unless one with the same name and category exists.
func (r *productRepository) FirstOrCreateByName(ctx context.Context, product *model.Product) (bool, error) {
	q := r.db.WithContext(ctx).Where("name = ?", product.Name)
	if product.CategoryID == nil {
		q = q.Where("category_id IS NULL")
	} else {
		q = q.Where("category_id = ?", *product.CategoryID)
	}
	res := q.FirstOrCreate(product)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Count returns the number of products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"neotech/internal/auth"
	"neotech/internal/cache"
	"neotech/internal/cart"
	apperrors "neotech/internal/errors"
	"neotech/internal/logging"
	"neotech/internal/model"
	"neotech/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// HomeView is the storefront landing page.
type HomeView struct {
	Categories []model.Category `json:"categories"`
	Products   []model.Product  `json:"products"`
}

// ProductView is a product detail page with related products.
type ProductView struct {
	Product         *model.Product  `json:"product"`
	Recommendations []model.Product `json:"recommendations"`
}

// CategoryView is a category page.
type CategoryView struct {
	Category *model.Category `json:"category"`
	Products []model.Product `json:"products"`
}

// CartLine is one resolved cart entry.
type CartLine struct {
	Product          model.Product `json:"product"`
	Quantity         int           `json:"quantity"`
	LineTotalCents   int64         `json:"line_total_cents"`
	LineTotalDisplay string        `json:"line_total_display"`
}

// CartView is the cart resolved against the catalog. Unknown product ids are skipped.
type CartView struct {
	Lines        []CartLine `json:"lines"`
	TotalCents   int64      `json:"total_cents"`
	TotalDisplay string     `json:"total_display"`
}

// CatalogService exposes read-side catalog operations.
type CatalogService interface {
	Home(ctx context.Context) (*HomeView, error)
	Product(ctx context.Context, id uint, viewer *auth.Principal) (*ProductView, error)
	Category(ctx context.Context, id uint) (*CategoryView, error)
	Cart(ctx context.Context, c cart.Cart) (*CartView, error)
	InvalidateProduct(ctx context.Context, id uint)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	events     repository.EventRepository
	cache      cache.Store
}

// NewCatalogService builds a CatalogService with repositories and cache.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, events repository.EventRepository, store cache.Store) CatalogService {
	return &catalogService{products: products, categories: categories, events: events, cache: store}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *catalogService) Home(ctx context.Context) (*HomeView, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &HomeView{Categories: nonNil(categories), Products: nonNil(products)}, nil
}

// Product loads a product through the cache, records a view for signed-in viewers and attaches
// recommendations.
func (s *catalogService) Product(ctx context.Context, id uint, viewer *auth.Principal) (*ProductView, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer != nil {
		event := &model.Event{UserID: viewer.ID, ProductID: product.ID, Action: model.EventActionView}
		if err := s.events.Create(ctx, event); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Uint("product_id", product.ID).Msg("record view event failed")
		}
	}

	recs, err := s.products.Recommend(ctx, product, repository.RecommendLimit)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return &ProductView{Product: product, Recommendations: recs}, nil
}

func (s *catalogService) findProduct(ctx context.Context, id uint) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, productCacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, productCacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

func (s *catalogService) Category(ctx context.Context, id uint) (*CategoryView, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	products, err := s.products.ListActiveByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}
	return &CategoryView{Category: category, Products: nonNil(products)}, nil
}

// Cart resolves the session cart. Lines follow ascending product id.
func (s *catalogService) Cart(ctx context.Context, c cart.Cart) (*CartView, error) {
	view := &CartView{Lines: []CartLine{}}
	products, err := s.products.FindByIDs(ctx, c.IDs())
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}
	for _, p := range products {
		qty := c.Quantity(p.ID)
		line := CartLine{Product: p, Quantity: qty, LineTotalCents: int64(qty) * p.PriceCents}
		line.LineTotalDisplay = model.FormatMinor(line.LineTotalCents)
		view.Lines = append(view.Lines, line)
		view.TotalCents += line.LineTotalCents
	}
	view.TotalDisplay = model.FormatMinor(view.TotalCents)
	return view, nil
}

// InvalidateProduct drops a cached product after an admin edit.
func (s *catalogService) InvalidateProduct(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, productCacheKey(id))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "neotech/internal/errors"
	"neotech/internal/model"
	"neotech/internal/testutil"
)

func TestAdminService_CategoryLifecycle(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	cat, err := f.admin.CreateCategory(ctx, " Gadgets ")
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", cat.Name)

	_, err = f.admin.CreateCategory(ctx, "Gadgets")
	assert.ErrorIs(t, err, apperrors.ErrCategoryExists)

	p, err := f.admin.CreateProduct(ctx, ProductInput{CategoryID: &cat.ID, Name: "Drone", PriceCents: 99000, Active: true})
	require.NoError(t, err)
	_, err = f.svc.Product(ctx, p.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.admin.DeleteCategory(ctx, cat.ID))
	cats, err := f.admin.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	// the product survives with a dangling category id
	view, err := f.svc.Product(ctx, p.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view.Product.CategoryID)
	assert.Empty(t, view.Product.CategoryName)
}

func TestAdminService_ProductLifecycle(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.admin.CreateProduct(ctx, ProductInput{CategoryID: ptr(uint(404)), Name: "X", PriceCents: 1})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	p, err := f.admin.CreateProduct(ctx, ProductInput{Name: "Laptop", PriceCents: 350000, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "3500.00", p.PriceDisplay)

	_, err = f.svc.Product(ctx, p.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 1, f.store.Len())

	updated, err := f.admin.UpdateProduct(ctx, p.ID, ProductInput{Name: "Laptop Pro", PriceCents: 400000, Active: false})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.False(t, updated.Active)
	assert.Zero(t, f.store.Len(), "edit invalidates the cached product")

	got, err := f.admin.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active, "admin sees inactive products")
	_, err = f.admin.Product(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	_, err = f.admin.UpdateProduct(ctx, 999, ProductInput{Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	list, err := f.admin.Products(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.admin.DeleteProduct(ctx, p.ID))
	_, err = f.svc.Product(ctx, p.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestAdminService_OrdersAndStatus(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "buyer@example.com", "x", false)
	order := &model.Order{UserID: user.ID, Status: model.OrderStatusPending, TotalCents: 10, CreatedAt: time.Now()}
	require.NoError(t, f.orders.CreateWithItems(ctx, order))

	got, err := f.admin.SetOrderStatus(ctx, order.ID, "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatus("SHIPPED"), got.Status)

	_, err = f.admin.SetOrderStatus(ctx, order.ID, "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	_, err = f.admin.SetOrderStatus(ctx, order.ID, strings.Repeat("X", model.MaxStatusLength+1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	_, err = f.admin.SetOrderStatus(ctx, 999, model.OrderStatusPaid.String())
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)

	orders, err := f.admin.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "buyer@example.com", orders[0].UserEmail)

	_, err = f.admin.SetOrderStatus(ctx, order.ID, "PAID")
	require.NoError(t, err)
	d, err := f.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Dashboard{Products: 0, Categories: 0, Orders: 1, PaidOrders: 1}, d)
}

func ptr[T any](v T) *T {
	return &v
}

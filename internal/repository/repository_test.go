package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"neotech/internal/model"
	"neotech/internal/testutil"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func addOrder(t *testing.T, repo OrderRepository, items ...model.OrderItem) *model.Order {
	t.Helper()
	order := &model.Order{UserID: 1, Status: model.OrderStatusPending, TotalCents: model.SumItems(items), Items: items}
	require.NoError(t, repo.CreateWithItems(context.Background(), order))
	return order
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewUserRepository(gdb)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@b.c", PasswordHash: "x"}))
	err := repo.Create(ctx, &model.User{Email: "a@b.c", PasswordHash: "y"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var n int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByEmail(ctx, "nobody@b.c")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FirstOrCreateByEmail(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewUserRepository(gdb)
	ctx := context.Background()

	created, err := repo.FirstOrCreateByEmail(ctx, &model.User{Email: "admin@neotech.local", PasswordHash: "h", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, created)

	again := &model.User{Email: "admin@neotech.local", PasswordHash: "other"}
	created, err = repo.FirstOrCreateByEmail(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "h", again.PasswordHash)
	assert.True(t, again.IsAdmin)
}

func TestProductRepository_ListingsAndCategoryJoin(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewProductRepository(gdb)
	ctx := context.Background()

	elec := testutil.CreateCategory(t, gdb, "Electronics")
	phone := testutil.CreateProduct(t, gdb, &elec.ID, "Phone", 150000, base)
	laptop := testutil.CreateProduct(t, gdb, &elec.ID, "Laptop", 350000, base.Add(time.Hour))
	hidden := testutil.CreateProduct(t, gdb, &elec.ID, "Hidden", 1, base.Add(2*time.Hour))
	require.NoError(t, gdb.Model(hidden).Update("active", false).Error)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, laptop.ID, active[0].ID)
	assert.Equal(t, "Electronics", active[0].CategoryName)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCat, err := repo.ListActiveByCategory(ctx, elec.ID)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	got, err := repo.FindByID(ctx, phone.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.CategoryName)

	found, err := repo.FindByIDs(ctx, []uint{phone.ID, 999, hidden.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_UpdateCanDeactivate(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewProductRepository(gdb)
	ctx := context.Background()

	p := testutil.CreateProduct(t, gdb, nil, "Jeans", 12000, base)
	p.Active = false
	p.PriceCents = 9000
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, int64(9000), got.PriceCents)
}

func TestProductRepository_DeleteCategoryOrphansProducts(t *testing.T) {
	gdb := testutil.NewDB(t)
	products := NewProductRepository(gdb)
	categories := NewCategoryRepository(gdb)
	ctx := context.Background()

	cat := testutil.CreateCategory(t, gdb, "Clothing")
	p := testutil.CreateProduct(t, gdb, &cat.ID, "T-Shirt", 5000, base)

	require.NoError(t, categories.Delete(ctx, cat.ID))

	got, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, cat.ID, *got.CategoryID)
	assert.Empty(t, got.CategoryName)
}

func TestProductRepository_Recommend(t *testing.T) {
	gdb := testutil.NewDB(t)
	products := NewProductRepository(gdb)
	orders := NewOrderRepository(gdb)
	ctx := context.Background()

	elec := testutil.CreateCategory(t, gdb, "Electronics")
	cloth := testutil.CreateCategory(t, gdb, "Clothing")

	target := testutil.CreateProduct(t, gdb, &elec.ID, "Phone", 150000, base)
	old := testutil.CreateProduct(t, gdb, &elec.ID, "Old", 100, base.Add(1*time.Hour))
	newer := testutil.CreateProduct(t, gdb, &elec.ID, "Newer", 100, base.Add(2*time.Hour))
	best := testutil.CreateProduct(t, gdb, &elec.ID, "Best", 100, base.Add(3*time.Hour))
	inactive := testutil.CreateProduct(t, gdb, &elec.ID, "Inactive", 100, base.Add(4*time.Hour))
	require.NoError(t, gdb.Model(inactive).Update("active", false).Error)
	testutil.CreateProduct(t, gdb, &cloth.ID, "Shirt", 100, base.Add(5*time.Hour))

	addOrder(t, orders,
		model.OrderItem{ProductID: best.ID, Quantity: 5, UnitPriceCents: 100},
		model.OrderItem{ProductID: target.ID, Quantity: 9, UnitPriceCents: 100},
		model.OrderItem{ProductID: inactive.ID, Quantity: 50, UnitPriceCents: 100},
	)
	addOrder(t, orders, model.OrderItem{ProductID: old.ID, Quantity: 2, UnitPriceCents: 100})

	recs, err := products.Recommend(ctx, target, RecommendLimit)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []uint{best.ID, old.ID, newer.ID}, []uint{recs[0].ID, recs[1].ID, recs[2].ID})
	assert.Equal(t, int64(5), recs[0].Sold)
	assert.Equal(t, int64(0), recs[2].Sold)

	again, err := products.Recommend(ctx, target, RecommendLimit)
	require.NoError(t, err)
	assert.Equal(t, recs, again)
}

func TestProductRepository_RecommendLimitAndEmpty(t *testing.T) {
	gdb := testutil.NewDB(t)
	products := NewProductRepository(gdb)
	ctx := context.Background()

	cat := testutil.CreateCategory(t, gdb, "Bulk")
	target := testutil.CreateProduct(t, gdb, &cat.ID, "Target", 1, base)
	for i := 0; i < 8; i++ {
		testutil.CreateProduct(t, gdb, &cat.ID, "Sibling", 1, base.Add(time.Duration(i+1)*time.Minute))
	}

	recs, err := products.Recommend(ctx, target, RecommendLimit)
	require.NoError(t, err)
	assert.Len(t, recs, RecommendLimit)

	orphan := testutil.CreateProduct(t, gdb, nil, "Orphan", 1, base)
	recs, err = products.Recommend(ctx, orphan, RecommendLimit)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	lonely := testutil.CreateCategory(t, gdb, "Lonely")
	solo := testutil.CreateProduct(t, gdb, &lonely.ID, "Solo", 1, base)
	recs, err = products.Recommend(ctx, solo, RecommendLimit)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestOrderRepository_CreateWithItemsAndStatus(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewOrderRepository(gdb)
	ctx := context.Background()

	order := addOrder(t, repo,
		model.OrderItem{ProductID: 1, Quantity: 2, UnitPriceCents: 150000},
		model.OrderItem{ProductID: 2, Quantity: 1, UnitPriceCents: 5000},
	)
	require.NotZero(t, order.ID)

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.Nil(t, got.PaystackReference)
	require.Len(t, got.Items, 2)
	assert.Equal(t, got.TotalCents, model.SumItems(got.Items))

	require.NoError(t, repo.SetReference(ctx, order.ID, "neotech-1-abc"))
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderStatusPaid))

	got, err = repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PaystackReference)
	assert.Equal(t, "neotech-1-abc", *got.PaystackReference)
	assert.Equal(t, model.OrderStatusPaid, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, model.OrderStatusPaid), gorm.ErrRecordNotFound)

	paid, err := repo.CountByStatus(ctx, model.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), paid)
}

func TestOrderRepository_CreateWithItemsRollsBack(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewOrderRepository(gdb)
	ctx := context.Background()

	// the duplicate item id makes the second insert fail inside the transaction
	order := &model.Order{UserID: 1, Status: model.OrderStatusPending, TotalCents: 2, Items: []model.OrderItem{
		{ID: 7, ProductID: 1, Quantity: 1, UnitPriceCents: 1},
		{ID: 7, ProductID: 2, Quantity: 1, UnitPriceCents: 1},
	}}
	require.Error(t, repo.CreateWithItems(ctx, order))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrderRepository_Listings(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewOrderRepository(gdb)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "buyer@example.com", "h", false)
	first := &model.Order{UserID: u.ID, Status: model.OrderStatusPending, TotalCents: 1, CreatedAt: base}
	second := &model.Order{UserID: u.ID, Status: model.OrderStatusPending, TotalCents: 2, CreatedAt: base.Add(time.Hour)}
	other := &model.Order{UserID: u.ID + 1, Status: model.OrderStatusPending, TotalCents: 3, CreatedAt: base.Add(2 * time.Hour)}
	for _, o := range []*model.Order{first, second, other} {
		require.NoError(t, repo.CreateWithItems(ctx, o))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, other.ID, all[0].ID)
	assert.Equal(t, "buyer@example.com", all[1].UserEmail)

	mine, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
}

func TestEventRepository_Create(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewEventRepository(gdb)

	require.NoError(t, repo.Create(context.Background(), &model.Event{UserID: 1, ProductID: 2, Action: model.EventActionView}))

	var n int64
	require.NoError(t, gdb.Model(&model.Event{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCategoryRepository(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewCategoryRepository(gdb)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Category{Name: "Zeta"}))
	require.NoError(t, repo.Create(ctx, &model.Category{Name: "Alpha"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.Category{Name: "Alpha"}), gorm.ErrDuplicatedKey)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)

	c, err := repo.FirstOrCreateByName(ctx, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, c.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

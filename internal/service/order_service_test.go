package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"neotech/internal/auth"
	"neotech/internal/cart"
	apperrors "neotech/internal/errors"
	"neotech/internal/model"
	"neotech/internal/paystack"
	"neotech/internal/repository"
	"neotech/internal/testutil"
)

type orderFixture struct {
	db      *gorm.DB
	orders  repository.OrderRepository
	gateway *MockGateway
	svc     OrderService
	buyer   *auth.Principal
	phone   *model.Product
	shirt   *model.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cat := testutil.CreateCategory(t, gdb, "Electronics")
	user := testutil.CreateUser(t, gdb, "buyer@example.com", "x", false)

	f := &orderFixture{
		db:      gdb,
		orders:  repository.NewOrderRepository(gdb),
		gateway: new(MockGateway),
		buyer:   &auth.Principal{ID: user.ID, Email: user.Email},
		phone:   testutil.CreateProduct(t, gdb, &cat.ID, "Smartphone", 150000, at),
		shirt:   testutil.CreateProduct(t, gdb, nil, "T-Shirt", 5000, at),
	}
	f.svc = NewOrderService(repository.NewProductRepository(gdb), f.orders, f.gateway, OrderConfig{
		BaseURL:         "http://shop.test",
		ReferencePrefix: "neotech",
	})
	return f
}

func (f *orderFixture) orderCount(t *testing.T) int64 {
	t.Helper()
	n, err := f.orders.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestOrderService_CheckoutSuccess(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	var c cart.Cart
	c.Add(f.phone.ID)
	c.Add(f.phone.ID)
	c.Add(f.shirt.ID)
	c.Add(9999)

	var sent paystack.InitializeRequest
	f.gateway.On("Initialize", mock.Anything, mock.AnythingOfType("paystack.InitializeRequest")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(paystack.InitializeRequest) }).
		Return(initialized("https://checkout.paystack.com/xyz"), nil)

	res, err := f.svc.Checkout(ctx, f.buyer, &c)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/xyz", res.AuthorizationURL)
	assert.True(t, c.IsEmpty())

	assert.Equal(t, "buyer@example.com", sent.Email)
	assert.Equal(t, int64(305000), sent.Amount)
	assert.True(t, strings.HasPrefix(sent.Reference, "neotech-"))
	assert.Equal(t, "http://shop.test/paystack/callback?order="+strconv.FormatUint(uint64(res.Order.ID), 10), sent.CallbackURL)

	stored, err := f.orders.FindByID(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, stored.Status)
	require.NotNil(t, stored.PaystackReference)
	assert.Equal(t, sent.Reference, *stored.PaystackReference)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, stored.TotalCents, model.SumItems(stored.Items))
	assert.Equal(t, int64(305000), stored.TotalCents)

	// later price edits never touch the snapshot
	require.NoError(t, f.db.Model(f.phone).Update("price_cents", 1).Error)
	stored, err = f.orders.FindByID(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(305000), model.SumItems(stored.Items))

	f.gateway.AssertExpectations(t)
}

func TestOrderService_CheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Checkout(context.Background(), f.buyer, &cart.Cart{})
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	var unknown cart.Cart
	unknown.Add(424242)
	_, err = f.svc.Checkout(context.Background(), f.buyer, &unknown)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
	assert.Equal(t, 1, unknown.Len())

	assert.Zero(t, f.orderCount(t))
	f.gateway.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything)
}

func TestOrderService_CheckoutGatewayFailureKeepsCart(t *testing.T) {
	f := newOrderFixture(t)

	var c cart.Cart
	c.Add(f.shirt.ID)
	f.gateway.On("Initialize", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	res, err := f.svc.Checkout(context.Background(), f.buyer, &c)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrPaymentInit)
	assert.Equal(t, 1, c.Quantity(f.shirt.ID))

	// the orphaned order stays PENDING without a reference
	orders, err := f.orders.ListByUser(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, model.OrderStatusPending, orders[0].Status)
	assert.Nil(t, orders[0].PaystackReference)
}

func (f *orderFixture) pendingOrder(t *testing.T, reference string) *model.Order {
	t.Helper()
	order := &model.Order{
		UserID:     f.buyer.ID,
		Status:     model.OrderStatusPending,
		TotalCents: 5000,
		Items:      []model.OrderItem{{ProductID: f.shirt.ID, Quantity: 1, UnitPriceCents: 5000}},
	}
	require.NoError(t, f.orders.CreateWithItems(context.Background(), order))
	if reference != "" {
		require.NoError(t, f.orders.SetReference(context.Background(), order.ID, reference))
	}
	return order
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	tests := []struct {
		name       string
		reference  string
		verify     *paystack.VerifyResponse
		verifyErr  error
		wantErr    error
		wantStatus model.OrderStatus
	}{
		{"success status", "ref-ok", verified("success", ""), nil, nil, model.OrderStatusPaid},
		{"gateway response successful", "ref-ok", verified("", "Successful"), nil, nil, model.OrderStatusPaid},
		{"declined", "ref-ok", verified("failed", "Declined"), nil, ErrPaymentNotConfirmed, model.OrderStatusPending},
		{"verify error", "ref-ok", nil, errors.New("timeout"), nil, model.OrderStatusPending},
		{"reference mismatch", "ref-other", nil, nil, ErrReferenceMismatch, model.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			order := f.pendingOrder(t, "ref-ok")
			if tt.verify != nil || tt.verifyErr != nil {
				f.gateway.On("Verify", mock.Anything, tt.reference).Return(tt.verify, tt.verifyErr)
			}

			got, err := f.svc.ConfirmPayment(context.Background(), order.ID, tt.reference)
			switch {
			case tt.wantStatus == model.OrderStatusPaid:
				require.NoError(t, err)
				assert.Equal(t, model.OrderStatusPaid, got.Status)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}

			stored, err := f.orders.FindByID(context.Background(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
			f.gateway.AssertExpectations(t)
		})
	}
}

func TestOrderService_ConfirmPaymentUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.svc.ConfirmPayment(context.Background(), 777, "ref")
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	f.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestOrderService_ConfirmPaymentIdempotent(t *testing.T) {
	f := newOrderFixture(t)
	order := f.pendingOrder(t, "ref-1")
	f.gateway.On("Verify", mock.Anything, "ref-1").Return(verified("success", "Successful"), nil).Once()

	_, err := f.svc.ConfirmPayment(context.Background(), order.ID, "ref-1")
	require.NoError(t, err)
	again, err := f.svc.ConfirmPayment(context.Background(), order.ID, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, again.Status)
	f.gateway.AssertNumberOfCalls(t, "Verify", 1)
}

func TestOrderService_AccountOrders(t *testing.T) {
	f := newOrderFixture(t)
	f.pendingOrder(t, "")
	f.pendingOrder(t, "")

	orders, err := f.svc.AccountOrders(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	none, err := f.svc.AccountOrders(context.Background(), 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.svc.Order(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

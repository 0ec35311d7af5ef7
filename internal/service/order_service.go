package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"neotech/internal/auth"
	"neotech/internal/cart"
	apperrors "neotech/internal/errors"
	"neotech/internal/logging"
	"neotech/internal/metrics"
	"neotech/internal/model"
	"neotech/internal/paystack"
	"neotech/internal/repository"
)

var (
	// ErrReferenceMismatch is returned when a callback reference does not belong to the order.
	ErrReferenceMismatch = errors.New("payment reference does not match order")
	// ErrPaymentNotConfirmed is returned when the gateway does not report the payment as successful.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
)

// PaymentGateway is the hosted-checkout provider.
type PaymentGateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}

// CheckoutResult carries the pending order and where to send the browser.
type CheckoutResult struct {
	Order            *model.Order
	AuthorizationURL string
}

// OrderConfig holds the settings checkout needs to build references and callback URLs.
type OrderConfig struct {
	BaseURL         string
	ReferencePrefix string
}

// OrderService turns carts into orders and settles them with the gateway.
type OrderService interface {
	Checkout(ctx context.Context, buyer *auth.Principal, c *cart.Cart) (*CheckoutResult, error)
	ConfirmPayment(ctx context.Context, orderID uint, reference string) (*model.Order, error)
	Order(ctx context.Context, id uint) (*model.Order, error)
	AccountOrders(ctx context.Context, userID uint) ([]model.Order, error)
}

type orderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	gateway  PaymentGateway
	cfg      OrderConfig
	now      func() time.Time
}

// NewOrderService creates the order engine.
func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, gateway PaymentGateway, cfg OrderConfig) OrderService {
	return &orderService{products: products, orders: orders, gateway: gateway, cfg: cfg, now: time.Now}
}

// Checkout snapshots the cart into a PENDING order and starts a gateway transaction. The cart
// is cleared only when the gateway hands back an authorization URL.
func (s *orderService) Checkout(ctx context.Context, buyer *auth.Principal, c *cart.Cart) (*CheckoutResult, error) {
	if c == nil || c.IsEmpty() {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return nil, apperrors.ErrEmptyCart
	}

	products, err := s.products.FindByIDs(ctx, c.IDs())
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve cart: %w", err)
	}
	if len(products) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return nil, apperrors.ErrEmptyCart
	}

	items := make([]model.OrderItem, 0, len(products))
	for _, p := range products {
		items = append(items, model.OrderItem{
			ProductID:      p.ID,
			Quantity:       c.Quantity(p.ID),
			UnitPriceCents: p.PriceCents,
		})
	}
	order := &model.Order{
		UserID:     buyer.ID,
		Status:     model.OrderStatusPending,
		TotalCents: model.SumItems(items),
		Items:      items,
	}
	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create order: %w", err)
	}

	log := logging.Ctx(ctx).With().Uint("order_id", order.ID).Logger()
	reference := s.newReference()
	res, err := s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       buyer.Email,
		Amount:      order.TotalCents,
		Reference:   reference,
		CallbackURL: fmt.Sprintf("%s/paystack/callback?order=%d", s.cfg.BaseURL, order.ID),
	})
	if err != nil {
		log.Error().Err(err).Msg("paystack initialize failed")
		metrics.CheckoutsTotal.WithLabelValues("init_failed").Inc()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPaymentInit, err)
	}

	if err := s.orders.SetReference(ctx, order.ID, reference); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store reference: %w", err)
	}
	order.PaystackReference = &reference
	c.Clear()

	log.Info().Str("reference", reference).Int64("total_cents", order.TotalCents).Msg("checkout started")
	metrics.CheckoutsTotal.WithLabelValues("redirected").Inc()
	return &CheckoutResult{Order: order, AuthorizationURL: res.Data.AuthorizationURL}, nil
}

func (s *orderService) newReference() string {
	return fmt.Sprintf("%s-%d-%s", s.cfg.ReferencePrefix, s.now().UnixMilli(), uuid.NewString())
}

// ConfirmPayment verifies the callback reference and marks the order PAID. Every failure leaves
// the order untouched.
func (s *orderService) ConfirmPayment(ctx context.Context, orderID uint, reference string) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.PaymentConfirmationsTotal.WithLabelValues("unknown_order").Inc()
			return nil, apperrors.ErrOrderNotFound
		}
		metrics.PaymentConfirmationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.PaystackReference == nil || *order.PaystackReference != reference {
		metrics.PaymentConfirmationsTotal.WithLabelValues("mismatch").Inc()
		return nil, ErrReferenceMismatch
	}
	if order.Status == model.OrderStatusPaid {
		metrics.PaymentConfirmationsTotal.WithLabelValues("paid").Inc()
		return order, nil
	}

	res, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		metrics.PaymentConfirmationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !res.Successful() {
		metrics.PaymentConfirmationsTotal.WithLabelValues("declined").Inc()
		return nil, ErrPaymentNotConfirmed
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
		metrics.PaymentConfirmationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	order.Status = model.OrderStatusPaid

	logging.Ctx(ctx).Info().Uint("order_id", order.ID).Str("reference", reference).Msg("order paid")
	metrics.PaymentConfirmationsTotal.WithLabelValues("paid").Inc()
	return order, nil
}

func (s *orderService) Order(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *orderService) AccountOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return nonNil(orders), nil
}

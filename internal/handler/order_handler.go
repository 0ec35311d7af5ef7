package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"neotech/internal/auth"
	apperrors "neotech/internal/errors"
	"neotech/internal/logging"
	"neotech/internal/model"
	"neotech/internal/service"
)

// OrderHandler drives checkout, the gateway callback and the customer's order pages.
type OrderHandler struct {
	orders   service.OrderService
	sessions *auth.Sessions
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders service.OrderService, sessions *auth.Sessions) *OrderHandler {
	return &OrderHandler{orders: orders, sessions: sessions}
}

// SuccessResponse is the payment confirmation page.
type SuccessResponse struct {
	OrderID uint              `json:"order_id"`
	Status  model.OrderStatus `json:"status,omitempty"`
}

// AccountResponse is the customer's account page.
type AccountResponse struct {
	User   *auth.Principal `json:"user"`
	Orders []model.Order   `json:"orders"`
}

// Checkout godoc
// @Summary Turn the cart into an order and redirect to the payment page
// @Tags orders
// @Success 303 "Redirect to the gateway, or to /cart when the cart is empty"
// @Failure 500 {string} string "Paystack init failed"
// @Router /checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	session := auth.FromContext(c)
	ctx := c.Request().Context()

	res, err := h.orders.Checkout(ctx, session.User, &session.Cart)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmptyCart):
			return c.Redirect(http.StatusSeeOther, "/cart")
		case errors.Is(err, apperrors.ErrPaymentInit):
			return c.String(http.StatusInternalServerError, "Paystack init failed")
		}
		return respondError(err)
	}

	// the cart was cleared; persist that before leaving for the gateway
	if err := h.sessions.Save(c, session); err != nil {
		logging.Ctx(ctx).Error().Err(err).Uint("order_id", res.Order.ID).Msg("save session after checkout failed")
	}
	return c.Redirect(http.StatusSeeOther, res.AuthorizationURL)
}

// Callback godoc
// @Summary Paystack return URL
// @Description Verifies the transaction. Any failure sends the browser back to the cart.
// @Tags orders
// @Param order query int true "Order ID"
// @Param reference query string true "Payment reference"
// @Success 303 "Redirect to /success or /cart"
// @Failure 400 {string} string "Missing params"
// @Router /paystack/callback [get]
func (h *OrderHandler) Callback(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		reference = c.QueryParam("trxref")
	}
	orderID, err := strconv.ParseUint(c.QueryParam("order"), 10, 64)
	if reference == "" || err != nil || orderID == 0 {
		return c.String(http.StatusBadRequest, "Missing params")
	}

	order, err := h.orders.ConfirmPayment(c.Request().Context(), uint(orderID), reference)
	if err != nil {
		logging.Ctx(c.Request().Context()).Warn().Err(err).
			Uint64("order_id", orderID).Str("reference", reference).Msg("payment not confirmed")
		return c.Redirect(http.StatusSeeOther, "/cart")
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/success?order=%d", order.ID))
}

// Success godoc
// @Summary Payment confirmation page
// @Description The status is shown only to the order's owner.
// @Tags orders
// @Produce json
// @Param order query int true "Order ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /success [get]
func (h *OrderHandler) Success(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.QueryParam("order"), 10, 64)
	if err != nil || orderID == 0 {
		return badRequest("order required")
	}

	res := SuccessResponse{OrderID: uint(orderID)}
	if user := auth.FromContext(c).User; user != nil {
		if order, err := h.orders.Order(c.Request().Context(), uint(orderID)); err == nil && order.UserID == user.ID {
			res.Status = order.Status
		}
	}
	return c.JSON(http.StatusOK, res)
}

// Account godoc
// @Summary The signed-in customer's orders
// @Tags orders
// @Produce json
// @Success 200 {object} AccountResponse
// @Success 303 "Redirect to /login when signed out"
// @Router /account [get]
func (h *OrderHandler) Account(c echo.Context) error {
	user := auth.FromContext(c).User
	orders, err := h.orders.AccountOrders(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, AccountResponse{User: user, Orders: orders})
}

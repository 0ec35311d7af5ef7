// Package metrics registers the storefront's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutsTotal counts checkout attempts by outcome: redirected, empty_cart, init_failed, error.
	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neotech",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	// PaymentConfirmationsTotal counts gateway callbacks by outcome: paid, declined, mismatch, unknown_order, error.
	PaymentConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neotech",
		Name:      "payment_confirmations_total",
		Help:      "Payment callback outcomes.",
	}, []string{"outcome"})

	// GatewayRequestsTotal counts outbound Paystack calls.
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neotech",
		Name:      "gateway_requests_total",
		Help:      "Outbound payment gateway requests by operation and result.",
	}, []string{"operation", "result"})

	// GatewayBreakerState is 0 closed, 1 half-open, 2 open.
	GatewayBreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "neotech",
		Name:      "gateway_breaker_state",
		Help:      "Circuit breaker state of the payment gateway client.",
	})

	// HTTPRequestsTotal counts served requests by route template.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neotech",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)

// Middleware records HTTPRequestsTotal. 404s share one route label.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" || status == http.StatusNotFound {
				route = "unmatched"
			}
			HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			return err
		}
	}
}

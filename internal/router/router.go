package router

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"neotech/internal/auth"
	"neotech/internal/authz"
	"neotech/internal/config"
	apperrors "neotech/internal/errors"
	"neotech/internal/handler"
	"neotech/internal/logging"
	"neotech/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.Sessions,
	enforcer *authz.Enforcer,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
) {
	e.HTTPErrorHandler = errorHandler
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(metrics.Middleware())
	if cfg.Security.RateLimitPerMinute > 0 {
		e.Use(rateLimiter(cfg.Security.RateLimitPerMinute))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Everything below carries the browser session.
	site := e.Group("", sessions.Middleware())

	site.GET("/", catalogHandler.Home)
	site.GET("/product/:id", catalogHandler.Product)
	site.GET("/category/:id", catalogHandler.Category)

	var forms []echo.MiddlewareFunc
	if cfg.Security.CSRFEnabled {
		forms = append(forms, csrf(cfg.Session.Secure))
	}
	site.GET("/register", authHandler.RegisterForm, forms...)
	site.POST("/register", authHandler.Register, forms...)
	site.GET("/login", authHandler.LoginForm, forms...)
	site.POST("/login", authHandler.Login, forms...)
	site.POST("/logout", authHandler.Logout)

	site.POST("/cart/add", cartHandler.Add)
	site.GET("/cart", cartHandler.View)

	requireAuth := auth.RequireAuth()
	site.POST("/checkout", orderHandler.Checkout, requireAuth)
	site.GET("/account", orderHandler.Account, requireAuth)
	site.GET("/success", orderHandler.Success)

	// The gateway redirect is trusted only after server-side verification.
	e.GET("/paystack/callback", orderHandler.Callback)

	admin := site.Group("/admin", enforcer.RequireAdmin())
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/products", adminHandler.Products)
	admin.POST("/products/new", adminHandler.CreateProduct)
	admin.POST("/products/:id/edit", adminHandler.UpdateProduct)
	admin.POST("/products/:id/delete", adminHandler.DeleteProduct)
	admin.GET("/categories", adminHandler.Categories)
	admin.POST("/categories/new", adminHandler.CreateCategory)
	admin.POST("/categories/:id/delete", adminHandler.DeleteCategory)
	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/:id/status", adminHandler.SetOrderStatus)
}

func csrf(secure bool) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

func rateLimiter(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many requests",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// errorHandler renders every handler error, and echo's own (unknown routes, bad methods, panics), in the API error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := apperrors.ErrorResponse{Error: "internal server error"}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case apperrors.ErrorResponse:
			body = m
		case string:
			body.Error = m
		default:
			body.Error = http.StatusText(status)
		}
	}
	if body.Code == "" {
		body.Code = strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	if status >= http.StatusInternalServerError {
		logging.Ctx(c.Request().Context()).Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

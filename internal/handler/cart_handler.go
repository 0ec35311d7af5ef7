package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"neotech/internal/auth"
	"neotech/internal/service"
)

// CartHandler manages the session cart.
type CartHandler struct {
	catalog  service.CatalogService
	sessions *auth.Sessions
}

// NewCartHandler creates a cart handler.
func NewCartHandler(catalog service.CatalogService, sessions *auth.Sessions) *CartHandler {
	return &CartHandler{catalog: catalog, sessions: sessions}
}

// AddToCartRequest names the product to add. Storefront forms post productId; product_id is the API name.
type AddToCartRequest struct {
	ProductID      uint `json:"product_id" form:"product_id"`
	ProductIDCamel uint `json:"productId" form:"productId"`
}

func (r AddToCartRequest) productID() uint {
	if r.ProductID != 0 {
		return r.ProductID
	}
	return r.ProductIDCamel
}

// AddToCartResponse echoes the cart after the add.
type AddToCartResponse struct {
	OK   bool         `json:"ok"`
	Cart map[uint]int `json:"cart"`
}

// Add godoc
// @Summary Add one unit of a product to the cart
// @Description The id is not checked against the catalog; unknown ids are dropped at checkout.
// @Tags cart
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body AddToCartRequest true "Product"
// @Success 200 {object} AddToCartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid product id")
	}
	productID := req.productID()
	if productID == 0 {
		return badRequest("product_id required")
	}

	session := auth.FromContext(c)
	session.Cart.Add(productID)
	if err := h.sessions.Save(c, session); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, AddToCartResponse{OK: true, Cart: session.Cart.Items()})
}

// View godoc
// @Summary Cart contents with line totals
// @Tags cart
// @Produce json
// @Success 200 {object} service.CartView
// @Router /cart [get]
func (h *CartHandler) View(c echo.Context) error {
	view, err := h.catalog.Cart(c.Request().Context(), auth.FromContext(c).Cart)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, view)
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"neotech/internal/model"
	"neotech/internal/service"
)

// AdminHandler serves the back-office. The router guards it with the admin policy.
type AdminHandler struct {
	admin service.AdminService
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ProductRequest is the product create/edit form. A zero category id and an empty image mean none.
// Active defaults to true on create, so hiding a new product takes an explicit active=false (or 0, off, no).
type ProductRequest struct {
	CategoryID  uint     `json:"category_id" form:"category_id"`
	Name        string   `json:"name" form:"name" validate:"required,max=255"`
	Description string   `json:"description" form:"description"`
	PriceCents  int64    `json:"price_cents" form:"price_cents" validate:"gte=0"`
	ImageURL    string   `json:"image_url" form:"image_url" validate:"omitempty,max=1024"`
	Active      checkbox `json:"active" form:"active" swaggertype:"boolean"`
}

// checkbox is a form boolean that also takes the on/off values browsers send for check boxes.
type checkbox bool

// UnmarshalParam implements echo.BindUnmarshaler.
func (b *checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "yes":
		*b = true
		return nil
	case "off", "no", "":
		*b = false
		return nil
	}
	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("active: %q is not a boolean", param)
	}
	*b = checkbox(v)
	return nil
}

func (r ProductRequest) input() service.ProductInput {
	in := service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Active:      bool(r.Active),
	}
	if r.CategoryID != 0 {
		id := r.CategoryID
		in.CategoryID = &id
	}
	if r.ImageURL != "" {
		url := r.ImageURL
		in.ImageURL = &url
	}
	return in
}

// CategoryRequest is the category create form.
type CategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=255"`
}

// StatusRequest is the order status override form.
type StatusRequest struct {
	Status string `json:"status" form:"status"`
}

// ProductsResponse lists products together with the categories a form can pick from.
type ProductsResponse struct {
	Products   []model.Product  `json:"products"`
	Categories []model.Category `json:"categories"`
}

// Dashboard godoc
// @Summary Back-office counters
// @Tags admin
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// Products godoc
// @Summary All products, newest first
// @Tags admin
// @Produce json
// @Success 200 {object} ProductsResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/products [get]
func (h *AdminHandler) Products(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.admin.Products(ctx)
	if err != nil {
		return respondError(err)
	}
	categories, err := h.admin.Categories(ctx)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ProductsResponse{Products: products, Categories: categories})
}

// CreateProduct godoc
// @Summary Create a product
// @Description New products are active unless the request sends active=false.
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Param request body ProductRequest true "Product"
// @Success 303 "Redirect to /admin/products"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/new [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	req := ProductRequest{Active: true}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	if _, err := h.admin.CreateProduct(c.Request().Context(), req.input()); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/products")
}

// UpdateProduct godoc
// @Summary Edit a product
// @Description Fields left out of the request keep their current values.
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product"
// @Success 303 "Redirect to /admin/products"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id}/edit [post]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest("invalid product id")
	}
	ctx := c.Request().Context()

	current, err := h.admin.Product(ctx, id)
	if err != nil {
		return respondError(err)
	}
	req := ProductRequest{
		Name:        current.Name,
		Description: current.Description,
		PriceCents:  current.PriceCents,
		Active:      checkbox(current.Active),
	}
	if current.CategoryID != nil {
		req.CategoryID = *current.CategoryID
	}
	if current.ImageURL != nil {
		req.ImageURL = *current.ImageURL
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	if _, err := h.admin.UpdateProduct(ctx, id, req.input()); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/products")
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags admin
// @Param id path int true "Product ID"
// @Success 303 "Redirect to /admin/products"
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id}/delete [post]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest("invalid product id")
	}
	if err := h.admin.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/products")
}

// Categories godoc
// @Summary All categories by name
// @Tags admin
// @Produce json
// @Success 200 {array} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/categories [get]
func (h *AdminHandler) Categories(c echo.Context) error {
	categories, err := h.admin.Categories(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Param request body CategoryRequest true "Category"
// @Success 303 "Redirect to /admin/categories"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/categories/new [post]
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("name required")
	}
	if _, err := h.admin.CreateCategory(c.Request().Context(), req.Name); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

// DeleteCategory godoc
// @Summary Delete a category; its products keep a dangling category id
// @Tags admin
// @Param id path int true "Category ID"
// @Success 303 "Redirect to /admin/categories"
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id}/delete [post]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest("invalid category id")
	}
	if err := h.admin.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

// Orders godoc
// @Summary All orders with customer email, newest first
// @Tags admin
// @Produce json
// @Success 200 {array} model.Order
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	orders, err := h.admin.Orders(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// SetOrderStatus godoc
// @Summary Override an order's status
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Param id path int true "Order ID"
// @Param request body StatusRequest true "Status"
// @Success 303 "Redirect to /admin/orders"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/status [post]
func (h *AdminHandler) SetOrderStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest("invalid order id")
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if _, err := h.admin.SetOrderStatus(c.Request().Context(), id, req.Status); err != nil {
		return respondError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/orders")
}

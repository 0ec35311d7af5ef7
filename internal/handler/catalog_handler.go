package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"neotech/internal/auth"
	apperrors "neotech/internal/errors"
	"neotech/internal/service"
)

// CatalogHandler serves the storefront pages.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Home godoc
// @Summary Storefront home
// @Tags catalog
// @Produce json
// @Success 200 {object} service.HomeView
// @Router / [get]
func (h *CatalogHandler) Home(c echo.Context) error {
	view, err := h.catalog.Home(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Product godoc
// @Summary Product detail with recommendations
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} service.ProductView
// @Failure 404 {object} errors.ErrorResponse
// @Router /product/{id} [get]
func (h *CatalogHandler) Product(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(apperrors.ErrProductNotFound)
	}
	view, err := h.catalog.Product(c.Request().Context(), id, auth.FromContext(c).User)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Category godoc
// @Summary Category page
// @Tags catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} service.CategoryView
// @Failure 404 {object} errors.ErrorResponse
// @Router /category/{id} [get]
func (h *CatalogHandler) Category(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondError(apperrors.ErrCategoryNotFound)
	}
	view, err := h.catalog.Category(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, view)
}

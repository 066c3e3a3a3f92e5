package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcort/foodcort/internal/core/catalog"
)

// CatalogHandler serves the menu snapshot browsing clients build carts from.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Items returns the catalog snapshot. Prices are integer cents.
//
// @Summary      List menu items
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /api/items [get]
func (h *CatalogHandler) Items(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Items())
}

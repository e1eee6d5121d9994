package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// MenuHandler edits the dish prices of the tenant.  onChange runs after
// every successful write; the router uses it to drop the cached listing.
type MenuHandler struct {
	menu     MenuEditor
	onChange func(ctx context.Context, tenantID string)
}

func NewMenuHandler(menu MenuEditor, onChange func(ctx context.Context, tenantID string)) *MenuHandler {
	if menu == nil {
		panic("nil menu passed to NewMenuHandler")
	}
	if onChange == nil {
		onChange = func(context.Context, string) {}
	}
	return &MenuHandler{menu: menu, onChange: onChange}
}

type menuRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// List handles GET /v1/menu.
func (h *MenuHandler) List(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	items, err := h.menu.List(c.Request().Context(), tenant)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Put handles PUT /v1/menu: create or update the price of a dish by name.
func (h *MenuHandler) Put(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req menuRequest
	if err := c.Bind(&req); err != nil || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and price are required"})
	}
	ctx := c.Request().Context()
	item, err := h.menu.Set(ctx, tenant, req.Name, *req.Price)
	if err != nil {
		return writeError(c, err)
	}
	h.onChange(ctx, tenant)
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// Delete handles DELETE /v1/menu/:id.
func (h *MenuHandler) Delete(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()
	if err := h.menu.Delete(ctx, tenant, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	h.onChange(ctx, tenant)
	return c.NoContent(http.StatusNoContent)
}

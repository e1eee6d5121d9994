package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/service"
)

// MinutesHandler serves the call-minutes page: balance, auto-recharge
// preferences, pack checkout and consumption.
type MinutesHandler struct {
	minutes MinutesAccount
}

func NewMinutesHandler(minutes MinutesAccount) *MinutesHandler {
	if minutes == nil {
		panic("nil minutes passed to NewMinutesHandler")
	}
	return &MinutesHandler{minutes: minutes}
}

// Overview handles GET /v1/minutes.
func (h *MinutesHandler) Overview(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	ov, err := h.minutes.Overview(c.Request().Context(), tenant)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ov)
}

// Recharge handles GET /v1/minutes/recharges/:id.
func (h *MinutesHandler) Recharge(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	rc, err := h.minutes.Recharge(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rc)
}

// UpdateAutoRecharge handles PUT /v1/minutes/auto-recharge.
func (h *MinutesHandler) UpdateAutoRecharge(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.AutoRecharge
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.minutes.UpdateAutoRecharge(c.Request().Context(), tenant, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"auto_recharge": req})
}

type checkoutRequest struct {
	PackType string `json:"pack_type"`
}

// Checkout handles POST /v1/minutes/checkout.  The dashboard redirects the
// browser to the returned url.
func (h *MinutesHandler) Checkout(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req checkoutRequest
	if err := c.Bind(&req); err != nil || req.PackType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pack_type is required"})
	}
	res, err := h.minutes.StartCheckout(c.Request().Context(), tenant, req.PackType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"url": res.URL, "recharge_id": res.RechargeID, "session_id": res.SessionID})
}

type consumeRequest struct {
	Minutes     int    `json:"minutes"`
	Description string `json:"description"`
}

// Consume handles POST /v1/minutes/consume.
func (h *MinutesHandler) Consume(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req consumeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.minutes.Consume(c.Request().Context(), tenant, req.Minutes, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

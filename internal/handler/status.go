package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// StatusHandler serves the reservation and order lists of the dashboard
// and the status commands issued from them.
type StatusHandler struct {
	svc StatusCommands
}

func NewStatusHandler(svc StatusCommands) *StatusHandler {
	if svc == nil {
		panic("nil status service passed to NewStatusHandler")
	}
	return &StatusHandler{svc: svc}
}

type statusRequest struct {
	Status string `json:"status"`
}

// listParams reads the status and limit query parameters shared by both
// lists.  An unknown status is rejected rather than matching nothing; bad
// is the message to answer with in that case.
func listParams(c echo.Context, entity workflow.Entity) (status string, limit int, bad string) {
	status = strings.TrimSpace(c.QueryParam("status"))
	if status != "" && !workflow.ValidStatus(entity, status) {
		return "", 0, "invalid status filter"
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return "", 0, "invalid limit"
		}
		limit = n
	}
	return status, limit, ""
}

// ListReservations handles GET /v1/reservations?status=&date=&limit=.
func (h *StatusHandler) ListReservations(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	status, limit, bad := listParams(c, workflow.EntityReservation)
	if bad != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": bad})
	}
	items, err := h.svc.ListReservations(c.Request().Context(), tenant, repository.ReservationFilter{
		Status: status,
		Date:   strings.TrimSpace(c.QueryParam("date")),
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *StatusHandler) GetReservation(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	r, err := h.svc.GetReservation(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": r})
}

// PatchReservationStatus handles PATCH /v1/reservations/:id/status.
func (h *StatusHandler) PatchReservationStatus(c echo.Context) error {
	return h.patch(c, workflow.EntityReservation)
}

// ListOrders handles GET /v1/orders?status=&limit=.
func (h *StatusHandler) ListOrders(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	status, limit, bad := listParams(c, workflow.EntityOrder)
	if bad != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": bad})
	}
	items, err := h.svc.ListOrders(c.Request().Context(), tenant, repository.OrderFilter{Status: status, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetOrder handles GET /v1/orders/:id.
func (h *StatusHandler) GetOrder(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	o, err := h.svc.GetOrder(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": o})
}

// PatchOrderStatus handles PATCH /v1/orders/:id/status.
func (h *StatusHandler) PatchOrderStatus(c echo.Context) error {
	return h.patch(c, workflow.EntityOrder)
}

// AdvanceOrder handles POST /v1/orders/:id/advance: the order moves to
// the step after its current one.
func (h *StatusHandler) AdvanceOrder(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	res, err := h.svc.Advance(c.Request().Context(), tenant, workflow.EntityOrder, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *StatusHandler) patch(c echo.Context, entity workflow.Entity) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	to := strings.TrimSpace(req.Status)
	if to == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	res, err := h.svc.Apply(c.Request().Context(), tenant, entity, c.Param("id"), to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

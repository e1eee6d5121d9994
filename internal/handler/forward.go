package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
)

// ForwardHandler relays dashboard events to the automation platform on
// behalf of the authenticated tenant.
type ForwardHandler struct {
	relay EventRelay
	audit WebhookAuditor
}

func NewForwardHandler(relay EventRelay, audit WebhookAuditor) *ForwardHandler {
	if relay == nil {
		panic("nil relay passed to NewForwardHandler")
	}
	return &ForwardHandler{relay: relay, audit: audit}
}

type forwardRequest struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Send handles POST /v1/automation/events.
func (h *ForwardHandler) Send(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req forwardRequest
	if err := c.Bind(&req); err != nil || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type is required"})
	}
	entry := model.WebhookLog{WebhookType: "make", DataType: req.Type, UserID: strPtr(tenant), Status: model.WebhookError}

	status, err := h.relay.Forward(c.Request().Context(), service.ForwardEvent{
		Type:      req.Type,
		Data:      req.Data,
		UserID:    tenant,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		code := statusFor(err)
		logged := code
		if status != 0 {
			logged = status
		}
		record(c, h.audit, entry, logged, err.Error())
		log.Printf("[forward] failed type=%s tenant_id=%s err=%v", req.Type, tenant, err)
		if code == http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"success": false, "error": err.Error()})
		}
		return writeError(c, err)
	}

	entry.Status = model.WebhookSuccess
	record(c, h.audit, entry, status, "")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "event forwarded", "type": req.Type})
}

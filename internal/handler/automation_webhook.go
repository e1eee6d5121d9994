package handler

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// AutomationWebhookHandler receives reservations and orders taken by the
// call-automation platform.  The endpoint is not signed; a payload is
// only accepted when its tenant id resolves to an existing profile.
type AutomationWebhookHandler struct {
	intake AutomationIntake
	audit  WebhookAuditor
}

func NewAutomationWebhookHandler(intake AutomationIntake, audit WebhookAuditor) *AutomationWebhookHandler {
	if intake == nil {
		panic("nil intake passed to NewAutomationWebhookHandler")
	}
	return &AutomationWebhookHandler{intake: intake, audit: audit}
}

// Receive handles POST /webhooks/automation.
func (h *AutomationWebhookHandler) Receive(c echo.Context) error {
	entry := model.WebhookLog{WebhookType: "automation", DataType: "unknown"}

	body, err := readBody(c)
	if err != nil {
		record(c, h.audit, entry, http.StatusBadRequest, "unreadable body")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}
	req, err := service.ParseAutomationPayload(body)
	if err != nil {
		return h.fail(c, entry, err)
	}
	entry.DataType = string(req.Kind)
	entry.UserID = strPtr(req.TenantID)

	res, err := h.intake.Create(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, entry, err)
	}

	entry.Status = model.WebhookSuccess
	note := ""
	if len(res.Unpriced) > 0 {
		note = fmt.Sprintf("%d unpriced items: %s", len(res.Unpriced), strings.Join(res.Unpriced, ", "))
	}
	record(c, h.audit, entry, http.StatusOK, note)
	log.Printf("[webhook][automation] created type=%s id=%s tenant_id=%s", res.Kind, res.ID, req.TenantID)

	resp := echo.Map{
		"success":     true,
		"type":        res.Kind,
		"client_name": res.ClientName,
		"id":          res.ID,
	}
	if res.Kind == workflow.EntityOrder {
		resp["total_amount"] = res.Total.StringFixed(2)
		if len(res.Unpriced) > 0 {
			resp["unpriced_items"] = res.Unpriced
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AutomationWebhookHandler) fail(c echo.Context, entry model.WebhookLog, err error) error {
	code := statusFor(err)
	entry.Status = model.WebhookError
	record(c, h.audit, entry, code, err.Error())
	log.Printf("[webhook][automation] rejected type=%s status=%d err=%v", entry.DataType, code, err)
	if code == http.StatusInternalServerError {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}
	return writeError(c, err)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// StripeWebhookHandler receives payment provider events.  The raw body is
// authenticated before anything is parsed; an unverified request never
// reaches the reconciliation code.
type StripeWebhookHandler struct {
	payments PaymentEvents
	audit    WebhookAuditor
}

func NewStripeWebhookHandler(payments PaymentEvents, audit WebhookAuditor) *StripeWebhookHandler {
	if payments == nil {
		panic("nil payments passed to NewStripeWebhookHandler")
	}
	return &StripeWebhookHandler{payments: payments, audit: audit}
}

// Receive handles POST /webhooks/stripe and its /minutes alias.
func (h *StripeWebhookHandler) Receive(c echo.Context) error {
	entry := model.WebhookLog{WebhookType: "stripe", DataType: "unverified", Status: model.WebhookError}

	body, err := readBody(c)
	if err != nil {
		record(c, h.audit, entry, http.StatusBadRequest, "unreadable body")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}
	ev, err := h.payments.Verify(body, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		record(c, h.audit, entry, statusFor(err), err.Error())
		return writeError(c, err)
	}

	entry.DataType = ev.Type
	out, err := h.payments.Handle(c.Request().Context(), ev)
	entry.UserID = strPtr(out.TenantID)
	if err != nil && settled(err) {
		// Nothing to retry: the provider is told the event was received.
		record(c, h.audit, entry, http.StatusOK, err.Error())
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}
	if err != nil {
		record(c, h.audit, entry, statusFor(err), err.Error())
		return writeError(c, err)
	}

	entry.Status = out.Status
	msg := ""
	if out.Status != model.WebhookSuccess {
		msg = out.Detail
	}
	record(c, h.audit, entry, http.StatusOK, msg)
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

// settled reports whether a reconciliation error can never succeed on a
// redelivery: the recharge or tenant does not exist, or the record has
// already left the state the event expects.
func settled(err error) bool {
	switch statusFor(err) {
	case http.StatusNotFound, http.StatusConflict:
		return true
	}
	return false
}

package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// maxWebhookBody bounds the bytes read from a webhook request.
const maxWebhookBody = 1 << 20

func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
}

// record fills the response fields of entry and hands it to the auditor.
func record(c echo.Context, audit WebhookAuditor, entry model.WebhookLog, code int, message string) {
	if audit == nil {
		return
	}
	entry.ResponseStatus = &code
	if message != "" {
		entry.ErrorMessage = &message
	}
	audit.Record(c.Request().Context(), entry)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

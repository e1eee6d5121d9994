package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the notification centre.
type NotificationHandler struct {
	inbox NotificationInbox
}

func NewNotificationHandler(inbox NotificationInbox) *NotificationHandler {
	if inbox == nil {
		panic("nil inbox passed to NewNotificationHandler")
	}
	return &NotificationHandler{inbox: inbox}
}

// List handles GET /v1/notifications?unread=true.
func (h *NotificationHandler) List(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	items, err := h.inbox.List(c.Request().Context(), tenant, c.QueryParam("unread") == "true")
	if err != nil {
		return writeError(c, err)
	}
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items), "unread": unread})
}

// MarkRead handles PATCH /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.inbox.MarkRead(c.Request().Context(), tenant, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	n, err := h.inbox.MarkAllRead(c.Request().Context(), tenant)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StreamHandler pushes the change feed of the caller's tenant to the
// dashboard as server-sent events.
type StreamHandler struct {
	hub       ChangeStream
	keepAlive time.Duration
}

func NewStreamHandler(hub ChangeStream, keepAlive time.Duration) *StreamHandler {
	if hub == nil {
		panic("nil hub passed to NewStreamHandler")
	}
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	return &StreamHandler{hub: hub, keepAlive: keepAlive}
}

// Stream handles GET /v1/stream.  Each event is named after its table so
// the dashboard can refresh only the matching list.
func (h *StreamHandler) Stream(c echo.Context) error {
	tenant, ok := tenantOf(c)
	if !ok {
		return unauthorized(c)
	}
	events, cancel := h.hub.Subscribe(tenant)
	defer cancel()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	w.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()
	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Table, data); err != nil {
				return nil
			}
			w.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/handler"
)

// RegisterRoutes registers the unauthenticated probes.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
}

// RegisterWebhooks registers the inbound webhooks.  limit is the rate
// limiter applied to both; the Stripe endpoint keeps the /minutes path
// the minute-pack checkout was first configured with.
func RegisterWebhooks(e *echo.Echo, automation *handler.AutomationWebhookHandler, stripe *handler.StripeWebhookHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/webhooks", limit)
	g.POST("/automation", automation.Receive)
	g.POST("/stripe", stripe.Receive)
	g.POST("/stripe/minutes", stripe.Receive)
}

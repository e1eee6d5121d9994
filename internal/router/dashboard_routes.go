package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/handler"
	"github.com/iliyamo/restaurant-dashboard/internal/middleware"
)

// Dashboard bundles the handlers served under /v1.
type Dashboard struct {
	Status        *handler.StatusHandler
	Menu          *handler.MenuHandler
	Minutes       *handler.MinutesHandler
	Notifications *handler.NotificationHandler
	Forward       *handler.ForwardHandler
	Stream        *handler.StreamHandler
}

// RegisterDashboard registers the tenant-scoped dashboard API.  Every
// route requires a valid JWT; the tenant is the token subject.  cache
// wraps the menu listing only.
func RegisterDashboard(e *echo.Echo, d Dashboard, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAuthenticated, middleware.RoleService),
	)

	// ---- Reservations ----
	g.GET("/reservations", d.Status.ListReservations)
	g.GET("/reservations/:id", d.Status.GetReservation)
	g.PATCH("/reservations/:id/status", d.Status.PatchReservationStatus)

	// ---- Orders ----
	g.GET("/orders", d.Status.ListOrders)
	g.GET("/orders/:id", d.Status.GetOrder)
	g.PATCH("/orders/:id/status", d.Status.PatchOrderStatus)
	g.POST("/orders/:id/advance", d.Status.AdvanceOrder)

	// ---- Menu ----
	g.GET("/menu", d.Menu.List, cache)
	g.PUT("/menu", d.Menu.Put)
	g.DELETE("/menu/:id", d.Menu.Delete)

	// ---- Minutes ----
	g.GET("/minutes", d.Minutes.Overview)
	g.GET("/minutes/recharges/:id", d.Minutes.Recharge)
	g.PUT("/minutes/auto-recharge", d.Minutes.UpdateAutoRecharge)
	g.POST("/minutes/checkout", d.Minutes.Checkout)
	g.POST("/minutes/consume", d.Minutes.Consume)

	// ---- Notifications ----
	g.GET("/notifications", d.Notifications.List)
	g.PATCH("/notifications/:id/read", d.Notifications.MarkRead)
	g.POST("/notifications/read-all", d.Notifications.MarkAllRead)

	// ---- Automation platform ----
	g.POST("/automation/events", d.Forward.Send)

	g.GET("/stream", d.Stream.Stream)
}

package handler

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// StatusCommands reads reservations and orders and moves their status.
type StatusCommands interface {
	Apply(ctx context.Context, tenantID string, entity workflow.Entity, id, to string) (service.TransitionResult, error)
	Advance(ctx context.Context, tenantID string, entity workflow.Entity, id string) (service.TransitionResult, error)
	ListReservations(ctx context.Context, tenantID string, f repository.ReservationFilter) ([]model.Reservation, error)
	GetReservation(ctx context.Context, tenantID, id string) (model.Reservation, error)
	ListOrders(ctx context.Context, tenantID string, f repository.OrderFilter) ([]model.Order, error)
	GetOrder(ctx context.Context, tenantID, id string) (model.Order, error)
}

// AutomationIntake creates records from automation payloads.
type AutomationIntake interface {
	Create(ctx context.Context, req service.AutomationRequest) (service.IntakeResult, error)
}

// PaymentEvents verifies and applies payment provider events.
type PaymentEvents interface {
	Verify(payload []byte, signature string) (payment.Event, error)
	Handle(ctx context.Context, ev payment.Event) (service.PaymentOutcome, error)
}

// WebhookAuditor records the outcome of every webhook request.
type WebhookAuditor interface {
	Record(ctx context.Context, entry model.WebhookLog)
}

type MenuEditor interface {
	List(ctx context.Context, tenantID string) ([]model.MenuPrice, error)
	Set(ctx context.Context, tenantID, name string, price decimal.Decimal) (model.MenuPrice, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type MinutesAccount interface {
	Overview(ctx context.Context, tenantID string) (service.MinutesOverview, error)
	Recharge(ctx context.Context, tenantID, id string) (model.Recharge, error)
	UpdateAutoRecharge(ctx context.Context, tenantID string, in service.AutoRecharge) error
	StartCheckout(ctx context.Context, tenantID, packType string) (service.CheckoutResult, error)
	Consume(ctx context.Context, tenantID string, minutes int, description string) (service.ConsumeResult, error)
}

// EventRelay posts dashboard events to the automation platform.
type EventRelay interface {
	Forward(ctx context.Context, ev service.ForwardEvent) (int, error)
}

type NotificationInbox interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// ChangeStream hands out per-tenant subscriptions to the change feed.
type ChangeStream interface {
	Subscribe(tenantID string) (<-chan queue.ChangeEvent, func())
}

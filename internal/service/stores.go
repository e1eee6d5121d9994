// Package service holds the business operations of the dashboard: status
// transitions, automation intake, payment reconciliation, minutes and
// notifications.  Services depend on the small store interfaces below so
// they can be exercised without a database.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
)

type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetForOwner(ctx context.Context, id, restaurantID string) (model.Reservation, error)
	ListForOwner(ctx context.Context, restaurantID string, f repository.ReservationFilter) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id, restaurantID, from, to string) (bool, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetForOwner(ctx context.Context, id, restaurantID string) (model.Order, error)
	ListForOwner(ctx context.Context, restaurantID string, f repository.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id, restaurantID, from, to string) (bool, error)
}

type MenuStore interface {
	PricesFor(ctx context.Context, restaurantID string, names []string) (map[string]decimal.Decimal, error)
	List(ctx context.Context, restaurantID string) ([]model.MenuPrice, error)
	Upsert(ctx context.Context, restaurantID, name string, price decimal.Decimal) (model.MenuPrice, error)
	Delete(ctx context.Context, id, restaurantID string) error
}

type ProfileStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
	GetByID(ctx context.Context, userID string) (model.Profile, error)
	FindByContactEmail(ctx context.Context, email string) (string, error)
	AddMinutes(ctx context.Context, userID string, n int) error
	ConsumeMinutes(ctx context.Context, userID string, n int, description *string) (int, error)
	UpdateAutoRecharge(ctx context.Context, userID string, enabled bool, threshold int, packType *string) error
	ListConsumption(ctx context.Context, userID string, limit int) ([]model.MinutesConsumption, error)
}

type RechargeStore interface {
	Create(ctx context.Context, rc *model.Recharge) error
	AttachSession(ctx context.Context, id, userID, sessionID string) error
	GetForOwner(ctx context.Context, id, userID string) (model.Recharge, error)
	ListForOwner(ctx context.Context, userID string, limit int) ([]model.Recharge, error)
	Complete(ctx context.Context, id, userID, sessionID string, minutes int) (repository.CompleteResult, error)
	Fail(ctx context.Context, id, userID string) (bool, error)
}

type SubscriberStore interface {
	Activate(ctx context.Context, s model.Subscriber) (bool, error)
	Get(ctx context.Context, userID string) (model.Subscriber, error)
	TenantByCustomer(ctx context.Context, customerID string) (string, error)
	Cancel(ctx context.Context, userID string) error
}

// VocalAgentStore receives voice agent provisioning requests.
type VocalAgentStore interface {
	Create(ctx context.Context, a *model.VocalAgent) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// WebhookLogStore is implemented by the MySQL and DynamoDB audit stores.
type WebhookLogStore interface {
	Append(ctx context.Context, l model.WebhookLog) error
}

// ChangePublisher feeds the realtime change stream.  Implementations must
// not fail the caller; the returned error is informational.
type ChangePublisher interface {
	Publish(ctx context.Context, ev queue.ChangeEvent) error
}

// PaymentGateway is the subset of the Stripe gateway used by services.
type PaymentGateway interface {
	VerifyEvent(payload []byte, signature string) (payment.Event, error)
	CustomerEmail(ctx context.Context, customerID string) (string, error)
	CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (payment.CheckoutSession, error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, queue.ChangeEvent) error { return nil }

func publisherOrNoop(p ChangePublisher) ChangePublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

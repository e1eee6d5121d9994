package service

import (
	"context"
	"log"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
)

// Notifier creates in-app notifications and serves the notification
// centre of the dashboard.
type Notifier struct {
	store   NotificationStore
	changes ChangePublisher
}

func NewNotifier(store NotificationStore, changes ChangePublisher) *Notifier {
	return &Notifier{store: store, changes: publisherOrNoop(changes)}
}

// Notify appends a notification for userID.  Failures are logged only:
// a notification never decides the outcome of the operation that raised
// it.
func (n *Notifier) Notify(ctx context.Context, userID, typ, title, message string) {
	if n == nil || n.store == nil || userID == "" {
		return
	}
	rec := &model.Notification{UserID: userID, Type: typ, Title: title, Message: message}
	if err := n.store.Create(ctx, rec); err != nil {
		log.Printf("[notify] create failed user_id=%s title=%q err=%v", userID, title, err)
		return
	}
	_ = n.changes.Publish(ctx, queue.ChangeEvent{
		Table:    "notifications",
		Action:   queue.ActionInsert,
		TenantID: userID,
		RecordID: rec.ID,
		Summary:  title,
	})
}

// List returns the notifications of userID, newest first.
func (n *Notifier) List(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	if userID == "" {
		return nil, ErrTenantRequired
	}
	return n.store.ListForUser(ctx, userID, unreadOnly, 50)
}

// MarkRead flags one notification as read.
func (n *Notifier) MarkRead(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrTenantRequired
	}
	return n.store.MarkRead(ctx, id, userID)
}

// MarkAllRead flags every notification of userID as read.
func (n *Notifier) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrTenantRequired
	}
	return n.store.MarkAllRead(ctx, userID)
}

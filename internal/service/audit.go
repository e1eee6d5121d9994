package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// Auditor appends webhook outcomes to the audit store.  Recording is best
// effort: a failed append is logged and never changes the response.
type Auditor struct {
	store WebhookLogStore
}

func NewAuditor(store WebhookLogStore) *Auditor { return &Auditor{store: store} }

// Record writes entry.  It outlives a cancelled request context so the
// outcome of an aborted request is still kept.
func (a *Auditor) Record(ctx context.Context, entry model.WebhookLog) {
	if a == nil || a.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.store.Append(ctx, entry); err != nil {
		log.Printf("[webhook-log] append failed webhook_type=%s data_type=%s status=%s err=%v",
			entry.WebhookType, entry.DataType, entry.Status, err)
	}
}

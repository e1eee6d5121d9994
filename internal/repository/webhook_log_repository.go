package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// WebhookLogRepo is the MySQL audit store for inbound webhooks.
type WebhookLogRepo struct{ db *sql.DB }

func NewWebhookLogRepo(db *sql.DB) *WebhookLogRepo { return &WebhookLogRepo{db: db} }

// Append writes one audit entry.
func (r *WebhookLogRepo) Append(ctx context.Context, l model.WebhookLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	var code interface{}
	if l.ResponseStatus != nil {
		code = *l.ResponseStatus
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webhook_logs (id, webhook_type, data_type, user_id, status, error_message, response_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.WebhookType, l.DataType, optional(l.UserID), l.Status, optional(l.ErrorMessage), code, l.CreatedAt)
	return err
}

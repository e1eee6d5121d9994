package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// VocalAgentRepo appends to the voice agent provisioning queue.
type VocalAgentRepo struct{ db *sql.DB }

func NewVocalAgentRepo(db *sql.DB) *VocalAgentRepo { return &VocalAgentRepo{db: db} }

// Create queues a provisioning request.
func (r *VocalAgentRepo) Create(ctx context.Context, a *model.VocalAgent) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = model.AgentWaiting
	}
	a.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vocal_agents (id, restaurant_id, restaurant_name, subscription_tier, status, priority, promised_delivery_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.RestaurantID, a.RestaurantName, a.SubscriptionTier, a.Status, a.Priority, a.PromisedDeliveryAt.UTC(), a.CreatedAt)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// SubscriberRepo stores plan subscriptions, one row per tenant.
type SubscriberRepo struct{ db *sql.DB }

func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Activate creates or replaces the subscription of s.UserID.  activated
// is true when the tenant had no subscription or one that was not active,
// so the first activation of a period can be told apart from renewals and
// redeliveries.
func (r *SubscriberRepo) Activate(ctx context.Context, s model.Subscriber) (activated bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var previous string
	err = tx.QueryRowContext(ctx,
		`SELECT subscription_status FROM subscribers WHERE user_id = ? FOR UPDATE`, s.UserID).Scan(&previous)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		activated = true
	case err != nil:
		return false, err
	default:
		activated = previous != model.SubscriptionActive
	}

	now := time.Now().UTC()
	var end interface{}
	if s.SubscriptionEndDate != nil {
		end = s.SubscriptionEndDate.UTC()
	}
	const q = `INSERT INTO subscribers
		(user_id, stripe_customer_id, subscription_tier, subscription_status, subscription_end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			stripe_customer_id    = COALESCE(VALUES(stripe_customer_id), stripe_customer_id),
			subscription_tier     = VALUES(subscription_tier),
			subscription_status   = VALUES(subscription_status),
			subscription_end_date = VALUES(subscription_end_date),
			updated_at            = VALUES(updated_at)`
	if _, err := tx.ExecContext(ctx, q,
		s.UserID, optional(s.StripeCustomerID), s.SubscriptionTier, s.SubscriptionStatus, end, now, now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return activated && s.SubscriptionStatus == model.SubscriptionActive, nil
}

// TenantByCustomer returns the tenant linked to a Stripe customer id.
func (r *SubscriberRepo) TenantByCustomer(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", ErrNotFound
	}
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM subscribers WHERE stripe_customer_id = ? ORDER BY updated_at DESC LIMIT 1`, customerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

// Get returns the subscription of userID.
func (r *SubscriberRepo) Get(ctx context.Context, userID string) (model.Subscriber, error) {
	var (
		s        model.Subscriber
		customer sql.NullString
		end      sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, stripe_customer_id, subscription_tier, subscription_status, subscription_end_date, created_at, updated_at
		 FROM subscribers WHERE user_id = ?`, userID).Scan(
		&s.UserID, &customer, &s.SubscriptionTier, &s.SubscriptionStatus, &end, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscriber{}, ErrNotFound
	}
	if err != nil {
		return model.Subscriber{}, err
	}
	s.StripeCustomerID = nullString(customer)
	s.SubscriptionEndDate = nullTime(end)
	return s, nil
}

// Cancel marks the subscription of userID cancelled.  ErrNotFound when
// the tenant has no subscription row.
func (r *SubscriberRepo) Cancel(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscribers SET subscription_status = ?, updated_at = ? WHERE user_id = ?`,
		model.SubscriptionCancelled, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return ErrNotFound
	}
	return nil
}

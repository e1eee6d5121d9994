package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// RechargeRepo stores minute-pack purchases.  A recharge leaves pending at
// most once; Complete and Fail are conditional on the pending status so a
// replayed payment event can never credit minutes twice.
type RechargeRepo struct{ db *sql.DB }

func NewRechargeRepo(db *sql.DB) *RechargeRepo { return &RechargeRepo{db: db} }

// CompleteResult describes what Complete did.  Credited is true only for
// the call that moved the recharge out of pending; otherwise Status holds
// the status found on the row.
type CompleteResult struct {
	Credited bool
	Status   string
}

const rechargeColumns = `id, user_id, pack_type, minutes, price, status, stripe_session_id, created_at, updated_at`

// Create inserts a pending recharge.
func (r *RechargeRepo) Create(ctx context.Context, rc *model.Recharge) error {
	if rc.ID == "" {
		rc.ID = uuid.NewString()
	}
	if rc.Status == "" {
		rc.Status = model.RechargePending
	}
	now := time.Now().UTC()
	rc.CreatedAt, rc.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recharges (id, user_id, pack_type, minutes, price, status, stripe_session_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rc.ID, rc.UserID, rc.PackType, rc.Minutes, rc.Price.StringFixed(2), rc.Status, optional(rc.StripeSessionID), now, now)
	return err
}

// AttachSession records the checkout session created for a recharge.
func (r *RechargeRepo) AttachSession(ctx context.Context, id, userID, sessionID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recharges SET stripe_session_id = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		sessionID, time.Now().UTC(), id, userID)
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

func scanRecharge(s rowScanner) (model.Recharge, error) {
	var (
		rc      model.Recharge
		session sql.NullString
	)
	if err := s.Scan(&rc.ID, &rc.UserID, &rc.PackType, &rc.Minutes, &rc.Price, &rc.Status, &session,
		&rc.CreatedAt, &rc.UpdatedAt); err != nil {
		return model.Recharge{}, err
	}
	rc.StripeSessionID = nullString(session)
	return rc, nil
}

// GetForOwner loads one recharge of userID.
func (r *RechargeRepo) GetForOwner(ctx context.Context, id, userID string) (model.Recharge, error) {
	rc, err := scanRecharge(r.db.QueryRowContext(ctx,
		`SELECT `+rechargeColumns+` FROM recharges WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Recharge{}, ErrNotFound
	}
	return rc, err
}

// ListForOwner returns the most recent recharges of userID.
func (r *RechargeRepo) ListForOwner(ctx context.Context, userID string, limit int) ([]model.Recharge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rechargeColumns+` FROM recharges WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, clampLimit(limit, 20, 200))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Recharge{}
	for rows.Next() {
		rc, err := scanRecharge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// Complete marks a pending recharge completed and credits minutes to its
// owner in one transaction.  When the recharge is not pending nothing is
// written and the current status is reported.  ErrNotFound when the
// recharge does not exist for userID.
func (r *RechargeRepo) Complete(ctx context.Context, id, userID, sessionID string, minutes int) (CompleteResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return CompleteResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE recharges SET status = 'completed', stripe_session_id = COALESCE(?, stripe_session_id), updated_at = ?
		 WHERE id = ? AND user_id = ? AND status = 'pending'`,
		optional(&sessionID), time.Now().UTC(), id, userID)
	if err != nil {
		return CompleteResult{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return CompleteResult{}, err
	}
	if affected == 0 {
		var status string
		err := tx.QueryRowContext(ctx, `SELECT status FROM recharges WHERE id = ? AND user_id = ?`, id, userID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return CompleteResult{}, ErrNotFound
		}
		if err != nil {
			return CompleteResult{}, err
		}
		return CompleteResult{Status: status}, nil
	}
	if err := addMinutes(ctx, tx, userID, minutes); err != nil {
		return CompleteResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return CompleteResult{}, err
	}
	committed = true
	return CompleteResult{Credited: true, Status: model.RechargeCompleted}, nil
}

// Fail moves a pending recharge to failed.  It reports false when the
// recharge is missing or already settled.  userID may be empty when the
// event carries no tenant.
func (r *RechargeRepo) Fail(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recharges SET status = 'failed', updated_at = ?
		 WHERE id = ? AND (? = '' OR user_id = ?) AND status = 'pending'`,
		time.Now().UTC(), id, userID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

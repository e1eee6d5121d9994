package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// ProfileRepo reads tenant profiles and owns the two statements allowed to
// change a minutes balance: AddMinutes and ConsumeMinutes.  Both are single
// atomic UPDATEs; the balance is never read, modified and written back in
// application code.
type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

const profileColumns = `user_id, display_name, contact_email, restaurant_name, minutes_balance,
	auto_recharge_enabled, auto_recharge_threshold, preferred_pack_type, created_at, updated_at`

// Exists reports whether a profile row exists for userID.
func (r *ProfileRepo) Exists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE user_id = ? LIMIT 1`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// GetByID loads a profile.  ErrNotFound when absent.
func (r *ProfileRepo) GetByID(ctx context.Context, userID string) (model.Profile, error) {
	var (
		p                              model.Profile
		display, email, name, prefPack sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID).Scan(
		&p.UserID, &display, &email, &name, &p.MinutesBalance,
		&p.AutoRechargeEnabled, &p.AutoRechargeThreshold, &prefPack, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	p.DisplayName = nullString(display)
	p.ContactEmail = nullString(email)
	p.RestaurantName = nullString(name)
	p.PreferredPackType = nullString(prefPack)
	return p, nil
}

// FindByContactEmail returns the user id whose contact email matches,
// compared case-insensitively.  ErrNotFound when no profile matches.
func (r *ProfileRepo) FindByContactEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrNotFound
	}
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM profiles WHERE LOWER(contact_email) = ? ORDER BY created_at LIMIT 1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

// AddMinutes atomically credits n minutes.  ErrNotFound when the profile
// does not exist.
func (r *ProfileRepo) AddMinutes(ctx context.Context, userID string, n int) error {
	return addMinutes(ctx, r.db, userID, n)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func addMinutes(ctx context.Context, x execer, userID string, n int) error {
	res, err := x.ExecContext(ctx,
		`UPDATE profiles SET minutes_balance = minutes_balance + ?, updated_at = ? WHERE user_id = ?`,
		n, time.Now().UTC(), userID)
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

// ConsumeMinutes atomically debits n minutes and records the consumption
// in the same transaction.  The debit only applies when the balance covers
// it; otherwise ErrInsufficientBalance is returned and nothing is written.
// The remaining balance is returned on success.
func (r *ProfileRepo) ConsumeMinutes(ctx context.Context, userID string, n int, description *string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE profiles SET minutes_balance = minutes_balance - ?, updated_at = ?
		 WHERE user_id = ? AND minutes_balance >= ?`,
		n, now, userID, n)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE user_id = ?`, userID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		if err != nil {
			return 0, err
		}
		return 0, ErrInsufficientBalance
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO minutes_consumption (id, user_id, minutes_used, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, n, optional(description), now); err != nil {
		return 0, err
	}
	var balance int
	if err := tx.QueryRowContext(ctx, `SELECT minutes_balance FROM profiles WHERE user_id = ?`, userID).Scan(&balance); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return balance, nil
}

// UpdateAutoRecharge stores the auto-recharge preferences.
func (r *ProfileRepo) UpdateAutoRecharge(ctx context.Context, userID string, enabled bool, threshold int, packType *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET auto_recharge_enabled = ?, auto_recharge_threshold = ?, preferred_pack_type = ?, updated_at = ?
		 WHERE user_id = ?`,
		enabled, threshold, optional(packType), time.Now().UTC(), userID)
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

// ListConsumption returns the most recent consumption rows of a tenant.
func (r *ProfileRepo) ListConsumption(ctx context.Context, userID string, limit int) ([]model.MinutesConsumption, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, minutes_used, description, created_at FROM minutes_consumption
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, clampLimit(limit, 30, 200))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MinutesConsumption{}
	for rows.Next() {
		var (
			c    model.MinutesConsumption
			desc sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.MinutesUsed, &desc, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Description = nullString(desc)
		out = append(out, c)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// MenuRepo stores the per-restaurant dish prices used to total orders.
type MenuRepo struct{ db *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// PricesFor returns the price of every name in names that the restaurant
// has priced.  Names are matched exactly; unpriced names are absent from
// the map.
func (r *MenuRepo) PricesFor(ctx context.Context, restaurantID string, names []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(names))
	if len(names) == 0 {
		return out, nil
	}
	args := make([]interface{}, 0, len(names)+1)
	args = append(args, restaurantID)
	for _, n := range names {
		args = append(args, n)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	q := `SELECT name, price FROM menu_prices WHERE restaurant_id = ? AND BINARY name IN (` + placeholders + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name  string
			price decimal.Decimal
		)
		if err := rows.Scan(&name, &price); err != nil {
			return nil, err
		}
		out[name] = price
	}
	return out, rows.Err()
}

// List returns the restaurant's menu sorted by name.
func (r *MenuRepo) List(ctx context.Context, restaurantID string) ([]model.MenuPrice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, restaurant_id, name, price, updated_at FROM menu_prices WHERE restaurant_id = ? ORDER BY name`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MenuPrice{}
	for rows.Next() {
		var m model.MenuPrice
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Upsert sets the price of a dish, creating the row when the name is new.
func (r *MenuRepo) Upsert(ctx context.Context, restaurantID, name string, price decimal.Decimal) (model.MenuPrice, error) {
	now := time.Now().UTC()
	const q = `INSERT INTO menu_prices (id, restaurant_id, name, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE price = VALUES(price), updated_at = VALUES(updated_at)`
	if _, err := r.db.ExecContext(ctx, q, uuid.NewString(), restaurantID, name, price.StringFixed(2), now, now); err != nil {
		return model.MenuPrice{}, err
	}
	var m model.MenuPrice
	err := r.db.QueryRowContext(ctx,
		`SELECT id, restaurant_id, name, price, updated_at FROM menu_prices WHERE restaurant_id = ? AND name = ?`,
		restaurantID, name).Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.UpdatedAt)
	return m, err
}

// Delete removes a dish.  ErrNotFound when the row is missing or foreign.
func (r *MenuRepo) Delete(ctx context.Context, id, restaurantID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_prices WHERE id = ? AND restaurant_id = ?`, id, restaurantID)
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

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// OrderRepo stores orders.  Items are persisted as a JSON array that keeps
// the order in which the client listed them.  Like ReservationRepo, every
// query is scoped by restaurant.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderFilter narrows ListForOwner.
type OrderFilter struct {
	Status string
	Limit  int
}

const orderColumns = `id, restaurant_id, client_name, order_time, items, total_amount, status,
	delivered_at, created_at, updated_at`

// Create inserts o.  The total must already be priced by the caller.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Items == nil {
		o.Items = []string{}
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	const q = `INSERT INTO orders
		(id, restaurant_id, client_name, order_time, items, total_amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		o.ID, o.RestaurantID, o.ClientName, o.OrderTime, string(items), o.TotalAmount.StringFixed(2), o.Status, now, now)
	return err
}

func scanOrder(s rowScanner) (model.Order, error) {
	var (
		o         model.Order
		items     []byte
		delivered sql.NullTime
	)
	err := s.Scan(&o.ID, &o.RestaurantID, &o.ClientName, &o.OrderTime, &items, &o.TotalAmount, &o.Status,
		&delivered, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return model.Order{}, err
	}
	o.Items = []string{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return model.Order{}, err
		}
	}
	o.DeliveredAt = nullTime(delivered)
	return o, nil
}

// GetForOwner loads an order owned by restaurantID.  ErrNotFound otherwise.
func (r *OrderRepo) GetForOwner(ctx context.Context, id, restaurantID string) (model.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ? AND restaurant_id = ?`, id, restaurantID)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, ErrNotFound
	}
	return o, err
}

// ListForOwner returns the tenant's orders, newest first.
func (r *OrderRepo) ListForOwner(ctx context.Context, restaurantID string, f OrderFilter) ([]model.Order, error) {
	var (
		sb   strings.Builder
		args = []interface{}{restaurantID}
	)
	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = ?`)
	if f.Status != "" {
		sb.WriteString(` AND status = ?`)
		args = append(args, f.Status)
	}
	sb.WriteString(` ORDER BY created_at DESC LIMIT ?`)
	args = append(args, clampLimit(f.Limit, 100, 500))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus is the conditional status write for orders; see
// ReservationRepo.UpdateStatus.  delivered_at is stamped on delivery.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, restaurantID, from, to string) (bool, error) {
	now := time.Now().UTC()
	const q = `UPDATE orders SET status = ?, updated_at = ?,
		delivered_at = CASE WHEN ? = 'delivered' THEN ? ELSE delivered_at END
		WHERE id = ? AND restaurant_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, to, now, to, now, id, restaurantID, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

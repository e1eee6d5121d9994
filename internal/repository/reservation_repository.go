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

// ReservationRepo stores reservations.  Every read and write is scoped by
// the owning restaurant: a reservation of another tenant behaves exactly
// like a missing one.  All timestamp fields are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationFilter narrows ListForOwner.  Empty fields are ignored.
type ReservationFilter struct {
	Status string
	Date   string
	Limit  int
}

const reservationColumns = `id, restaurant_id, client_name, client_phone, reservation_date, reservation_time,
	party_size, status, arrived_at, cancelled_at, created_at, updated_at`

// Create inserts res.  The id and timestamps are filled in when empty.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	res.CreatedAt, res.UpdatedAt = now, now
	const q = `INSERT INTO reservations
		(id, restaurant_id, client_name, client_phone, reservation_date, reservation_time, party_size, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.RestaurantID, res.ClientName, optional(res.ClientPhone),
		res.ReservationDate, res.ReservationTime, res.PartySize, res.Status, now, now)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(s rowScanner) (model.Reservation, error) {
	var (
		res                model.Reservation
		phone              sql.NullString
		arrived, cancelled sql.NullTime
	)
	err := s.Scan(&res.ID, &res.RestaurantID, &res.ClientName, &phone, &res.ReservationDate, &res.ReservationTime,
		&res.PartySize, &res.Status, &arrived, &cancelled, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	res.ClientPhone = nullString(phone)
	res.ArrivedAt = nullTime(arrived)
	res.CancelledAt = nullTime(cancelled)
	return res, nil
}

// GetForOwner loads a reservation owned by restaurantID.  ErrNotFound when
// the row is missing or belongs to another tenant.
func (r *ReservationRepo) GetForOwner(ctx context.Context, id, restaurantID string) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? AND restaurant_id = ?`, id, restaurantID)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrNotFound
	}
	return res, err
}

// ListForOwner returns the tenant's reservations, newest first.
func (r *ReservationRepo) ListForOwner(ctx context.Context, restaurantID string, f ReservationFilter) ([]model.Reservation, error) {
	var (
		sb   strings.Builder
		args = []interface{}{restaurantID}
	)
	sb.WriteString(`SELECT ` + reservationColumns + ` FROM reservations WHERE restaurant_id = ?`)
	if f.Status != "" {
		sb.WriteString(` AND status = ?`)
		args = append(args, f.Status)
	}
	if f.Date != "" {
		sb.WriteString(` AND reservation_date = ?`)
		args = append(args, f.Date)
	}
	sb.WriteString(` ORDER BY created_at DESC LIMIT ?`)
	args = append(args, clampLimit(f.Limit, 100, 500))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpdateStatus moves a reservation from one status to another with a
// single conditional UPDATE.  It reports false when no row matched, which
// means the reservation is missing, foreign, or no longer in status from.
// arrived_at and cancelled_at are stamped when the matching status is
// reached.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, restaurantID, from, to string) (bool, error) {
	now := time.Now().UTC()
	const q = `UPDATE reservations SET status = ?, updated_at = ?,
		arrived_at   = CASE WHEN ? = 'arrived'   THEN ? ELSE arrived_at   END,
		cancelled_at = CASE WHEN ? = 'cancelled' THEN ? ELSE cancelled_at END
		WHERE id = ? AND restaurant_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, to, now, to, now, to, now, id, restaurantID, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

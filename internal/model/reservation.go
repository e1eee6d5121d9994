package model

import "time"

// Reservation is a table booking captured by the voice agent for one
// restaurant.  It is created in the confirmed state and leaves it once,
// either when the party arrives or when the booking is cancelled.
//
// Fields:
//  ID              – opaque identifier (UUID).
//  RestaurantID    – owning tenant.
//  ClientName      – name given on the call (required).
//  ClientPhone     – callback number, if any.
//  ReservationDate – day of the booking as spoken (YYYY-MM-DD when parseable).
//  ReservationTime – time of the booking (HH:MM).
//  PartySize       – number of guests, at least one.
//  Status          – confirmed, arrived or cancelled.
//  ArrivedAt       – set when the reservation reaches arrived.
//  CancelledAt     – set when the reservation reaches cancelled.
type Reservation struct {
	ID              string     `json:"id"`               // reservations.id
	RestaurantID    string     `json:"restaurant_id"`    // reservations.restaurant_id
	ClientName      string     `json:"client_name"`      // reservations.client_name
	ClientPhone     *string    `json:"client_phone"`     // reservations.client_phone (nullable)
	ReservationDate string     `json:"reservation_date"` // reservations.reservation_date
	ReservationTime string     `json:"reservation_time"` // reservations.reservation_time
	PartySize       int        `json:"party_size"`       // reservations.party_size
	Status          string     `json:"status"`           // reservations.status
	StatusLabel     string     `json:"status_label"`
	ArrivedAt       *time.Time `json:"arrived_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

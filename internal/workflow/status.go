// Package workflow holds the status tables for reservations and orders.
// Both entities move forward only: an order walks received → preparing →
// ready → delivered one step at a time, and a reservation leaves
// confirmed exactly once, either to arrived or to cancelled.  Every
// component that writes a status (webhook intake, dashboard commands)
// asks this package whether the move is legal.
package workflow

import (
	"errors"
	"fmt"
)

// Entity names the kind of record a status belongs to.
type Entity string

const (
	EntityReservation Entity = "reservation"
	EntityOrder       Entity = "order"
)

// ParseEntity accepts the entity names used on the wire.
func ParseEntity(s string) (Entity, error) {
	switch Entity(s) {
	case EntityReservation, EntityOrder:
		return Entity(s), nil
	}
	return "", fmt.Errorf("unknown entity %q", s)
}

// ReservationStatus is the closed set of reservation states.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationArrived   ReservationStatus = "arrived"
	ReservationCancelled ReservationStatus = "cancelled"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	OrderReceived  OrderStatus = "received"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
)

// ErrUnknownStatus is returned when a status string is outside the
// entity's domain.
var ErrUnknownStatus = errors.New("unknown status")

// ParseReservationStatus validates s against the reservation domain.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case ReservationConfirmed, ReservationArrived, ReservationCancelled:
		return ReservationStatus(s), nil
	}
	return "", fmt.Errorf("%w: reservation %q", ErrUnknownStatus, s)
}

// ParseOrderStatus validates s against the order domain.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderReceived, OrderPreparing, OrderReady, OrderDelivered:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: order %q", ErrUnknownStatus, s)
}

// Terminal reports whether no transition leaves s.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationArrived || s == ReservationCancelled
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool { return s == OrderDelivered }

// Label is the operator-facing name shown on the dashboard cards.
func (s ReservationStatus) Label() string {
	switch s {
	case ReservationConfirmed:
		return "Confirmée"
	case ReservationArrived:
		return "Arrivé"
	case ReservationCancelled:
		return "Annulée"
	}
	return string(s)
}

// Label is the operator-facing name shown on the dashboard cards.
func (s OrderStatus) Label() string {
	switch s {
	case OrderReceived:
		return "Reçue"
	case OrderPreparing:
		return "En préparation"
	case OrderReady:
		return "Prête"
	case OrderDelivered:
		return "Livrée"
	}
	return string(s)
}

// StatusLabel is the dashboard name of status s of entity.  Unknown
// values are returned as is.
func StatusLabel(entity Entity, s string) string {
	switch entity {
	case EntityOrder:
		return OrderStatus(s).Label()
	case EntityReservation:
		return ReservationStatus(s).Label()
	}
	return s
}

// NextOrder returns the single forward step from s.  The second value is
// false when s is terminal.
func NextOrder(s OrderStatus) (OrderStatus, bool) {
	switch s {
	case OrderReceived:
		return OrderPreparing, true
	case OrderPreparing:
		return OrderReady, true
	case OrderReady:
		return OrderDelivered, true
	}
	return "", false
}

// NextReservation never yields a canonical step: from confirmed the
// operator must pick arrived or cancelled explicitly, and the other two
// states are terminal.
func NextReservation(s ReservationStatus) (ReservationStatus, bool) {
	return "", false
}

// ValidReservationTransition reports whether from → to is a legal move.
func ValidReservationTransition(from, to ReservationStatus) bool {
	if from != ReservationConfirmed {
		return false
	}
	return to == ReservationArrived || to == ReservationCancelled
}

// ValidOrderTransition reports whether from → to is a legal move.  Only
// the immediate successor is accepted.
func ValidOrderTransition(from, to OrderStatus) bool {
	next, ok := NextOrder(from)
	return ok && next == to
}

// NextState is the string-level form of NextOrder / NextReservation used
// by callers that only know the entity at runtime.  ok is false when no
// canonical next state exists (terminal, or the reservation branch).
func NextState(entity Entity, current string) (next string, ok bool, err error) {
	switch entity {
	case EntityOrder:
		s, err := ParseOrderStatus(current)
		if err != nil {
			return "", false, err
		}
		n, ok := NextOrder(s)
		return string(n), ok, nil
	case EntityReservation:
		s, err := ParseReservationStatus(current)
		if err != nil {
			return "", false, err
		}
		n, ok := NextReservation(s)
		return string(n), ok, nil
	}
	return "", false, fmt.Errorf("unknown entity %q", entity)
}

// IsValidTransition is the authoritative legality check for an arbitrary
// requested move.  Same-state requests, skipped order steps, backward
// moves, moves out of a terminal state and unknown states are all
// rejected.
func IsValidTransition(entity Entity, from, to string) bool {
	switch entity {
	case EntityOrder:
		f, err1 := ParseOrderStatus(from)
		t, err2 := ParseOrderStatus(to)
		return err1 == nil && err2 == nil && ValidOrderTransition(f, t)
	case EntityReservation:
		f, err1 := ParseReservationStatus(from)
		t, err2 := ParseReservationStatus(to)
		return err1 == nil && err2 == nil && ValidReservationTransition(f, t)
	}
	return false
}

// IsTerminal reports whether current admits no further transition.
// Unknown states are reported as terminal so nothing moves out of them.
func IsTerminal(entity Entity, current string) bool {
	switch entity {
	case EntityOrder:
		if s, err := ParseOrderStatus(current); err == nil {
			return s.Terminal()
		}
	case EntityReservation:
		if s, err := ParseReservationStatus(current); err == nil {
			return s.Terminal()
		}
	}
	return true
}

// ValidStatus reports whether s belongs to the entity's domain.
func ValidStatus(entity Entity, s string) bool {
	switch entity {
	case EntityOrder:
		_, err := ParseOrderStatus(s)
		return err == nil
	case EntityReservation:
		_, err := ParseReservationStatus(s)
		return err == nil
	}
	return false
}

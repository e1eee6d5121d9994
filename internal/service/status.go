package service

import (
	"context"
	"errors"
	"log"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// StatusService reads reservations and orders for the dashboard and
// applies status transitions.  Every call is scoped by the tenant id
// passed in by the caller; a record of another tenant is reported as
// repository.ErrNotFound.
type StatusService struct {
	reservations ReservationStore
	orders       OrderStore
	changes      ChangePublisher
}

func NewStatusService(reservations ReservationStore, orders OrderStore, changes ChangePublisher) *StatusService {
	return &StatusService{reservations: reservations, orders: orders, changes: publisherOrNoop(changes)}
}

// TransitionResult is the outcome of Apply or Advance.  Record holds the
// reservation or order as stored after the call.  Changed is false when
// the record was already in the requested status.  Label is the
// dashboard name of To.
type TransitionResult struct {
	Entity  workflow.Entity `json:"entity"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Label   string          `json:"label"`
	Changed bool            `json:"changed"`
	Record  interface{}     `json:"item"`
}

// Apply moves the record to status to.  The record is loaded by id and
// tenant, the move is checked against the workflow tables, and the write
// is conditional on the status that was checked.  A concurrent writer
// that got there first is detected from the fresh status.
func (s *StatusService) Apply(ctx context.Context, tenantID string, entity workflow.Entity, id, to string) (TransitionResult, error) {
	if tenantID == "" {
		return TransitionResult{}, ErrTenantRequired
	}
	current, _, err := s.load(ctx, tenantID, entity, id)
	if err != nil {
		return TransitionResult{}, err
	}
	res := TransitionResult{Entity: entity, From: current, To: to, Label: workflow.StatusLabel(entity, to)}

	if current != to {
		if err := workflow.CheckTransition(entity, current, to); err != nil {
			return res, err
		}
		ok, err := s.write(ctx, tenantID, entity, id, current, to)
		if err != nil {
			return res, err
		}
		if !ok {
			fresh, _, err := s.load(ctx, tenantID, entity, id)
			if err != nil {
				return res, err
			}
			if fresh != to {
				return res, &workflow.TransitionError{Entity: entity, From: fresh, To: to}
			}
		} else {
			res.Changed = true
		}
	} else if !workflow.ValidStatus(entity, to) {
		return res, &workflow.TransitionError{Entity: entity, From: current, To: to}
	}

	_, rec, err := s.load(ctx, tenantID, entity, id)
	if err != nil {
		return res, err
	}
	res.Record = rec
	if res.Changed {
		log.Printf("[transition] %s id=%s tenant_id=%s %s -> %s", entity, id, tenantID, current, to)
		_ = s.changes.Publish(ctx, queue.ChangeEvent{
			Table:    tableOf(entity),
			Action:   queue.ActionUpdate,
			TenantID: tenantID,
			RecordID: id,
			Status:   to,
			Summary:  summaryOf(rec),
		})
	}
	return res, nil
}

// Advance moves the record one step forward.  A confirmed reservation has
// two successors and yields workflow.ErrAmbiguousTransition; a record in
// a terminal status yields a *workflow.TransitionError.
func (s *StatusService) Advance(ctx context.Context, tenantID string, entity workflow.Entity, id string) (TransitionResult, error) {
	if tenantID == "" {
		return TransitionResult{}, ErrTenantRequired
	}
	current, _, err := s.load(ctx, tenantID, entity, id)
	if err != nil {
		return TransitionResult{}, err
	}
	next, ok, err := workflow.NextState(entity, current)
	if err != nil {
		return TransitionResult{}, err
	}
	if !ok {
		res := TransitionResult{Entity: entity, From: current}
		if workflow.IsTerminal(entity, current) {
			return res, &workflow.TransitionError{Entity: entity, From: current, To: "next"}
		}
		return res, workflow.ErrAmbiguousTransition
	}
	return s.Apply(ctx, tenantID, entity, id, next)
}

func (s *StatusService) load(ctx context.Context, tenantID string, entity workflow.Entity, id string) (string, interface{}, error) {
	switch entity {
	case workflow.EntityReservation:
		r, err := s.reservations.GetForOwner(ctx, id, tenantID)
		if err != nil {
			return "", nil, err
		}
		labelReservation(&r)
		return r.Status, r, nil
	case workflow.EntityOrder:
		o, err := s.orders.GetForOwner(ctx, id, tenantID)
		if err != nil {
			return "", nil, err
		}
		labelOrder(&o)
		return o.Status, o, nil
	}
	return "", nil, errors.New("unknown entity")
}

func (s *StatusService) write(ctx context.Context, tenantID string, entity workflow.Entity, id, from, to string) (bool, error) {
	if entity == workflow.EntityReservation {
		return s.reservations.UpdateStatus(ctx, id, tenantID, from, to)
	}
	return s.orders.UpdateStatus(ctx, id, tenantID, from, to)
}

func tableOf(entity workflow.Entity) string {
	if entity == workflow.EntityReservation {
		return "reservations"
	}
	return "orders"
}

func summaryOf(rec interface{}) string {
	switch r := rec.(type) {
	case model.Reservation:
		return r.ClientName
	case model.Order:
		return r.ClientName
	}
	return ""
}

// ListReservations returns the tenant's reservations.
func (s *StatusService) ListReservations(ctx context.Context, tenantID string, f repository.ReservationFilter) ([]model.Reservation, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	out, err := s.reservations.ListForOwner(ctx, tenantID, f)
	for i := range out {
		labelReservation(&out[i])
	}
	return out, err
}

// GetReservation returns one reservation of the tenant.
func (s *StatusService) GetReservation(ctx context.Context, tenantID, id string) (model.Reservation, error) {
	if tenantID == "" {
		return model.Reservation{}, ErrTenantRequired
	}
	r, err := s.reservations.GetForOwner(ctx, id, tenantID)
	labelReservation(&r)
	return r, err
}

// ListOrders returns the tenant's orders.
func (s *StatusService) ListOrders(ctx context.Context, tenantID string, f repository.OrderFilter) ([]model.Order, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	out, err := s.orders.ListForOwner(ctx, tenantID, f)
	for i := range out {
		labelOrder(&out[i])
	}
	return out, err
}

// GetOrder returns one order of the tenant.
func (s *StatusService) GetOrder(ctx context.Context, tenantID, id string) (model.Order, error) {
	if tenantID == "" {
		return model.Order{}, ErrTenantRequired
	}
	o, err := s.orders.GetForOwner(ctx, id, tenantID)
	labelOrder(&o)
	return o, err
}

func labelReservation(r *model.Reservation) {
	if r.Status != "" {
		r.StatusLabel = workflow.StatusLabel(workflow.EntityReservation, r.Status)
	}
}

func labelOrder(o *model.Order) {
	if o.Status != "" {
		o.StatusLabel = workflow.StatusLabel(workflow.EntityOrder, o.Status)
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// AutomationRequest is the normalized form of a call-automation payload.
// Whatever field names the scenario used, the tenant ends up in TenantID
// and nothing downstream looks at the raw names again.
type AutomationRequest struct {
	Kind       workflow.Entity
	TenantID   string
	ClientName string
	Phone      string
	Date       string
	Time       string
	PartySize  int
	Items      []string

	invalid error
}

// Validate reports the content errors found while parsing.  It is checked
// after the tenant is resolved, so an unknown tenant wins over a bad field.
func (r AutomationRequest) Validate() error {
	if r.invalid != nil {
		return r.invalid
	}
	if r.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidPayload)
	}
	return nil
}

// ParseAutomationPayload decodes and normalizes a webhook body.  Both the
// English field names and the legacy names of the automation scenario
// (Nom, Telephone, Date, Heure, Nombre_personnes, Choix_menu) are
// accepted.  The tenant may be sent as restaurant_id or user_id.  Only a
// malformed body, an unknown type or a missing tenant fail here; field
// content is checked by Validate.
func ParseAutomationPayload(body []byte) (AutomationRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return AutomationRequest{}, fmt.Errorf("%w: body must be a JSON object", ErrInvalidPayload)
	}

	req := AutomationRequest{}
	switch {
	case kindOf(field(raw, "type")) != "":
		req.Kind = kindOf(field(raw, "type"))
	case strings.EqualFold(field(raw, "type_demande1"), "reservation"):
		req.Kind = workflow.EntityReservation
	case strings.EqualFold(field(raw, "type_demande2"), "commande"):
		req.Kind = workflow.EntityOrder
	default:
		return AutomationRequest{}, fmt.Errorf("%w: missing or unknown request type", ErrInvalidPayload)
	}

	req.TenantID = field(raw, "restaurant_id", "user_id")
	if req.TenantID == "" {
		return AutomationRequest{}, ErrTenantRequired
	}
	req.ClientName = field(raw, "client_name", "name", "Nom")
	req.Phone = field(raw, "client_phone", "phone", "Telephone")
	req.Date = field(raw, "date", "Date")
	req.Time = field(raw, "time", "Heure")

	switch req.Kind {
	case workflow.EntityReservation:
		req.PartySize, req.invalid = partySize(raw)
	case workflow.EntityOrder:
		req.Items = items(raw)
	}
	return req, nil
}

func kindOf(s string) workflow.Entity {
	s = strings.ToLower(s)
	if e, err := workflow.ParseEntity(s); err == nil {
		return e
	}
	if s == "commande" {
		return workflow.EntityOrder
	}
	return ""
}

// field returns the first non-empty value among keys, as a string.
func field(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// partySize reads the leading digits of the value, so "2 personnes" and
// "2.0" both give 2.
func partySize(raw map[string]interface{}) (int, error) {
	s := field(raw, "party_size", "Nombre_personnes")
	if s == "" {
		return 1, nil
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: party size %q is not a number", ErrInvalidPayload, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: party size must be at least 1", ErrInvalidPayload)
	}
	return n, nil
}

// items keeps the caller's ordering and duplicates.  A single string is
// read as a comma separated list.
func items(raw map[string]interface{}) []string {
	out := []string{}
	for _, k := range []string{"items", "Choix_menu"} {
		switch v := raw[k].(type) {
		case []interface{}:
			for _, it := range v {
				if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
		case string:
			for _, s := range strings.Split(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}

// IntakeResult describes the record created from an automation payload.
type IntakeResult struct {
	Kind       workflow.Entity
	ID         string
	ClientName string
	Total      decimal.Decimal
	Unpriced   []string
}

// IntakeService turns automation payloads into reservations and orders.
type IntakeService struct {
	profiles     ProfileStore
	reservations ReservationStore
	orders       OrderStore
	menu         MenuStore
	changes      ChangePublisher
}

func NewIntakeService(profiles ProfileStore, reservations ReservationStore, orders OrderStore, menu MenuStore, changes ChangePublisher) *IntakeService {
	return &IntakeService{
		profiles:     profiles,
		reservations: reservations,
		orders:       orders,
		menu:         menu,
		changes:      publisherOrNoop(changes),
	}
}

// Create inserts one reservation or order in its initial status.  The
// tenant must exist; otherwise ErrTenantNotFound is returned and nothing
// is written, whatever else is wrong with the request.
func (s *IntakeService) Create(ctx context.Context, req AutomationRequest) (IntakeResult, error) {
	if req.TenantID == "" {
		return IntakeResult{}, ErrTenantRequired
	}
	ok, err := s.profiles.Exists(ctx, req.TenantID)
	if err != nil {
		return IntakeResult{}, err
	}
	if !ok {
		return IntakeResult{}, ErrTenantNotFound
	}
	if err := req.Validate(); err != nil {
		return IntakeResult{}, err
	}

	var res IntakeResult
	switch req.Kind {
	case workflow.EntityReservation:
		res, err = s.createReservation(ctx, req)
	case workflow.EntityOrder:
		res, err = s.createOrder(ctx, req)
	default:
		return IntakeResult{}, fmt.Errorf("%w: unknown request type", ErrInvalidPayload)
	}
	if err != nil {
		return IntakeResult{}, err
	}
	_ = s.changes.Publish(ctx, queue.ChangeEvent{
		Table:    tableOf(req.Kind),
		Action:   queue.ActionInsert,
		TenantID: req.TenantID,
		RecordID: res.ID,
		Summary:  req.ClientName,
	})
	return res, nil
}

func (s *IntakeService) createReservation(ctx context.Context, req AutomationRequest) (IntakeResult, error) {
	size := req.PartySize
	if size == 0 {
		size = 1
	}
	if size < 1 {
		return IntakeResult{}, fmt.Errorf("%w: party size must be at least 1", ErrInvalidPayload)
	}
	r := &model.Reservation{
		RestaurantID:    req.TenantID,
		ClientName:      req.ClientName,
		ReservationDate: req.Date,
		ReservationTime: req.Time,
		PartySize:       size,
		Status:          string(workflow.ReservationConfirmed),
	}
	if req.Phone != "" {
		phone := req.Phone
		r.ClientPhone = &phone
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		return IntakeResult{}, fmt.Errorf("insert reservation: %w", err)
	}
	log.Printf("[intake] reservation created id=%s tenant_id=%s party_size=%d", r.ID, r.RestaurantID, r.PartySize)
	return IntakeResult{Kind: workflow.EntityReservation, ID: r.ID, ClientName: r.ClientName}, nil
}

// createOrder prices the order once, from the menu as it is now.  Items
// without a menu price count as zero and are reported in Unpriced.
func (s *IntakeService) createOrder(ctx context.Context, req AutomationRequest) (IntakeResult, error) {
	prices, err := s.menu.PricesFor(ctx, req.TenantID, uniq(req.Items))
	if err != nil {
		return IntakeResult{}, fmt.Errorf("menu prices: %w", err)
	}
	total := decimal.Zero
	var unpriced []string
	for _, it := range req.Items {
		p, ok := prices[it]
		if !ok {
			unpriced = append(unpriced, it)
			continue
		}
		total = total.Add(p)
	}
	if len(unpriced) > 0 {
		log.Printf("[intake] unpriced items tenant_id=%s count=%d items=%v", req.TenantID, len(unpriced), unpriced)
	}

	o := &model.Order{
		RestaurantID: req.TenantID,
		ClientName:   req.ClientName,
		OrderTime:    req.Time,
		Items:        req.Items,
		TotalAmount:  total,
		Status:       string(workflow.OrderReceived),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return IntakeResult{}, fmt.Errorf("insert order: %w", err)
	}
	log.Printf("[intake] order created id=%s tenant_id=%s items=%d total=%s", o.ID, o.RestaurantID, len(o.Items), total.StringFixed(2))
	return IntakeResult{Kind: workflow.EntityOrder, ID: o.ID, ClientName: o.ClientName, Total: total, Unpriced: unpriced}, nil
}

func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
)

// In-memory stores mirroring the conditional semantics of the MySQL
// repositories.

type memReservations struct {
	mu   sync.Mutex
	rows map[string]model.Reservation
}

func newMemReservations() *memReservations {
	return &memReservations{rows: map[string]model.Reservation{}}
}

func (m *memReservations) Create(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.rows[r.ID] = *r
	return nil
}

func (m *memReservations) GetForOwner(_ context.Context, id, owner string) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.RestaurantID != owner {
		return model.Reservation{}, repository.ErrNotFound
	}
	return r, nil
}

func (m *memReservations) ListForOwner(_ context.Context, owner string, f repository.ReservationFilter) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range m.rows {
		if r.RestaurantID == owner && (f.Status == "" || r.Status == f.Status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) UpdateStatus(_ context.Context, id, owner, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.RestaurantID != owner || r.Status != from {
		return false, nil
	}
	r.Status = to
	m.rows[id] = r
	return true, nil
}

func (m *memReservations) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memOrders struct {
	mu      sync.Mutex
	rows    map[string]model.Order
	history map[string][]string
}

func newMemOrders() *memOrders {
	return &memOrders{rows: map[string]model.Order{}, history: map[string][]string{}}
}

func (m *memOrders) Create(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	m.rows[o.ID] = *o
	m.history[o.ID] = []string{o.Status}
	return nil
}

func (m *memOrders) GetForOwner(_ context.Context, id, owner string) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok || o.RestaurantID != owner {
		return model.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (m *memOrders) ListForOwner(_ context.Context, owner string, f repository.OrderFilter) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Order{}
	for _, o := range m.rows {
		if o.RestaurantID == owner && (f.Status == "" || o.Status == f.Status) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id, owner, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok || o.RestaurantID != owner || o.Status != from {
		return false, nil
	}
	o.Status = to
	m.rows[id] = o
	m.history[id] = append(m.history[id], to)
	return true, nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memMenu struct {
	mu     sync.Mutex
	prices map[string]map[string]decimal.Decimal
}

func newMemMenu() *memMenu { return &memMenu{prices: map[string]map[string]decimal.Decimal{}} }

func (m *memMenu) set(owner, name, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prices[owner] == nil {
		m.prices[owner] = map[string]decimal.Decimal{}
	}
	m.prices[owner][name] = decimal.RequireFromString(price)
}

func (m *memMenu) PricesFor(_ context.Context, owner string, names []string) (map[string]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for _, n := range names {
		if p, ok := m.prices[owner][n]; ok {
			out[n] = p
		}
	}
	return out, nil
}

func (m *memMenu) List(_ context.Context, owner string) ([]model.MenuPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.MenuPrice{}
	for n, p := range m.prices[owner] {
		out = append(out, model.MenuPrice{ID: n, RestaurantID: owner, Name: n, Price: p})
	}
	return out, nil
}

func (m *memMenu) Upsert(_ context.Context, owner, name string, price decimal.Decimal) (model.MenuPrice, error) {
	m.set(owner, name, price.String())
	return model.MenuPrice{ID: name, RestaurantID: owner, Name: name, Price: price}, nil
}

func (m *memMenu) Delete(_ context.Context, id, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prices[owner][id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.prices[owner], id)
	return nil
}

type memProfiles struct {
	mu          sync.Mutex
	rows        map[string]model.Profile
	consumption []model.MinutesConsumption
}

func newMemProfiles(ids ...string) *memProfiles {
	m := &memProfiles{rows: map[string]model.Profile{}}
	for _, id := range ids {
		m.rows[id] = model.Profile{UserID: id}
	}
	return m
}

func (m *memProfiles) put(p model.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.UserID] = p
}

func (m *memProfiles) balance(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id].MinutesBalance
}

func (m *memProfiles) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memProfiles) GetByID(_ context.Context, id string) (model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *memProfiles) FindByContactEmail(_ context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.rows {
		if p.ContactEmail != nil && strings.EqualFold(*p.ContactEmail, email) {
			return id, nil
		}
	}
	return "", repository.ErrNotFound
}

func (m *memProfiles) AddMinutes(_ context.Context, id string, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.MinutesBalance += n
	m.rows[id] = p
	return nil
}

func (m *memProfiles) ConsumeMinutes(_ context.Context, id string, n int, desc *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if p.MinutesBalance < n {
		return 0, repository.ErrInsufficientBalance
	}
	p.MinutesBalance -= n
	m.rows[id] = p
	m.consumption = append(m.consumption, model.MinutesConsumption{UserID: id, MinutesUsed: n, Description: desc})
	return p.MinutesBalance, nil
}

func (m *memProfiles) UpdateAutoRecharge(_ context.Context, id string, enabled bool, threshold int, pack *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.AutoRechargeEnabled, p.AutoRechargeThreshold, p.PreferredPackType = enabled, threshold, pack
	m.rows[id] = p
	return nil
}

func (m *memProfiles) ListConsumption(_ context.Context, id string, _ int) ([]model.MinutesConsumption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.MinutesConsumption{}
	for _, c := range m.consumption {
		if c.UserID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

// memRecharges credits through the profile store, like the transaction
// of RechargeRepo.Complete.
type memRecharges struct {
	mu       sync.Mutex
	rows     map[string]model.Recharge
	profiles *memProfiles
}

func newMemRecharges(p *memProfiles) *memRecharges {
	return &memRecharges{rows: map[string]model.Recharge{}, profiles: p}
}

func (m *memRecharges) get(id string) model.Recharge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memRecharges) Create(_ context.Context, rc *model.Recharge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc.ID == "" {
		rc.ID = uuid.NewString()
	}
	m.rows[rc.ID] = *rc
	return nil
}

func (m *memRecharges) GetForOwner(_ context.Context, id, user string) (model.Recharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.rows[id]
	if !ok || rc.UserID != user {
		return model.Recharge{}, repository.ErrNotFound
	}
	return rc, nil
}

func (m *memRecharges) AttachSession(_ context.Context, id, user, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.rows[id]
	if !ok || rc.UserID != user {
		return repository.ErrNotFound
	}
	rc.StripeSessionID = &session
	m.rows[id] = rc
	return nil
}

func (m *memRecharges) ListForOwner(_ context.Context, user string, _ int) ([]model.Recharge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Recharge{}
	for _, rc := range m.rows {
		if rc.UserID == user {
			out = append(out, rc)
		}
	}
	return out, nil
}

func (m *memRecharges) Complete(ctx context.Context, id, user, session string, minutes int) (repository.CompleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.rows[id]
	if !ok || rc.UserID != user {
		return repository.CompleteResult{}, repository.ErrNotFound
	}
	if rc.Status != model.RechargePending {
		return repository.CompleteResult{Status: rc.Status}, nil
	}
	if err := m.profiles.AddMinutes(ctx, user, minutes); err != nil {
		return repository.CompleteResult{}, err
	}
	rc.Status = model.RechargeCompleted
	if session != "" {
		rc.StripeSessionID = &session
	}
	m.rows[id] = rc
	return repository.CompleteResult{Credited: true, Status: model.RechargeCompleted}, nil
}

func (m *memRecharges) Fail(_ context.Context, id, user string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.rows[id]
	if !ok || (user != "" && rc.UserID != user) || rc.Status != model.RechargePending {
		return false, nil
	}
	rc.Status = model.RechargeFailed
	m.rows[id] = rc
	return true, nil
}

type memSubscribers struct {
	mu   sync.Mutex
	rows map[string]model.Subscriber
}

func newMemSubscribers() *memSubscribers { return &memSubscribers{rows: map[string]model.Subscriber{}} }

func (m *memSubscribers) Activate(_ context.Context, s model.Subscriber) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.rows[s.UserID]
	if ok && s.StripeCustomerID == nil {
		s.StripeCustomerID = old.StripeCustomerID
	}
	m.rows[s.UserID] = s
	activated := !ok || old.SubscriptionStatus != model.SubscriptionActive
	return activated && s.SubscriptionStatus == model.SubscriptionActive, nil
}

func (m *memSubscribers) Get(_ context.Context, user string) (model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[user]
	if !ok {
		return model.Subscriber{}, repository.ErrNotFound
	}
	return s, nil
}

type memAgents struct {
	mu   sync.Mutex
	rows []model.VocalAgent
	err  error
}

func (m *memAgents) Create(_ context.Context, a *model.VocalAgent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	a.ID = uuid.NewString()
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memAgents) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memSubscribers) TenantByCustomer(_ context.Context, customer string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.rows {
		if s.StripeCustomerID != nil && *s.StripeCustomerID == customer {
			return id, nil
		}
	}
	return "", repository.ErrNotFound
}

func (m *memSubscribers) Cancel(_ context.Context, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[user]
	if !ok {
		return repository.ErrNotFound
	}
	s.SubscriptionStatus = model.SubscriptionCancelled
	m.rows[user] = s
	return nil
}

type memNotifications struct {
	mu   sync.Mutex
	rows []model.Notification
}

func (m *memNotifications) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = uuid.NewString()
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memNotifications) ListForUser(_ context.Context, user string, unread bool, _ int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Notification{}
	for _, n := range m.rows {
		if n.UserID == user && (!unread || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.rows {
		if n.ID == id && n.UserID == user {
			m.rows[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) MarkAllRead(_ context.Context, user string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.rows {
		if m.rows[i].UserID == user && !m.rows[i].IsRead {
			m.rows[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) byType(user, typ string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.UserID == user && r.Type == typ {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) count(table string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, ev := range p.events {
		if ev.Table == table {
			n++
		}
	}
	return n
}

type fakeGateway struct {
	mu          sync.Mutex
	verifyErr   error
	event       payment.Event
	emails      map[string]string
	emailErr    error
	checkoutErr error
	lastReq     payment.CheckoutRequest
	lookups     int
}

func (g *fakeGateway) VerifyEvent(_ []byte, _ string) (payment.Event, error) {
	if g.verifyErr != nil {
		return payment.Event{}, g.verifyErr
	}
	return g.event, nil
}

func (g *fakeGateway) CustomerEmail(_ context.Context, id string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lookups++
	if g.emailErr != nil {
		return "", g.emailErr
	}
	return g.emails[id], nil
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (payment.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastReq = req
	if g.checkoutErr != nil {
		return payment.CheckoutSession{}, g.checkoutErr
	}
	return payment.CheckoutSession{ID: "cs_test_" + req.RechargeID, URL: "https://checkout.stripe.test/" + req.RechargeID}, nil
}

package queue

import "sync"

// Hub fans change events out to the dashboards connected to this
// instance.  Each subscriber only receives events of its own tenant.  A
// subscriber that does not keep up loses events instead of blocking the
// publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	buffer int
}

type subscription struct {
	ch chan ChangeEvent
}

// NewHub returns an empty hub.  buffer is the per-subscriber queue length.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{subs: make(map[string]map[*subscription]struct{}), buffer: buffer}
}

// Subscribe registers a listener for tenantID.  The returned cancel func
// must be called once the listener goes away; it closes the channel.
func (h *Hub) Subscribe(tenantID string) (<-chan ChangeEvent, func()) {
	s := &subscription{ch: make(chan ChangeEvent, h.buffer)}
	h.mu.Lock()
	set, ok := h.subs[tenantID]
	if !ok {
		set = make(map[*subscription]struct{})
		h.subs[tenantID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[tenantID], s)
			if len(h.subs[tenantID]) == 0 {
				delete(h.subs, tenantID)
			}
			h.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Deliver hands ev to every subscriber of ev.TenantID.  It reports how
// many subscribers received it.
func (h *Hub) Deliver(ev ChangeEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for s := range h.subs[ev.TenantID] {
		select {
		case s.ch <- ev:
			n++
		default:
		}
	}
	return n
}

// Subscribers returns the number of listeners of tenantID.
func (h *Hub) Subscribers(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tenantID])
}

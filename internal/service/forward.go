package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-dashboard/internal/repository"
)

// ErrRelay marks a failed delivery to the automation platform.
var ErrRelay = errors.New("automation platform error")

var forwardTypes = map[string]bool{
	"reservation":   true,
	"commande":      true,
	"user_activity": true,
	"subscription":  true,
	"minutes_usage": true,
}

// ForwardEvent is the envelope posted to the automation platform.
// UserProfile and Subscription are filled from the tenant's records.
type ForwardEvent struct {
	Type         string               `json:"type"`
	Data         json.RawMessage      `json:"data"`
	UserID       string               `json:"user_id,omitempty"`
	Timestamp    string               `json:"timestamp"`
	UserProfile  *ForwardProfile      `json:"user_profile,omitempty"`
	Subscription *ForwardSubscription `json:"subscription,omitempty"`
}

type ForwardProfile struct {
	DisplayName    *string `json:"display_name"`
	MinutesBalance int     `json:"minutes_balance"`
}

type ForwardSubscription struct {
	Tier   string `json:"tier"`
	Status string `json:"status"`
}

// Forwarder relays dashboard events to the automation platform's inbound
// webhook.
type Forwarder struct {
	url         string
	client      *http.Client
	profiles    ProfileStore
	subscribers SubscriberStore
}

// NewForwarder returns a forwarder posting to url.  An empty url leaves
// the forwarder unconfigured and every call fails with ErrNotConfigured.
func NewForwarder(url string, client *http.Client, profiles ProfileStore, subscribers SubscriberStore) *Forwarder {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Forwarder{url: url, client: client, profiles: profiles, subscribers: subscribers}
}

// Forward enriches ev and posts it.  The platform's status code is
// returned whenever a response was received.
func (f *Forwarder) Forward(ctx context.Context, ev ForwardEvent) (int, error) {
	if f.url == "" {
		return 0, ErrNotConfigured
	}
	if !forwardTypes[ev.Type] {
		return 0, fmt.Errorf("%w: unknown event type %q", ErrInvalidPayload, ev.Type)
	}
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if ev.UserID != "" {
		f.enrich(ctx, &ev)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return 0, fmt.Errorf("encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRelay, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRelay, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return resp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrRelay, resp.StatusCode, strings.TrimSpace(string(text)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	log.Printf("[forward] sent type=%s tenant_id=%s status=%d", ev.Type, ev.UserID, resp.StatusCode)
	return resp.StatusCode, nil
}

// enrich attaches what is known about the tenant.  Missing records are
// left out of the envelope.
func (f *Forwarder) enrich(ctx context.Context, ev *ForwardEvent) {
	if f.profiles != nil {
		p, err := f.profiles.GetByID(ctx, ev.UserID)
		switch {
		case err == nil:
			ev.UserProfile = &ForwardProfile{DisplayName: p.DisplayName, MinutesBalance: p.MinutesBalance}
		case !errors.Is(err, repository.ErrNotFound):
			log.Printf("[forward] profile lookup tenant_id=%s: %v", ev.UserID, err)
		}
	}
	if f.subscribers != nil {
		s, err := f.subscribers.Get(ctx, ev.UserID)
		switch {
		case err == nil:
			ev.Subscription = &ForwardSubscription{Tier: s.SubscriptionTier, Status: s.SubscriptionStatus}
		case !errors.Is(err, repository.ErrNotFound):
			log.Printf("[forward] subscriber lookup tenant_id=%s: %v", ev.UserID, err)
		}
	}
}

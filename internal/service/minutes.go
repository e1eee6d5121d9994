package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/iliyamo/restaurant-dashboard/internal/config"
	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
)

// MinutesService manages the call-minute balance of a tenant: overview,
// pack checkout, consumption and the low-balance warning.
type MinutesService struct {
	profiles  ProfileStore
	recharges RechargeStore
	gateway   PaymentGateway
	catalog   *config.Catalog
	notifier  *Notifier
	changes   ChangePublisher
}

func NewMinutesService(profiles ProfileStore, recharges RechargeStore, gateway PaymentGateway, catalog *config.Catalog,
	notifier *Notifier, changes ChangePublisher) *MinutesService {
	return &MinutesService{
		profiles:  profiles,
		recharges: recharges,
		gateway:   gateway,
		catalog:   catalog,
		notifier:  notifier,
		changes:   publisherOrNoop(changes),
	}
}

// AutoRecharge holds the low-balance preferences of a tenant.
type AutoRecharge struct {
	Enabled   bool    `json:"enabled"`
	Threshold int     `json:"threshold"`
	PackType  *string `json:"pack_type"`
}

// MinutesOverview is what the minutes page shows.
type MinutesOverview struct {
	Balance      int                        `json:"minutes_balance"`
	AutoRecharge AutoRecharge               `json:"auto_recharge"`
	Recharges    []model.Recharge           `json:"recharges"`
	Consumption  []model.MinutesConsumption `json:"consumption"`
	Packs        []config.Pack              `json:"packs"`
}

// Overview returns the balance with the recent recharges and calls.
func (s *MinutesService) Overview(ctx context.Context, tenantID string) (MinutesOverview, error) {
	p, err := s.profile(ctx, tenantID)
	if err != nil {
		return MinutesOverview{}, err
	}
	recharges, err := s.recharges.ListForOwner(ctx, tenantID, 20)
	if err != nil {
		return MinutesOverview{}, err
	}
	consumption, err := s.profiles.ListConsumption(ctx, tenantID, 30)
	if err != nil {
		return MinutesOverview{}, err
	}
	ov := MinutesOverview{
		Balance: p.MinutesBalance,
		AutoRecharge: AutoRecharge{
			Enabled:   p.AutoRechargeEnabled,
			Threshold: p.AutoRechargeThreshold,
			PackType:  p.PreferredPackType,
		},
		Recharges:   recharges,
		Consumption: consumption,
	}
	if s.catalog != nil {
		ov.Packs = s.catalog.List()
	}
	return ov, nil
}

// Recharge returns one recharge of the tenant, for the checkout return
// page to poll until the webhook has settled it.
func (s *MinutesService) Recharge(ctx context.Context, tenantID, id string) (model.Recharge, error) {
	if tenantID == "" {
		return model.Recharge{}, ErrTenantRequired
	}
	return s.recharges.GetForOwner(ctx, id, tenantID)
}

func (s *MinutesService) profile(ctx context.Context, tenantID string) (model.Profile, error) {
	if tenantID == "" {
		return model.Profile{}, ErrTenantRequired
	}
	p, err := s.profiles.GetByID(ctx, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Profile{}, ErrTenantNotFound
	}
	return p, err
}

// UpdateAutoRecharge stores the low-balance preferences.
func (s *MinutesService) UpdateAutoRecharge(ctx context.Context, tenantID string, in AutoRecharge) error {
	if tenantID == "" {
		return ErrTenantRequired
	}
	if in.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalidPayload)
	}
	if in.PackType != nil && *in.PackType == "" {
		in.PackType = nil
	}
	if in.PackType != nil {
		if s.catalog == nil {
			return fmt.Errorf("%w: no pack catalog", ErrNotConfigured)
		}
		pack, ok := s.catalog.Pack(*in.PackType)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPack, *in.PackType)
		}
		in.PackType = &pack.Type
	}
	err := s.profiles.UpdateAutoRecharge(ctx, tenantID, in.Enabled, in.Threshold, in.PackType)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTenantNotFound
	}
	return err
}

// CheckoutResult is returned to the dashboard, which redirects to URL.
type CheckoutResult struct {
	RechargeID string `json:"recharge_id"`
	SessionID  string `json:"session_id"`
	URL        string `json:"url"`
}

// StartCheckout records a pending recharge for the pack and opens a Stripe
// checkout session for it.  The session metadata identifies the recharge
// so the completion webhook can credit it.
func (s *MinutesService) StartCheckout(ctx context.Context, tenantID, packType string) (CheckoutResult, error) {
	if s.catalog == nil {
		return CheckoutResult{}, fmt.Errorf("%w: no pack catalog", ErrNotConfigured)
	}
	pack, ok := s.catalog.Pack(packType)
	if !ok {
		return CheckoutResult{}, fmt.Errorf("%w: %q", ErrUnknownPack, packType)
	}
	p, err := s.profile(ctx, tenantID)
	if err != nil {
		return CheckoutResult{}, err
	}

	rc := &model.Recharge{
		UserID:   tenantID,
		PackType: pack.Type,
		Minutes:  pack.Minutes,
		Price:    pack.Price,
		Status:   model.RechargePending,
	}
	if err := s.recharges.Create(ctx, rc); err != nil {
		return CheckoutResult{}, fmt.Errorf("create recharge: %w", err)
	}

	req := payment.CheckoutRequest{
		RechargeID: rc.ID,
		UserID:     tenantID,
		PackType:   pack.Type,
		Minutes:    pack.Minutes,
		Price:      pack.Price,
	}
	if p.ContactEmail != nil {
		req.CustomerEmail = strings.TrimSpace(*p.ContactEmail)
	}
	sess, err := s.gateway.CreateCheckout(ctx, req)
	if err != nil {
		if _, ferr := s.recharges.Fail(ctx, rc.ID, tenantID); ferr != nil {
			log.Printf("[minutes] could not fail recharge recharge_id=%s err=%v", rc.ID, ferr)
		}
		if errors.Is(err, payment.ErrNotConfigured) {
			return CheckoutResult{}, fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := s.recharges.AttachSession(ctx, rc.ID, tenantID, sess.ID); err != nil {
		return CheckoutResult{}, fmt.Errorf("attach session: %w", err)
	}
	log.Printf("[minutes] checkout created recharge_id=%s tenant_id=%s pack=%s session_id=%s", rc.ID, tenantID, pack.Type, sess.ID)
	return CheckoutResult{RechargeID: rc.ID, SessionID: sess.ID, URL: sess.URL}, nil
}

// ConsumeResult reports the balance left after a consumption.
type ConsumeResult struct {
	Balance    int  `json:"minutes_balance"`
	LowBalance bool `json:"low_balance"`
}

// Consume debits minutes used by a call.  The debit is atomic and
// conditional on the balance; ErrInsufficientMinutes leaves it untouched.
// Falling below the auto-recharge threshold raises a warning
// notification.
func (s *MinutesService) Consume(ctx context.Context, tenantID string, minutes int, description string) (ConsumeResult, error) {
	if tenantID == "" {
		return ConsumeResult{}, ErrTenantRequired
	}
	if minutes <= 0 {
		return ConsumeResult{}, fmt.Errorf("%w: minutes must be positive", ErrInvalidPayload)
	}
	var desc *string
	if d := strings.TrimSpace(description); d != "" {
		desc = &d
	}
	balance, err := s.profiles.ConsumeMinutes(ctx, tenantID, minutes, desc)
	switch {
	case errors.Is(err, repository.ErrInsufficientBalance):
		return ConsumeResult{}, ErrInsufficientMinutes
	case errors.Is(err, repository.ErrNotFound):
		return ConsumeResult{}, ErrTenantNotFound
	case err != nil:
		return ConsumeResult{}, err
	}

	res := ConsumeResult{Balance: balance}
	_ = s.changes.Publish(ctx, queue.ChangeEvent{
		Table:    "profiles",
		Action:   queue.ActionUpdate,
		TenantID: tenantID,
		RecordID: tenantID,
	})

	p, err := s.profiles.GetByID(ctx, tenantID)
	if err != nil {
		log.Printf("[minutes] profile reload failed tenant_id=%s err=%v", tenantID, err)
		return res, nil
	}
	before := balance + minutes
	if p.AutoRechargeThreshold > 0 && before >= p.AutoRechargeThreshold && balance < p.AutoRechargeThreshold {
		res.LowBalance = true
		msg := fmt.Sprintf("Il vous reste %d minutes d'appels.", balance)
		if p.AutoRechargeEnabled && p.PreferredPackType != nil {
			msg += fmt.Sprintf(" Pensez à recharger avec le pack %s.", *p.PreferredPackType)
		}
		s.notifier.Notify(ctx, tenantID, model.NotificationWarning, "Minutes bientôt épuisées", msg)
	}
	return res, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-dashboard/internal/config"
	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// Stripe event types handled by PaymentService.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventCheckoutExpired     = "checkout.session.expired"
	EventPaymentFailed       = "payment_intent.payment_failed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// PaymentOutcome summarizes what an event did, for the webhook log.
type PaymentOutcome struct {
	EventType string
	TenantID  string
	Status    string // model.WebhookSuccess, WebhookIgnored or WebhookError
	Detail    string
}

// PaymentService reconciles Stripe events with recharges and
// subscriptions.
type PaymentService struct {
	gateway     PaymentGateway
	recharges   RechargeStore
	subscribers SubscriberStore
	agents      VocalAgentStore
	profiles    ProfileStore
	notifier    *Notifier
	catalog     *config.Catalog
	changes     ChangePublisher
}

func NewPaymentService(gateway PaymentGateway, recharges RechargeStore, subscribers SubscriberStore, agents VocalAgentStore,
	profiles ProfileStore, notifier *Notifier, catalog *config.Catalog, changes ChangePublisher) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		recharges:   recharges,
		subscribers: subscribers,
		agents:      agents,
		profiles:    profiles,
		notifier:    notifier,
		catalog:     catalog,
		changes:     publisherOrNoop(changes),
	}
}

// Verify authenticates a raw webhook body.  It is the only way to obtain
// an event: nothing is parsed before the signature checks out.
func (s *PaymentService) Verify(payload []byte, signature string) (payment.Event, error) {
	ev, err := s.gateway.VerifyEvent(payload, signature)
	switch {
	case err == nil:
		return ev, nil
	case errors.Is(err, payment.ErrNotConfigured):
		return payment.Event{}, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	default:
		return payment.Event{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
}

// Handle applies a verified event.  A nil error means the event must be
// acknowledged, including events that were ignored or that hit a settled
// recharge; the outcome says which.
func (s *PaymentService) Handle(ctx context.Context, ev payment.Event) (PaymentOutcome, error) {
	out := PaymentOutcome{EventType: ev.Type, Status: model.WebhookSuccess}
	var err error
	switch ev.Type {
	case EventCheckoutCompleted:
		err = s.checkoutCompleted(ctx, ev, &out)
	case EventCheckoutExpired, EventPaymentFailed:
		err = s.checkoutFailed(ctx, ev, &out)
	case EventSubscriptionCreated, EventInvoicePaid:
		err = s.subscriptionActive(ctx, ev, &out)
	case EventSubscriptionDeleted:
		err = s.subscriptionDeleted(ctx, ev, &out)
	default:
		out.Status = model.WebhookIgnored
		out.Detail = "unhandled event type"
	}
	if err != nil {
		out.Status = model.WebhookError
		out.Detail = err.Error()
	}
	log.Printf("[webhook][stripe] event=%s id=%s tenant_id=%s status=%s detail=%q", ev.Type, ev.ID, out.TenantID, out.Status, out.Detail)
	return out, err
}

// paymentObject covers checkout sessions and payment intents.  Checkout
// copies the recharge metadata onto both.
type paymentObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

type subscriptionObject struct {
	ID               string            `json:"id"`
	Customer         json.RawMessage   `json:"customer"`
	Metadata         map[string]string `json:"metadata"`
	CurrentPeriodEnd int64             `json:"current_period_end"`
	Items            struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type invoiceObject struct {
	ID                  string          `json:"id"`
	Customer            json.RawMessage `json:"customer"`
	Subscription        json.RawMessage `json:"subscription"`
	SubscriptionDetails *struct {
		Metadata map[string]string `json:"metadata"`
	} `json:"subscription_details"`
	Lines struct {
		Data []struct {
			Price *struct {
				ID string `json:"id"`
			} `json:"price"`
			Period struct {
				End int64 `json:"end"`
			} `json:"period"`
		} `json:"data"`
	} `json:"lines"`
}

// expandableID reads a field that is either an id string or an expanded
// object with an id.
func expandableID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}

func decodeObject(ev payment.Event, v interface{}) error {
	if len(ev.Data) == 0 {
		return fmt.Errorf("%w: event without data object", ErrInvalidPayload)
	}
	if err := json.Unmarshal(ev.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func (s *PaymentService) checkoutCompleted(ctx context.Context, ev payment.Event, out *PaymentOutcome) error {
	var obj paymentObject
	if err := decodeObject(ev, &obj); err != nil {
		return err
	}
	md := obj.Metadata
	rechargeID := strings.TrimSpace(md["recharge_id"])
	userID := strings.TrimSpace(md["user_id"])
	packType := strings.TrimSpace(md["pack_type"])
	minutes, convErr := strconv.Atoi(strings.TrimSpace(md["minutes"]))
	out.TenantID = userID
	if rechargeID == "" || userID == "" || packType == "" || convErr != nil || minutes <= 0 {
		return fmt.Errorf("%w: recharge_id, user_id, pack_type and minutes are required", ErrMissingMetadata)
	}

	res, err := s.recharges.Complete(ctx, rechargeID, userID, obj.ID, minutes)
	if err != nil {
		return fmt.Errorf("complete recharge %s: %w", rechargeID, err)
	}
	if !res.Credited {
		if res.Status == model.RechargeCompleted {
			out.Status = model.WebhookIgnored
			out.Detail = "duplicate delivery, recharge already completed"
			return nil
		}
		// Settled as failed: acknowledged so the provider stops retrying.
		terr := &workflow.TransitionError{Entity: "recharge", From: res.Status, To: model.RechargeCompleted}
		out.Status = model.WebhookError
		out.Detail = terr.Error()
		log.Printf("[payment] checkout completed for settled recharge recharge_id=%s status=%s", rechargeID, res.Status)
		return nil
	}

	log.Printf("[payment] recharge completed recharge_id=%s tenant_id=%s pack=%s minutes=%d", rechargeID, userID, packType, minutes)
	s.notifier.Notify(ctx, userID, model.NotificationSuccess, "Recharge effectuée !",
		fmt.Sprintf("Votre recharge de %d minutes a été effectuée avec succès ! Vos minutes sont maintenant disponibles.", minutes))
	_ = s.changes.Publish(ctx, queue.ChangeEvent{
		Table:    "recharges",
		Action:   queue.ActionUpdate,
		TenantID: userID,
		RecordID: rechargeID,
		Status:   model.RechargeCompleted,
	})
	return nil
}

func (s *PaymentService) checkoutFailed(ctx context.Context, ev payment.Event, out *PaymentOutcome) error {
	var obj paymentObject
	if err := decodeObject(ev, &obj); err != nil {
		return err
	}
	rechargeID := strings.TrimSpace(obj.Metadata["recharge_id"])
	out.TenantID = strings.TrimSpace(obj.Metadata["user_id"])
	if rechargeID == "" {
		out.Status = model.WebhookIgnored
		out.Detail = "no recharge metadata"
		return nil
	}
	ok, err := s.recharges.Fail(ctx, rechargeID, out.TenantID)
	if err != nil {
		return fmt.Errorf("fail recharge %s: %w", rechargeID, err)
	}
	if !ok {
		out.Status = model.WebhookIgnored
		out.Detail = "recharge not pending"
		return nil
	}
	log.Printf("[payment] recharge failed recharge_id=%s event=%s", rechargeID, ev.Type)
	if out.TenantID != "" {
		_ = s.changes.Publish(ctx, queue.ChangeEvent{
			Table:    "recharges",
			Action:   queue.ActionUpdate,
			TenantID: out.TenantID,
			RecordID: rechargeID,
			Status:   model.RechargeFailed,
		})
	}
	return nil
}

func (s *PaymentService) subscriptionActive(ctx context.Context, ev payment.Event, out *PaymentOutcome) error {
	var (
		metaUser, customerID, priceID string
		periodEnd                     int64
	)
	if ev.Type == EventInvoicePaid {
		var inv invoiceObject
		if err := decodeObject(ev, &inv); err != nil {
			return err
		}
		if expandableID(inv.Subscription) == "" {
			out.Status = model.WebhookIgnored
			out.Detail = "invoice without subscription"
			return nil
		}
		customerID = expandableID(inv.Customer)
		if inv.SubscriptionDetails != nil {
			metaUser = inv.SubscriptionDetails.Metadata["user_id"]
		}
		for _, l := range inv.Lines.Data {
			if l.Price != nil && l.Price.ID != "" {
				priceID = l.Price.ID
				periodEnd = l.Period.End
				break
			}
		}
	} else {
		var sub subscriptionObject
		if err := decodeObject(ev, &sub); err != nil {
			return err
		}
		customerID = expandableID(sub.Customer)
		metaUser = sub.Metadata["user_id"]
		periodEnd = sub.CurrentPeriodEnd
		if len(sub.Items.Data) > 0 {
			priceID = sub.Items.Data[0].Price.ID
		}
	}

	tenantID, err := s.resolveTenant(ctx, strings.TrimSpace(metaUser), customerID)
	if err != nil {
		return err
	}
	out.TenantID = tenantID

	tier := "basic"
	if s.catalog != nil {
		tier = s.catalog.TierForPrice(priceID)
	}
	sub := model.Subscriber{
		UserID:             tenantID,
		SubscriptionTier:   tier,
		SubscriptionStatus: model.SubscriptionActive,
	}
	if customerID != "" {
		sub.StripeCustomerID = &customerID
	}
	if periodEnd > 0 {
		end := time.Unix(periodEnd, 0).UTC()
		sub.SubscriptionEndDate = &end
	}
	activated, err := s.subscribers.Activate(ctx, sub)
	if err != nil {
		return fmt.Errorf("activate subscriber: %w", err)
	}
	if !activated {
		out.Detail = "subscription already active"
		log.Printf("[payment] subscription renewed tenant_id=%s tier=%s customer_id=%s", tenantID, tier, customerID)
		return nil
	}
	log.Printf("[payment] subscription activated tenant_id=%s tier=%s customer_id=%s", tenantID, tier, customerID)

	delay := agentDelivery(tier)
	s.queueVocalAgent(ctx, tenantID, tier, delay)
	s.notifier.Notify(ctx, tenantID, model.NotificationSuccess, "Bienvenue !",
		fmt.Sprintf("Merci pour votre souscription %s ! Votre agent vocal sera créé et livré dans %dh. Nous vous tiendrons informé de l'avancement.",
			tier, int(delay.Hours())))
	return nil
}

// agentDelivery is the voice agent delivery time promised for a tier.
func agentDelivery(tier string) time.Duration {
	if tier == "premium" {
		return 24 * time.Hour
	}
	return 72 * time.Hour
}

// queueVocalAgent files the provisioning request for a new subscriber.
// A failure is logged only: the subscription itself is already recorded.
func (s *PaymentService) queueVocalAgent(ctx context.Context, tenantID, tier string, delay time.Duration) {
	if s.agents == nil {
		return
	}
	a := &model.VocalAgent{
		RestaurantID:       tenantID,
		RestaurantName:     s.restaurantName(ctx, tenantID),
		SubscriptionTier:   tier,
		Status:             model.AgentWaiting,
		Priority:           model.AgentPriorityNormal,
		PromisedDeliveryAt: time.Now().UTC().Add(delay),
	}
	if tier == "premium" {
		a.Priority = model.AgentPriorityUrgent
	}
	if err := s.agents.Create(ctx, a); err != nil {
		log.Printf("[payment] vocal agent request not queued tenant_id=%s: %v", tenantID, err)
		return
	}
	log.Printf("[payment] vocal agent queued tenant_id=%s priority=%s due=%s", tenantID, a.Priority, a.PromisedDeliveryAt.Format(time.RFC3339))
}

func (s *PaymentService) restaurantName(ctx context.Context, tenantID string) string {
	p, err := s.profiles.GetByID(ctx, tenantID)
	if err != nil {
		return "Restaurant " + tenantID
	}
	switch {
	case p.RestaurantName != nil && *p.RestaurantName != "":
		return *p.RestaurantName
	case p.ContactEmail != nil && *p.ContactEmail != "":
		return "Restaurant de " + *p.ContactEmail
	case p.DisplayName != nil && *p.DisplayName != "":
		return *p.DisplayName
	}
	return "Restaurant " + tenantID
}

// resolveTenant finds the tenant of a subscription event.  The user id
// attached to the subscription metadata wins; then a subscriber row
// already linked to the customer; the customer email matched against
// profile contact emails is only a fallback.
func (s *PaymentService) resolveTenant(ctx context.Context, metaUser, customerID string) (string, error) {
	if metaUser != "" {
		ok, err := s.profiles.Exists(ctx, metaUser)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrTenantNotFound
		}
		return metaUser, nil
	}
	if customerID == "" {
		return "", fmt.Errorf("%w: event has neither user_id metadata nor customer", ErrTenantNotFound)
	}
	id, err := s.subscribers.TenantByCustomer(ctx, customerID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	email, err := s.gateway.CustomerEmail(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if email == "" {
		return "", fmt.Errorf("%w: customer %s has no email", ErrTenantNotFound, customerID)
	}
	id, err = s.profiles.FindByContactEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrTenantNotFound
	}
	if err != nil {
		return "", err
	}
	log.Printf("[payment] tenant resolved by email fallback customer_id=%s tenant_id=%s", customerID, id)
	return id, nil
}

func (s *PaymentService) subscriptionDeleted(ctx context.Context, ev payment.Event, out *PaymentOutcome) error {
	var sub subscriptionObject
	if err := decodeObject(ev, &sub); err != nil {
		return err
	}
	tenantID := strings.TrimSpace(sub.Metadata["user_id"])
	if tenantID == "" {
		id, err := s.subscribers.TenantByCustomer(ctx, expandableID(sub.Customer))
		if errors.Is(err, repository.ErrNotFound) {
			out.Status = model.WebhookIgnored
			out.Detail = "no subscriber for customer"
			return nil
		}
		if err != nil {
			return err
		}
		tenantID = id
	}
	out.TenantID = tenantID
	if err := s.subscribers.Cancel(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			out.Status = model.WebhookIgnored
			out.Detail = "no subscriber for tenant"
			return nil
		}
		return fmt.Errorf("cancel subscriber: %w", err)
	}
	log.Printf("[payment] subscription cancelled tenant_id=%s", tenantID)
	s.notifier.Notify(ctx, tenantID, model.NotificationInfo, "Abonnement annulé",
		"Votre abonnement a été annulé. Vous pouvez vous réabonner à tout moment depuis la page Tarifs.")
	return nil
}

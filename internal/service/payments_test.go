package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/restaurant-dashboard/internal/config"
	"github.com/iliyamo/restaurant-dashboard/internal/model"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
)

type paymentFixture struct {
	svc           *PaymentService
	gateway       *fakeGateway
	profiles      *memProfiles
	recharges     *memRecharges
	subscribers   *memSubscribers
	agents        *memAgents
	notifications *memNotifications
}

func newPaymentFixture(t *testing.T) paymentFixture {
	t.Helper()
	catalog, err := config.LoadCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	f := paymentFixture{
		gateway:       &fakeGateway{emails: map[string]string{}},
		profiles:      newMemProfiles("tenant-a"),
		subscribers:   newMemSubscribers(),
		agents:        &memAgents{},
		notifications: &memNotifications{},
	}
	f.recharges = newMemRecharges(f.profiles)
	notifier := NewNotifier(f.notifications, nil)
	f.svc = NewPaymentService(f.gateway, f.recharges, f.subscribers, f.agents, f.profiles, notifier, catalog, nil)
	return f
}

func event(t *testing.T, typ string, obj interface{}) payment.Event {
	t.Helper()
	raw, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}
	return payment.Event{ID: "evt_" + typ, Type: typ, Data: raw}
}

func checkoutEvent(t *testing.T, typ string, md map[string]string) payment.Event {
	return event(t, typ, map[string]interface{}{"id": "cs_1", "object": "checkout.session", "metadata": md})
}

func TestCheckoutCompleted_DuplicateDeliveryCreditsOnce(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	rc := &model.Recharge{UserID: "tenant-a", PackType: "M", Minutes: 250, Status: model.RechargePending}
	f.recharges.Create(ctx, rc)

	ev := checkoutEvent(t, EventCheckoutCompleted, map[string]string{
		"recharge_id": rc.ID, "user_id": "tenant-a", "pack_type": "M", "minutes": "250",
	})
	first, err := f.svc.Handle(ctx, ev)
	if err != nil || first.Status != model.WebhookSuccess {
		t.Fatalf("first delivery: outcome=%+v err=%v", first, err)
	}
	second, err := f.svc.Handle(ctx, ev)
	if err != nil || second.Status != model.WebhookIgnored {
		t.Fatalf("second delivery: outcome=%+v err=%v", second, err)
	}

	if got := f.profiles.balance("tenant-a"); got != 250 {
		t.Fatalf("expected balance 250, got %d", got)
	}
	if got := f.recharges.get(rc.ID).Status; got != model.RechargeCompleted {
		t.Fatalf("expected completed recharge, got %s", got)
	}
	if n := f.notifications.byType("tenant-a", model.NotificationSuccess); n != 1 {
		t.Fatalf("expected one success notification, got %d", n)
	}
}

func TestCheckoutCompleted_MissingMetadata(t *testing.T) {
	f := newPaymentFixture(t)
	ev := checkoutEvent(t, EventCheckoutCompleted, map[string]string{"recharge_id": "rc-1", "user_id": "tenant-a"})
	out, err := f.svc.Handle(context.Background(), ev)
	if !errors.Is(err, ErrMissingMetadata) {
		t.Fatalf("expected ErrMissingMetadata, got %v", err)
	}
	if out.Status != model.WebhookError {
		t.Fatalf("expected error outcome, got %+v", out)
	}
	if f.profiles.balance("tenant-a") != 0 {
		t.Fatalf("balance must not change")
	}
}

func TestCheckoutCompleted_UnknownRecharge(t *testing.T) {
	f := newPaymentFixture(t)
	ev := checkoutEvent(t, EventCheckoutCompleted, map[string]string{
		"recharge_id": "nope", "user_id": "tenant-a", "pack_type": "S", "minutes": "100",
	})
	if _, err := f.svc.Handle(context.Background(), ev); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckoutCompleted_FailedRechargeIsAcknowledgedWithoutCredit(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	rc := &model.Recharge{UserID: "tenant-a", PackType: "S", Minutes: 100, Status: model.RechargeFailed}
	f.recharges.Create(ctx, rc)

	out, err := f.svc.Handle(ctx, checkoutEvent(t, EventCheckoutCompleted, map[string]string{
		"recharge_id": rc.ID, "user_id": "tenant-a", "pack_type": "S", "minutes": "100",
	}))
	if err != nil {
		t.Fatalf("expected acknowledgement, got %v", err)
	}
	if out.Status != model.WebhookError {
		t.Fatalf("expected error outcome in the log, got %+v", out)
	}
	if f.profiles.balance("tenant-a") != 0 {
		t.Fatalf("failed recharge must not be credited")
	}
}

func TestCheckoutExpired_FailsPendingRecharge(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	rc := &model.Recharge{UserID: "tenant-a", PackType: "S", Minutes: 100, Status: model.RechargePending}
	f.recharges.Create(ctx, rc)

	out, err := f.svc.Handle(ctx, checkoutEvent(t, EventCheckoutExpired, map[string]string{"recharge_id": rc.ID}))
	if err != nil || out.Status != model.WebhookSuccess {
		t.Fatalf("outcome=%+v err=%v", out, err)
	}
	if f.recharges.get(rc.ID).Status != model.RechargeFailed {
		t.Fatalf("expected failed recharge")
	}
	if f.profiles.balance("tenant-a") != 0 {
		t.Fatalf("balance must not change")
	}

	again, err := f.svc.Handle(ctx, checkoutEvent(t, EventCheckoutExpired, map[string]string{"recharge_id": rc.ID}))
	if err != nil || again.Status != model.WebhookIgnored {
		t.Fatalf("replay: outcome=%+v err=%v", again, err)
	}
}

func TestPaymentFailed_UsesPaymentIntentMetadata(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	rc := &model.Recharge{UserID: "tenant-a", PackType: "S", Minutes: 100, Status: model.RechargePending}
	f.recharges.Create(ctx, rc)

	ev := event(t, EventPaymentFailed, map[string]interface{}{
		"id":       "pi_1",
		"object":   "payment_intent",
		"metadata": payment.CheckoutMetadata(payment.CheckoutRequest{RechargeID: rc.ID, UserID: "tenant-a", PackType: "S", Minutes: 100}),
	})
	out, err := f.svc.Handle(ctx, ev)
	if err != nil || out.Status != model.WebhookSuccess || out.TenantID != "tenant-a" {
		t.Fatalf("outcome=%+v err=%v", out, err)
	}
	if f.recharges.get(rc.ID).Status != model.RechargeFailed {
		t.Fatalf("expected failed recharge")
	}
}

func subscriptionObj(customer string, md map[string]string, price string) map[string]interface{} {
	return map[string]interface{}{
		"id":                 "sub_1",
		"object":             "subscription",
		"customer":           customer,
		"metadata":           md,
		"current_period_end": 1767225600,
		"items": map[string]interface{}{
			"data": []interface{}{map[string]interface{}{"price": map[string]interface{}{"id": price}}},
		},
	}
}

func TestSubscriptionCreated_TenantFromMetadata(t *testing.T) {
	f := newPaymentFixture(t)
	ev := event(t, EventSubscriptionCreated,
		subscriptionObj("cus_1", map[string]string{"user_id": "tenant-a"}, "price_1S5QpCKDjMnqbmvOJtfLP075"))

	out, err := f.svc.Handle(context.Background(), ev)
	if err != nil || out.TenantID != "tenant-a" {
		t.Fatalf("outcome=%+v err=%v", out, err)
	}
	sub := f.subscribers.rows["tenant-a"]
	if sub.SubscriptionTier != "premium" || sub.SubscriptionStatus != model.SubscriptionActive {
		t.Fatalf("unexpected subscriber %+v", sub)
	}
	if sub.StripeCustomerID == nil || *sub.StripeCustomerID != "cus_1" || sub.SubscriptionEndDate == nil {
		t.Fatalf("customer and period end must be stored: %+v", sub)
	}
	if f.gateway.lookups != 0 {
		t.Fatalf("metadata tenant must not trigger a customer lookup")
	}
	if f.notifications.byType("tenant-a", model.NotificationSuccess) != 1 {
		t.Fatalf("expected welcome notification")
	}
}

func TestSubscriptionCreated_EmailFallback(t *testing.T) {
	f := newPaymentFixture(t)
	email := "chef@bistro.fr"
	f.profiles.put(model.Profile{UserID: "tenant-a", ContactEmail: &email})
	f.gateway.emails["cus_9"] = "Chef@Bistro.fr"

	out, err := f.svc.Handle(context.Background(), event(t, EventSubscriptionCreated, subscriptionObj("cus_9", nil, "price_unknown")))
	if err != nil || out.TenantID != "tenant-a" {
		t.Fatalf("outcome=%+v err=%v", out, err)
	}
	if f.subscribers.rows["tenant-a"].SubscriptionTier != "basic" {
		t.Fatalf("unknown price must map to the default tier")
	}
}

func TestSubscriptionCreated_UpstreamFailure(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.emailErr = errors.New("connection refused")

	_, err := f.svc.Handle(context.Background(), event(t, EventSubscriptionCreated, subscriptionObj("cus_9", nil, "p")))
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if len(f.subscribers.rows) != 0 {
		t.Fatalf("no subscriber may be written")
	}
}

func TestInvoicePaid_UsesSubscriptionDetails(t *testing.T) {
	f := newPaymentFixture(t)
	inv := map[string]interface{}{
		"id":                   "in_1",
		"customer":             "cus_1",
		"subscription":         "sub_1",
		"subscription_details": map[string]interface{}{"metadata": map[string]string{"user_id": "tenant-a"}},
		"lines": map[string]interface{}{"data": []interface{}{map[string]interface{}{
			"price":  map[string]interface{}{"id": "price_1S5QoTKDjMnqbmvOTOTJGdn9"},
			"period": map[string]interface{}{"end": 1767225600},
		}}},
	}
	if _, err := f.svc.Handle(context.Background(), event(t, EventInvoicePaid, inv)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.subscribers.rows["tenant-a"].SubscriptionTier != "pro" {
		t.Fatalf("unexpected subscriber %+v", f.subscribers.rows["tenant-a"])
	}
}

func TestSubscriptionDeleted_ByCustomer(t *testing.T) {
	f := newPaymentFixture(t)
	cus := "cus_1"
	f.subscribers.rows["tenant-a"] = model.Subscriber{UserID: "tenant-a", StripeCustomerID: &cus, SubscriptionStatus: model.SubscriptionActive}

	out, err := f.svc.Handle(context.Background(), event(t, EventSubscriptionDeleted, subscriptionObj("cus_1", nil, "")))
	if err != nil || out.Status != model.WebhookSuccess {
		t.Fatalf("outcome=%+v err=%v", out, err)
	}
	if f.subscribers.rows["tenant-a"].SubscriptionStatus != model.SubscriptionCancelled {
		t.Fatalf("expected cancelled subscription")
	}
}

func TestHandle_UnknownEventIsIgnored(t *testing.T) {
	f := newPaymentFixture(t)
	out, err := f.svc.Handle(context.Background(), payment.Event{Type: "charge.refunded"})
	if err != nil || out.Status != model.WebhookIgnored {
		t.Fatalf("outcome=%+v err=%v", out, err)
	}
}

func TestVerify_MapsGatewayErrors(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.verifyErr = payment.ErrSignature
	if _, err := f.svc.Verify([]byte(`{}`), "t=1,v1=x"); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
	f.gateway.verifyErr = payment.ErrNotConfigured
	if _, err := f.svc.Verify([]byte(`{}`), "t=1,v1=x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSubscription_WelcomeOnlyOnActivation(t *testing.T) {
	f := newPaymentFixture(t)
	created := event(t, EventSubscriptionCreated,
		subscriptionObj("cus_1", map[string]string{"user_id": "tenant-a"}, "price_1S5QoTKDjMnqbmvOTOTJGdn9"))
	inv := map[string]interface{}{
		"id":                   "in_1",
		"customer":             "cus_1",
		"subscription":         "sub_1",
		"subscription_details": map[string]interface{}{"metadata": map[string]string{"user_id": "tenant-a"}},
		"lines": map[string]interface{}{"data": []interface{}{map[string]interface{}{
			"price":  map[string]interface{}{"id": "price_1S5QoTKDjMnqbmvOTOTJGdn9"},
			"period": map[string]interface{}{"end": 1767225600},
		}}},
	}

	for _, ev := range []payment.Event{created, event(t, EventInvoicePaid, inv), event(t, EventInvoicePaid, inv)} {
		if _, err := f.svc.Handle(context.Background(), ev); err != nil {
			t.Fatalf("%s: %v", ev.Type, err)
		}
	}
	if n := f.notifications.byType("tenant-a", model.NotificationSuccess); n != 1 {
		t.Fatalf("expected one welcome notification, got %d", n)
	}
	if f.agents.count() != 1 {
		t.Fatalf("expected one vocal agent request, got %d", f.agents.count())
	}

	// A cancelled tenant who subscribes again is welcomed again.
	if _, err := f.svc.Handle(context.Background(), event(t, EventSubscriptionDeleted, subscriptionObj("cus_1", nil, ""))); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Handle(context.Background(), created); err != nil {
		t.Fatal(err)
	}
	if n := f.notifications.byType("tenant-a", model.NotificationSuccess); n != 2 {
		t.Fatalf("expected a second welcome after reactivation, got %d", n)
	}
}

func TestSubscription_QueuesVocalAgentByTier(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		priority string
		delay    time.Duration
	}{
		{"premium", "price_1S5QpCKDjMnqbmvOJtfLP075", model.AgentPriorityUrgent, 24 * time.Hour},
		{"pro", "price_1S5QoTKDjMnqbmvOTOTJGdn9", model.AgentPriorityNormal, 72 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPaymentFixture(t)
			name := "Le Bistro"
			f.profiles.put(model.Profile{UserID: "tenant-a", RestaurantName: &name})

			before := time.Now().UTC()
			ev := event(t, EventSubscriptionCreated,
				subscriptionObj("cus_1", map[string]string{"user_id": "tenant-a"}, tc.price))
			if _, err := f.svc.Handle(context.Background(), ev); err != nil {
				t.Fatal(err)
			}
			if f.agents.count() != 1 {
				t.Fatalf("expected one request, got %d", f.agents.count())
			}
			a := f.agents.rows[0]
			if a.RestaurantID != "tenant-a" || a.RestaurantName != "Le Bistro" || a.SubscriptionTier != tc.name {
				t.Fatalf("unexpected request %+v", a)
			}
			if a.Status != model.AgentWaiting || a.Priority != tc.priority {
				t.Fatalf("status=%s priority=%s", a.Status, a.Priority)
			}
			if d := a.PromisedDeliveryAt.Sub(before); d < tc.delay || d > tc.delay+time.Minute {
				t.Fatalf("promised delivery %s after activation, want %s", d, tc.delay)
			}
		})
	}
}

func TestSubscription_AgentQueueFailureIsNotFatal(t *testing.T) {
	f := newPaymentFixture(t)
	f.agents.err = errors.New("deadlock")

	ev := event(t, EventSubscriptionCreated,
		subscriptionObj("cus_1", map[string]string{"user_id": "tenant-a"}, "price_1S5QpCKDjMnqbmvOJtfLP075"))
	if _, err := f.svc.Handle(context.Background(), ev); err != nil {
		t.Fatalf("subscription must still succeed: %v", err)
	}
	if f.subscribers.rows["tenant-a"].SubscriptionStatus != model.SubscriptionActive {
		t.Fatalf("subscriber not activated")
	}
	if f.notifications.byType("tenant-a", model.NotificationSuccess) != 1 {
		t.Fatalf("welcome notification expected")
	}
}

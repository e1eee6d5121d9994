// Package payment wraps the Stripe API: webhook signature verification,
// customer lookups and checkout session creation.  The rest of the code
// base only sees the small types declared here.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// ErrNotConfigured is returned when the key needed for an operation is
// missing from the environment.
var ErrNotConfigured = errors.New("missing configuration")

// ErrSignature is returned when a webhook payload fails signature
// verification.  Nothing in the payload may be trusted in that case.
var ErrSignature = errors.New("invalid webhook signature")

// Event is a verified provider event.  Data holds the raw JSON of the
// event object (session, subscription, invoice).
type Event struct {
	ID      string
	Type    string
	Created time.Time
	Data    json.RawMessage
}

// CheckoutRequest describes one minute pack purchase.
type CheckoutRequest struct {
	RechargeID    string
	UserID        string
	PackType      string
	Minutes       int
	Price         decimal.Decimal
	CustomerEmail string
}

// CheckoutSession is the hosted payment page created for a recharge.
type CheckoutSession struct {
	ID  string
	URL string
}

// StripeGateway talks to Stripe.  A gateway without a secret key can
// still verify webhooks, and one without a webhook secret can still
// create sessions.
type StripeGateway struct {
	webhookSecret string
	currency      string
	baseURL       string
	api           *client.API
}

// NewStripeGateway builds a gateway.  currency defaults to eur.
func NewStripeGateway(secretKey, webhookSecret, currency, baseURL string) *StripeGateway {
	g := &StripeGateway{
		webhookSecret: webhookSecret,
		currency:      strings.ToLower(currency),
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
	if g.currency == "" {
		g.currency = "eur"
	}
	if secretKey != "" {
		sc := &client.API{}
		sc.Init(secretKey, nil)
		g.api = sc
	}
	return g
}

// VerifyEvent checks the Stripe-Signature header against the raw payload
// and decodes the event envelope.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (Event, error) {
	if g.webhookSecret == "" {
		return Event{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET: %w", ErrNotConfigured)
	}
	if signature == "" {
		return Event{}, fmt.Errorf("%w: missing Stripe-Signature header", ErrSignature)
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	out := Event{ID: ev.ID, Type: string(ev.Type), Created: time.Unix(ev.Created, 0).UTC()}
	if ev.Data != nil {
		out.Data = ev.Data.Raw
	}
	return out, nil
}

// CustomerEmail returns the email address Stripe holds for a customer.
func (g *StripeGateway) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	if g.api == nil {
		return "", fmt.Errorf("STRIPE_SECRET_KEY: %w", ErrNotConfigured)
	}
	params := &stripe.CustomerParams{}
	params.Context = ctx
	c, err := g.api.Customers.Get(customerID, params)
	if err != nil {
		return "", fmt.Errorf("stripe customer %s: %w", customerID, err)
	}
	return c.Email, nil
}

// findCustomer returns the id of an existing customer with that email.
func (g *StripeGateway) findCustomer(ctx context.Context, email string) string {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)
	it := g.api.Customers.List(params)
	if it.Next() {
		return it.Customer().ID
	}
	return ""
}

// CreateCheckout opens a hosted payment session for one pack.  The
// session metadata carries everything the completion webhook needs to
// credit the right tenant without another lookup.
func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	if g.api == nil {
		return CheckoutSession{}, fmt.Errorf("STRIPE_SECRET_KEY: %w", ErrNotConfigured)
	}
	params := g.checkoutParams(req)
	params.Context = ctx
	if req.CustomerEmail != "" {
		if id := g.findCustomer(ctx, req.CustomerEmail); id != "" {
			params.Customer = stripe.String(id)
		} else {
			params.CustomerEmail = stripe.String(req.CustomerEmail)
		}
	}
	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("stripe checkout session: %w", err)
	}
	return CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// checkoutParams builds the session for one pack.  The recharge metadata
// goes on the session and on its payment intent, because
// payment_intent.payment_failed only carries the intent's own metadata.
func (g *StripeGateway) checkoutParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	md := CheckoutMetadata(req)
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:               stripe.String(g.baseURL + "/minutes?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:                stripe.String(g.baseURL + "/minutes/recharge?payment=cancelled"),
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String("required"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(fmt.Sprintf("Pack %s - %d minutes", req.PackType, req.Minutes)),
					Description: stripe.String(fmt.Sprintf("%d minutes d'appels IA pour votre restaurant", req.Minutes)),
				},
				UnitAmount: stripe.Int64(req.Price.Shift(2).Round(0).IntPart()),
			},
			Quantity: stripe.Int64(1),
		}},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: md,
		},
	}
	for k, v := range md {
		params.AddMetadata(k, v)
	}
	return params
}

// CheckoutMetadata is the metadata attached to a recharge session.
func CheckoutMetadata(req CheckoutRequest) map[string]string {
	return map[string]string{
		"recharge_id": req.RechargeID,
		"user_id":     req.UserID,
		"pack_type":   req.PackType,
		"minutes":     fmt.Sprintf("%d", req.Minutes),
	}
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recharge statuses.  A recharge leaves pending exactly once.
const (
	RechargePending   = "pending"
	RechargeCompleted = "completed"
	RechargeFailed    = "failed"
)

// Recharge is a purchase of a block of call minutes.  StripeSessionID is
// the checkout session that pays for it.
type Recharge struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	PackType        string          `json:"pack_type"`
	Minutes         int             `json:"minutes"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	StripeSessionID *string         `json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Subscriber statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// Subscriber links a tenant to its plan subscription.  There is at most
// one row per tenant.
type Subscriber struct {
	UserID              string     `json:"user_id"`
	StripeCustomerID    *string    `json:"stripe_customer_id"`
	SubscriptionTier    string     `json:"subscription_tier"`
	SubscriptionStatus  string     `json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Vocal agent provisioning states and priorities.
const (
	AgentWaiting = "waiting"

	AgentPriorityNormal = "normal"
	AgentPriorityUrgent = "urgent"
)

// VocalAgent is a provisioning request for the voice agent of a newly
// subscribed restaurant.  Operators work the queue outside this service;
// PromisedDeliveryAt is the deadline announced to the tenant.
type VocalAgent struct {
	ID                 string    `json:"id"`
	RestaurantID       string    `json:"restaurant_id"`
	RestaurantName     string    `json:"restaurant_name"`
	SubscriptionTier   string    `json:"subscription_tier"`
	Status             string    `json:"status"`
	Priority           string    `json:"priority"`
	PromisedDeliveryAt time.Time `json:"promised_delivery_at"`
	CreatedAt          time.Time `json:"created_at"`
}

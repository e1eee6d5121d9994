package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a take-away or delivery order captured by the voice agent.
// Items keeps the order in which the client listed the dishes; that
// order is the display order.  TotalAmount is priced once, when the
// order is inserted, from the restaurant's menu prices at that moment.
type Order struct {
	ID           string          `json:"id"`            // orders.id
	RestaurantID string          `json:"restaurant_id"` // orders.restaurant_id
	ClientName   string          `json:"client_name"`   // orders.client_name
	OrderTime    string          `json:"order_time"`    // orders.order_time
	Items        []string        `json:"items"`         // orders.items (JSON array)
	TotalAmount  decimal.Decimal `json:"total_amount"`  // orders.total_amount
	Status       string          `json:"status"`        // orders.status
	StatusLabel  string          `json:"status_label"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MenuPrice is one priced dish of a restaurant's menu.  Name is matched
// exactly against the item names spoken by the client.
type MenuPrice struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurant_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

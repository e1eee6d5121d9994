package model

import "time"

// Notification categories.
const (
	NotificationSuccess = "success"
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification is an in-app message for a tenant.  Rows are append-only
// except for IsRead.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Webhook log outcomes.
const (
	WebhookSuccess = "success"
	WebhookIgnored = "ignored"
	WebhookError   = "error"
)

// WebhookLog is one audit entry per inbound webhook request.
type WebhookLog struct {
	ID             string    `json:"id" dynamodbav:"id"`
	WebhookType    string    `json:"webhook_type" dynamodbav:"webhook_type"`
	DataType       string    `json:"data_type" dynamodbav:"data_type"`
	UserID         *string   `json:"user_id,omitempty" dynamodbav:"user_id,omitempty"`
	Status         string    `json:"status" dynamodbav:"status"`
	ErrorMessage   *string   `json:"error_message,omitempty" dynamodbav:"error_message,omitempty"`
	ResponseStatus *int      `json:"response_status,omitempty" dynamodbav:"response_status,omitempty"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"-"`
}

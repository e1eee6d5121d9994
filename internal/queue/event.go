// Package queue carries the dashboard change feed: events describing rows
// inserted or updated by the webhooks and dashboard commands, published to
// RabbitMQ and fanned out to the connected dashboards of the owning tenant.
package queue

import "time"

// Change actions.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
)

// ChangeEvent describes one row change.  Dashboards use it to refresh the
// matching list; it carries enough to render a toast without a query.
type ChangeEvent struct {
	Table    string    `json:"table"`
	Action   string    `json:"action"`
	TenantID string    `json:"tenant_id"`
	RecordID string    `json:"record_id"`
	Status   string    `json:"status,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	At       time.Time `json:"at"`
}

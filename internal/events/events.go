// Package events announces record changes to other services.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one accepted mutation. Record is the canonical row after the
// write and is empty for deletions.
type Event struct {
	Table     string    `json:"table"`
	Action    Action    `json:"action"`
	UserID    uuid.UUID `json:"user_id"`
	ID        uuid.UUID `json:"id"`
	Record    any       `json:"record,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RoutingKey is "<table>.<action>", e.g. "invoices.updated".
func (e Event) RoutingKey() string {
	return e.Table + "." + string(e.Action)
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Notify publishes ev and only logs a failure; a change that was stored stays stored.
func Notify(ctx context.Context, p Publisher, ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	if err := p.Publish(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to publish change event",
			"error", err,
			"routing_key", ev.RoutingKey(),
			"id", ev.ID)
	}
}

// Package audit defines the audit trail primitives shared across modules.
// Events are emitted from domain logic to capture key actions. Keep the
// event transport-agnostic so stores and sinks can fan out.
package audit

import (
	"context"
	"time"

	id "cleanpos/pkg/domain"
)

// Event records a security- or operations-relevant action.
type Event struct {
	Timestamp  time.Time
	OrderID    id.OrderID
	CustomerID id.CustomerID
	// Actor is the operator name when one was supplied (e.g. from the
	// employee PIN screen); empty otherwise.
	Actor  string
	Action string
	// Note carries human-readable detail, e.g. the status-change note
	// attached to an order on ticketing completion.
	Note string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByOrder(ctx context.Context, orderID id.OrderID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Ticketing actions.
const (
	ActionTagsPrinted        = "ticketing_tags_printed"
	ActionScanRejected       = "ticketing_scan_rejected"
	ActionOrderTicketed      = "ticketing_completed"
	ActionTicketingCancelled = "ticketing_cancelled"
)

// Package ports defines the collaborator interfaces the ticketing workflow
// consumes. Implementations live with their own modules; the workflow only
// sees these contracts.
package ports

import (
	"context"
	"log/slog"

	ordermodels "cleanpos/internal/order/models"
	id "cleanpos/pkg/domain"
	"cleanpos/pkg/platform/audit"
)

// OrderSource reflects the current order state at workflow start.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID id.OrderID) (*ordermodels.Order, error)
}

// OrderStatusSink transitions an order after successful ticketing. Called
// exactly once per successful completion.
type OrderStatusSink interface {
	UpdateStatus(ctx context.Context, orderID id.OrderID, next ordermodels.Status, note string) (*ordermodels.Order, error)
}

// CustomerNamer resolves the display name printed on tags. Optional; tags
// print without a name when absent.
type CustomerNamer interface {
	CustomerName(ctx context.Context, customerID id.CustomerID) (string, error)
}

// PrintedTag pairs a tag value with the garment it labels.
type PrintedTag struct {
	Value        string
	ItemID       id.ItemID
	ItemName     string
	CustomerName string
}

// TagPrinter renders and prints a batch of tags. The batch is atomic from
// the workflow's perspective: all tags printed, or none.
type TagPrinter interface {
	Print(ctx context.Context, tags []PrintedTag) error
}

// LogAudit records an audit event to both the structured logger and the
// audit store when either is configured.
func LogAudit(ctx context.Context, logger *slog.Logger, store audit.Store, event audit.Event, attrs ...any) {
	if logger != nil {
		args := append(attrs,
			"event", event.Action,
			"order_id", event.OrderID.String(),
			"log_type", "audit",
		)
		logger.InfoContext(ctx, event.Action, args...)
	}
	if store == nil {
		return
	}
	if err := store.Append(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to append audit event", "event", event.Action, "error", err)
	}
}

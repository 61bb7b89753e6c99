// Package printer provides TagPrinter implementations. The real label
// printer lives outside this service; the log printer stands in for it
// during development and in tests.
package printer

import (
	"context"
	"log/slog"

	"cleanpos/internal/ticketing/ports"
)

// LogPrinter writes each tag to the structured log instead of a device.
type LogPrinter struct {
	logger *slog.Logger
}

func NewLogPrinter(logger *slog.Logger) *LogPrinter {
	return &LogPrinter{logger: logger}
}

func (p *LogPrinter) Print(ctx context.Context, tags []ports.PrintedTag) error {
	for _, t := range tags {
		p.logger.InfoContext(ctx, "printing tag",
			"value", t.Value,
			"item", t.ItemName,
			"customer", t.CustomerName,
		)
	}
	p.logger.InfoContext(ctx, "tag batch printed", "count", len(tags))
	return nil
}

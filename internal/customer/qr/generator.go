// Package qr generates the JSON payloads encoded into customer QR codes.
// Rendering the payload to an image is the print collaborator's job; this
// package owns the payload contract and the asset lifecycle.
//
// Generation is keyed by customer id through a singleflight group: at most
// one generation is in flight per customer, and concurrent requests share
// its result instead of re-reading and re-uploading.
package qr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	custmodels "cleanpos/internal/customer/models"
	"cleanpos/internal/platform/clock"
	"cleanpos/internal/platform/metrics"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
	"cleanpos/pkg/sentinel"
)

// Payload is the JSON document encoded into a customer QR code.
type Payload struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AssetStore persists generated payloads under their asset key.
type AssetStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// CustomerSource resolves the customer whose payload is being generated.
type CustomerSource interface {
	FindByID(ctx context.Context, customerID id.CustomerID) (*custmodels.Customer, error)
}

// Generator produces and caches customer QR payload assets.
type Generator struct {
	customers CustomerSource
	assets    AssetStore
	clk       clock.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
	group     singleflight.Group
}

type Option func(*Generator)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func WithClock(clk clock.Clock) Option {
	return func(g *Generator) { g.clk = clk }
}

func New(customers CustomerSource, assets AssetStore, opts ...Option) (*Generator, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer source is required")
	}
	if assets == nil {
		return nil, fmt.Errorf("asset store is required")
	}
	gen := &Generator{customers: customers, assets: assets, clk: clock.NewSystem()}
	for _, opt := range opts {
		opt(gen)
	}
	return gen, nil
}

// AssetKey returns the storage key for a customer's QR payload.
func AssetKey(customerID id.CustomerID) string {
	return fmt.Sprintf("qrcodes/customer/%s.json", customerID.String())
}

// Ensure generates the payload asset for the customer if it does not exist
// yet and returns its key. Concurrent calls for the same customer coalesce
// onto a single generation.
func (g *Generator) Ensure(ctx context.Context, customerID id.CustomerID) (string, error) {
	if customerID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "customer_id is required")
	}

	key := AssetKey(customerID)
	if _, err := g.assets.Get(ctx, key); err == nil {
		return key, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to check QR asset")
	}

	_, err, shared := g.group.Do(key, func() (any, error) {
		return nil, g.generate(ctx, customerID, key)
	})
	if err != nil {
		return "", err
	}
	if shared && g.metrics != nil {
		g.metrics.IncrementQRShared()
	}
	return key, nil
}

func (g *Generator) generate(ctx context.Context, customerID id.CustomerID, key string) error {
	// A racing call may have finished generating between the existence
	// check and joining the group.
	if _, err := g.assets.Get(ctx, key); err == nil {
		return nil
	}

	customer, err := g.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "customer not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load customer")
	}

	payload := Payload{
		ID:          customer.ID.String(),
		Type:        "Customer",
		Name:        customer.Name,
		Phone:       customer.Phone,
		GeneratedAt: g.clk.Now(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode QR payload")
	}

	if err := g.assets.Put(ctx, key, "application/json", data); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store QR payload")
	}

	if g.metrics != nil {
		g.metrics.IncrementQRGenerated()
	}
	if g.logger != nil {
		g.logger.InfoContext(ctx, "qr payload generated",
			"customer_id", customerID.String(),
			"key", key,
		)
	}
	return nil
}

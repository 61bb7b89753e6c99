package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cleanpos/internal/order/models"
	"cleanpos/internal/platform/clock"
	"cleanpos/internal/platform/metrics"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
	"cleanpos/pkg/sentinel"
)

// Store is the order persistence boundary.
type Store interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID id.OrderID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID id.OrderID, next models.Status, note models.Note) (*models.Order, error)
}

// CustomerLookup verifies order ownership at creation.
type CustomerLookup interface {
	Exists(ctx context.Context, customerID id.CustomerID) (bool, error)
}

// NewItem is the caller-supplied shape of a garment at order creation.
type NewItem struct {
	Name       string
	PriceCents int64
}

// Service orchestrates the order lifecycle.
type Service struct {
	store     Store
	customers CustomerLookup
	clk       clock.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(clk clock.Clock) Option {
	return func(s *Service) { s.clk = clk }
}

func New(store Store, customers CustomerLookup, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("order store is required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer lookup is required")
	}

	svc := &Service{
		store:     store,
		customers: customers,
		clk:       clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateOrder creates an order in CREATED status with freshly minted item ids.
func (s *Service) CreateOrder(ctx context.Context, customerID id.CustomerID, items []NewItem) (*models.Order, error) {
	if customerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "customer_id is required")
	}
	if len(items) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order requires at least one item")
	}

	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up customer")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "customer not found")
	}

	now := s.clk.Now()
	order := &models.Order{
		ID:         id.NewOrderID(),
		CustomerID: customerID,
		Status:     models.StatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "item name is required")
		}
		order.Items = append(order.Items, models.Item{
			ID:         id.NewItemID(),
			Name:       name,
			PriceCents: item.PriceCents,
		})
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create order")
	}

	if s.metrics != nil {
		s.metrics.IncrementOrdersCreated()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "order created",
			"order_id", order.ID.String(),
			"customer_id", customerID.String(),
			"items", len(order.Items),
		)
	}
	return order, nil
}

// GetOrder retrieves an order by id.
func (s *Service) GetOrder(ctx context.Context, orderID id.OrderID) (*models.Order, error) {
	if orderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order_id is required")
	}
	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "order not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get order")
	}
	return order, nil
}

// ListByCustomer returns all orders for a customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]*models.Order, error) {
	if customerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "customer_id is required")
	}
	orders, err := s.store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list orders")
	}
	return orders, nil
}

// UpdateStatus transitions the order and appends the note. Illegal
// transitions surface as CodeInvalidState; the caller decides whether that
// is retryable.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.OrderID, next models.Status, noteText string) (*models.Order, error) {
	if !next.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown order status %q", next)
	}

	note := models.Note{CreatedAt: s.clk.Now(), Text: noteText}
	order, err := s.store.UpdateStatus(ctx, orderID, next, note)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "order not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.Newf(dErrors.CodeInvalidState, "order cannot transition to %s", next)
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update order status")
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementStatusChange(string(next))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "order status updated",
			"order_id", orderID.String(),
			"status", string(next),
		)
	}
	return order, nil
}

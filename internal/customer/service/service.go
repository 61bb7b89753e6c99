package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cleanpos/internal/customer/models"
	"cleanpos/internal/platform/clock"
	"cleanpos/internal/platform/metrics"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
	"cleanpos/pkg/sentinel"
)

// Store is the customer persistence boundary.
type Store interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, customerID id.CustomerID) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
}

// Service orchestrates customer accounts.
type Service struct {
	store   Store
	clk     clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
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

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("customer store is required")
	}
	svc := &Service{store: store, clk: clock.NewSystem()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create registers a new customer.
func (s *Service) Create(ctx context.Context, name, phone, email string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "customer name is required")
	}

	customer := &models.Customer{
		ID:        id.NewCustomerID(),
		Name:      name,
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		CreatedAt: s.clk.Now(),
	}
	if err := s.store.Create(ctx, customer); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
	}

	if s.metrics != nil {
		s.metrics.IncrementCustomersCreated()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "customer created", "customer_id", customer.ID.String())
	}
	return customer, nil
}

// Get retrieves a customer by id.
func (s *Service) Get(ctx context.Context, customerID id.CustomerID) (*models.Customer, error) {
	if customerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "customer_id is required")
	}
	customer, err := s.store.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "customer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get customer")
	}
	return customer, nil
}

// List returns all customers.
func (s *Service) List(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list customers")
	}
	return customers, nil
}

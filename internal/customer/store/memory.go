package store

import (
	"context"
	"sort"
	"sync"

	"cleanpos/internal/customer/models"
	id "cleanpos/pkg/domain"
	"cleanpos/pkg/sentinel"
)

// InMemoryCustomerStore keeps customers in a map guarded by a RWMutex.
type InMemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[id.CustomerID]*models.Customer
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{customers: make(map[id.CustomerID]*models.Customer)}
}

// Create stores a new customer. Returns sentinel.ErrConflict if the id exists.
func (s *InMemoryCustomerStore) Create(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customer.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *customer
	s.customers[customer.ID] = &cp
	return nil
}

// FindByID returns a copy of the customer or sentinel.ErrNotFound.
func (s *InMemoryCustomerStore) FindByID(_ context.Context, customerID id.CustomerID) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customers[customerID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	cp := *customer
	return &cp, nil
}

// Exists reports whether the customer is present.
func (s *InMemoryCustomerStore) Exists(_ context.Context, customerID id.CustomerID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.customers[customerID]
	return exists, nil
}

// List returns all customers sorted by name for stable display.
func (s *InMemoryCustomerStore) List(_ context.Context) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		cp := *customer
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Package store holds the order store implementations. The in-memory store
// is the reference implementation of the order collaborator interfaces; a
// persistent backend would sit behind the same methods.
package store

import (
	"context"
	"sync"

	"cleanpos/internal/order/models"
	id "cleanpos/pkg/domain"
	"cleanpos/pkg/sentinel"
)

// InMemoryOrderStore keeps orders in a map guarded by a RWMutex. All reads
// return deep copies.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[id.OrderID]*models.Order
}

func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{orders: make(map[id.OrderID]*models.Order)}
}

// Create stores a new order. Returns sentinel.ErrConflict if the id exists.
func (s *InMemoryOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return sentinel.ErrConflict
	}
	s.orders[order.ID] = order.Clone()
	return nil
}

// FindByID returns a copy of the order or sentinel.ErrNotFound.
func (s *InMemoryOrderStore) FindByID(_ context.Context, orderID id.OrderID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[orderID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return order.Clone(), nil
}

// ListByCustomer returns copies of all orders belonging to the customer.
func (s *InMemoryOrderStore) ListByCustomer(_ context.Context, customerID id.CustomerID) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Order
	for _, order := range s.orders {
		if order.CustomerID == customerID {
			result = append(result, order.Clone())
		}
	}
	return result, nil
}

// UpdateStatus transitions the order atomically: the legality check and the
// mutation happen under one lock so two concurrent transitions cannot both
// pass the check. The note is appended to the order's notes.
func (s *InMemoryOrderStore) UpdateStatus(_ context.Context, orderID id.OrderID, next models.Status, note models.Note) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[orderID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, sentinel.ErrInvalidState
	}

	order.Status = next
	if note.Text != "" {
		order.Notes = append(order.Notes, note)
	}
	order.UpdatedAt = note.CreatedAt
	return order.Clone(), nil
}

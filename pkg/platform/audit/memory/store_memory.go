package memory

import (
	"context"
	"sync"

	id "cleanpos/pkg/domain"
	"cleanpos/pkg/platform/audit"
)

// InMemoryStore keeps audit events per order. Events are append-only.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.OrderID][]audit.Event
	all    []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.OrderID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.OrderID] = append(s.events[event.OrderID], event)
	s.all = append(s.all, event)
	return nil
}

func (s *InMemoryStore) ListByOrder(_ context.Context, orderID id.OrderID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[orderID]...), nil
}

// ListRecent returns the most recent N events across all orders.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.all) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.all[start:]...), nil
}

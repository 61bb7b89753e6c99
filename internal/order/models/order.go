// Package models holds the order domain model. Order status is a closed
// enumeration; transitions are validated against an explicit table rather
// than compared as loose strings.
package models

import (
	"time"

	id "cleanpos/pkg/domain"
)

// Status is the order lifecycle state.
type Status string

const (
	// StatusCreated is the only status eligible for tag ticketing.
	StatusCreated    Status = "CREATED"
	StatusProcessing Status = "PROCESSING"
	StatusReady      Status = "READY"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid reports whether s is a member of the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusProcessing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// legalTransitions is the full order lifecycle. COMPLETED and CANCELLED are
// terminal.
var legalTransitions = map[Status][]Status{
	StatusCreated:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusReady, StatusCancelled},
	StatusReady:      {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Item is a single garment line item within an order.
type Item struct {
	ID         id.ItemID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
}

// Note is an audit annotation attached to an order, e.g. the status-change
// note written on ticketing completion.
type Note struct {
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
}

// Order is a customer's drop-off with its garments.
type Order struct {
	ID         id.OrderID    `json:"id"`
	CustomerID id.CustomerID `json:"customer_id"`
	Items      []Item        `json:"items"`
	Status     Status        `json:"status"`
	Notes      []Note        `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ItemIDs returns the ids of the order's items in order.
func (o *Order) ItemIDs() []id.ItemID {
	ids := make([]id.ItemID, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ID
	}
	return ids
}

// Clone returns a deep copy so stores can hand out orders without sharing
// mutable state.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	cp.Notes = append([]Note(nil), o.Notes...)
	return &cp
}

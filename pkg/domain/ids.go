// Package domain holds the typed identifiers shared across modules.
// Typed IDs prevent cross-entity assignment at compile time; parsing
// enforces the "valid, non-empty, non-nil UUID" invariant at trust
// boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "cleanpos/pkg/domain-errors"
)

type (
	// CustomerID identifies a customer.
	CustomerID uuid.UUID
	// OrderID identifies an order.
	OrderID uuid.UUID
	// ItemID identifies a single garment line item within an order.
	ItemID uuid.UUID
)

func (id CustomerID) String() string { return uuid.UUID(id).String() }
func (id OrderID) String() string    { return uuid.UUID(id).String() }
func (id ItemID) String() string     { return uuid.UUID(id).String() }

func (id CustomerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id OrderID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// Defined types do not inherit uuid.UUID's methods, so text marshaling is
// restated here; without it the ids would encode to JSON as byte arrays.

func (id CustomerID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id OrderID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ItemID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }

func (id *CustomerID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = CustomerID(u)
	return nil
}

func (id *OrderID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = OrderID(u)
	return nil
}

func (id *ItemID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ItemID(u)
	return nil
}

// NewCustomerID mints a random customer id.
func NewCustomerID() CustomerID { return CustomerID(uuid.New()) }

// NewOrderID mints a random order id.
func NewOrderID() OrderID { return OrderID(uuid.New()) }

// NewItemID mints a random item id.
func NewItemID() ItemID { return ItemID(uuid.New()) }

// ParseCustomerID parses and validates a customer id from its string form.
func ParseCustomerID(s string) (CustomerID, error) {
	u, err := parseUUID(s, "customer_id")
	return CustomerID(u), err
}

// ParseOrderID parses and validates an order id from its string form.
func ParseOrderID(s string) (OrderID, error) {
	u, err := parseUUID(s, "order_id")
	return OrderID(u), err
}

// ParseItemID parses and validates an item id from its string form.
func ParseItemID(s string) (ItemID, error) {
	u, err := parseUUID(s, "item_id")
	return ItemID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, field+" is not a valid uuid")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil uuid")
	}
	return u, nil
}

package session

import (
	"cleanpos/internal/ticketing/tag"
	id "cleanpos/pkg/domain"
)

// Context is the read-only order view a session validates scans against.
// Items belong to exactly this order for the session's lifetime; a changed
// item list requires a new session.
type Context struct {
	OrderID    id.OrderID
	CustomerID id.CustomerID
	ItemIDs    []id.ItemID
}

// Reason classifies a scan rejection.
type Reason string

const (
	// ReasonNone marks an accepted scan.
	ReasonNone Reason = ""
	// ReasonMalformedTag: the value did not decode to exactly two segments.
	ReasonMalformedTag Reason = "malformed_tag"
	// ReasonCustomerMismatch: the tag belongs to a different customer,
	// e.g. a tag scanned off another customer's rack.
	ReasonCustomerMismatch Reason = "customer_mismatch"
	// ReasonItemNotInOrder: well-formed tag, right customer, unrelated item.
	ReasonItemNotInOrder Reason = "item_not_in_order"
)

// Match decides whether a raw scan is valid within octx. It is a pure
// function of its arguments — it neither consults nor mutates session
// state — so it can be exercised in isolation and repeated safely.
//
// Checks short-circuit in order: decode, customer ownership, item
// membership. On success the matched item id is returned with ReasonNone.
func Match(raw string, octx Context) (id.ItemID, Reason) {
	customerID, itemID, err := tag.Decode(raw)
	if err != nil {
		return id.ItemID{}, ReasonMalformedTag
	}
	if customerID != octx.CustomerID.String() {
		return id.ItemID{}, ReasonCustomerMismatch
	}
	for _, candidate := range octx.ItemIDs {
		if candidate.String() == itemID {
			return candidate, ReasonNone
		}
	}
	return id.ItemID{}, ReasonItemNotInOrder
}

package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanpos/internal/ticketing/session"
	"cleanpos/internal/ticketing/tag"
	id "cleanpos/pkg/domain"
)

func newOrderContext(t *testing.T, itemCount int) session.Context {
	t.Helper()
	octx := session.Context{
		OrderID:    id.NewOrderID(),
		CustomerID: id.NewCustomerID(),
	}
	for i := 0; i < itemCount; i++ {
		octx.ItemIDs = append(octx.ItemIDs, id.NewItemID())
	}
	return octx
}

func tagFor(t *testing.T, octx session.Context, itemID id.ItemID) string {
	t.Helper()
	value, err := tag.Encode(octx.CustomerID.String(), itemID.String())
	require.NoError(t, err)
	return value
}

func TestMatch(t *testing.T) {
	octx := newOrderContext(t, 2)

	t.Run("accepts a tag for an item in the order", func(t *testing.T) {
		itemID, reason := session.Match(tagFor(t, octx, octx.ItemIDs[1]), octx)
		assert.Equal(t, session.ReasonNone, reason)
		assert.Equal(t, octx.ItemIDs[1], itemID)
	})

	t.Run("rejects a value that does not decode", func(t *testing.T) {
		_, reason := session.Match("not-a-tag", octx)
		assert.Equal(t, session.ReasonMalformedTag, reason)
	})

	t.Run("rejects a tag for another customer", func(t *testing.T) {
		other, err := tag.Encode(id.NewCustomerID().String(), octx.ItemIDs[0].String())
		require.NoError(t, err)

		_, reason := session.Match(other, octx)
		assert.Equal(t, session.ReasonCustomerMismatch, reason)
	})

	t.Run("rejects a tag for an item outside the order", func(t *testing.T) {
		stray, err := tag.Encode(octx.CustomerID.String(), id.NewItemID().String())
		require.NoError(t, err)

		_, reason := session.Match(stray, octx)
		assert.Equal(t, session.ReasonItemNotInOrder, reason)
	})

	t.Run("customer check runs before item membership", func(t *testing.T) {
		// Wrong customer and unknown item: the mismatch must win.
		value, err := tag.Encode(id.NewCustomerID().String(), id.NewItemID().String())
		require.NoError(t, err)

		_, reason := session.Match(value, octx)
		assert.Equal(t, session.ReasonCustomerMismatch, reason)
	})
}

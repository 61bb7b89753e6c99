package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanpos/internal/ticketing/tag"
	id "cleanpos/pkg/domain"
)

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	customerID := id.NewCustomerID().String()
	itemID := id.NewItemID().String()

	value, err := tag.Encode(customerID, itemID)
	require.NoError(t, err)

	gotCustomer, gotItem, err := tag.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, customerID, gotCustomer)
	assert.Equal(t, itemID, gotItem)
}

func TestEncode_RejectsInvalidIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		itemID     string
	}{
		{name: "empty customer id", customerID: "", itemID: "item-1"},
		{name: "empty item id", customerID: "cust-1", itemID: ""},
		{name: "customer id contains delimiter", customerID: "cust_1", itemID: "item-1"},
		{name: "item id contains delimiter", customerID: "cust-1", itemID: "item_1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tag.Encode(tc.customerID, tc.itemID)
			assert.Error(t, err)
		})
	}
}

func TestDecode_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "no delimiter", raw: "cust-1item-1"},
		{name: "leading delimiter", raw: "_item-1"},
		{name: "trailing delimiter", raw: "cust-1_"},
		{name: "only delimiter", raw: "_"},
		{name: "two delimiters", raw: "cust_1_item-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tag.Decode(tc.raw)
			assert.ErrorIs(t, err, tag.ErrMalformed)
		})
	}
}

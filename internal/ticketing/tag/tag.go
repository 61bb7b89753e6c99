// Package tag implements the codec for printed garment tags.
//
// Wire format: "<customerId>_<itemId>" — ASCII, single underscore
// delimiter, no escaping, no checksum. This is the full external contract;
// scanners hand the string back verbatim.
package tag

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the customer id from the item id in a tag value.
const Delimiter = "_"

// ErrMalformed is returned when a scanned value does not split into exactly
// two non-empty segments. The format has no escaping, so an identifier
// containing the delimiter cannot be represented; Encode refuses such ids
// up front rather than minting a tag that Decode would reject.
var ErrMalformed = errors.New("malformed tag")

// Encode builds the tag value for a garment. Both identifiers must be
// non-empty and free of the delimiter character.
func Encode(customerID, itemID string) (string, error) {
	if customerID == "" || itemID == "" {
		return "", fmt.Errorf("encode tag: empty identifier")
	}
	if strings.Contains(customerID, Delimiter) || strings.Contains(itemID, Delimiter) {
		return "", fmt.Errorf("encode tag: identifier contains delimiter %q", Delimiter)
	}
	return customerID + Delimiter + itemID, nil
}

// Decode splits a scanned value back into (customerId, itemId). It succeeds
// only if the split yields exactly two non-empty segments; anything else is
// ErrMalformed. No normalization is performed — callers must supply exact
// identifiers.
func Decode(raw string) (customerID, itemID string, err error) {
	parts := strings.Split(raw, Delimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrMalformed
	}
	return parts[0], parts[1], nil
}

// Package adapters bridges other modules' services onto the ticketing ports.
package adapters

import (
	"context"

	custservice "cleanpos/internal/customer/service"
	id "cleanpos/pkg/domain"
)

// CustomerNameAdapter exposes the customer service as a ports.CustomerNamer.
type CustomerNameAdapter struct {
	customers *custservice.Service
}

func NewCustomerNameAdapter(customers *custservice.Service) *CustomerNameAdapter {
	return &CustomerNameAdapter{customers: customers}
}

func (a *CustomerNameAdapter) CustomerName(ctx context.Context, customerID id.CustomerID) (string, error) {
	customer, err := a.customers.Get(ctx, customerID)
	if err != nil {
		return "", err
	}
	return customer.Name, nil
}

package models

import (
	"time"

	id "cleanpos/pkg/domain"
)

// Customer is a dry-cleaning customer account.
type Customer struct {
	ID        id.CustomerID `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone,omitempty"`
	Email     string        `json:"email,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a farm expense, as received from the farm API.
type Expense struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	SubType   string
	Category  string              // Declared sub-category label, e.g. "Electricity"
	Amount    decimal.NullDecimal // Invalid when the client omitted the amount
	CreatedAt string              // Raw creation date
}

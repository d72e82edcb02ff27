// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale represents a sale recorded by the farm, as received from the farm API.
// Items, Quantities and PricesPerUnit are parallel sequences; a price may be absent.
type Sale struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Date          string // Raw date as sent by the client, parsed by the normalizer
	SubType       string // Business occupation, e.g. "Poultry"
	Items         []string
	Quantities    []decimal.Decimal
	PricesPerUnit []decimal.NullDecimal
	// Malformed is set when the stored row could not be read; such sales carry no lines.
	Malformed string
}

// LineCount returns the number of sale lines, bounded by items and quantities.
func (s *Sale) LineCount() int {
	return min(len(s.Items), len(s.Quantities))
}

// DanglingEntries returns how many items or quantities have no counterpart.
func (s *Sale) DanglingEntries() int {
	return max(len(s.Items), len(s.Quantities)) - s.LineCount()
}

// PriceAt returns the unit price of line i, if one was recorded.
func (s *Sale) PriceAt(i int) (decimal.Decimal, bool) {
	if i < 0 || i >= len(s.PricesPerUnit) || !s.PricesPerUnit[i].Valid {
		return decimal.Zero, false
	}
	return s.PricesPerUnit[i].Decimal, true
}

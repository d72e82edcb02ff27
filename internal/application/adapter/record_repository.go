// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// SaleRepository defines read access to recorded sales.
type SaleRepository interface {
	// ListByUser retrieves every sale recorded by the user, in no particular order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Sale, error)
}

// ExpenseRepository defines read access to recorded expenses.
type ExpenseRepository interface {
	// ListByUser retrieves every expense recorded by the user, in no particular order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)
}

// FarmProfileRepository defines read access to farm profiles.
type FarmProfileRepository interface {
	// GetByUserID retrieves the user's farm profile.
	// Returns nil, nil when the user has not set one up.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.FarmProfile, error)
}

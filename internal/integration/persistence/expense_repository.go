// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/domain/entity"
	"github.com/farm-manager/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// ListByUser retrieves all expenses for a given user.
func (r *expenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

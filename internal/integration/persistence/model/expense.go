// Package model defines database models for persistence layer.
package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
// RecordedAt keeps the raw date string the mobile app wrote to created_at.
type ExpenseModel struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title      string              `gorm:"type:varchar(255)"`
	SubType    string              `gorm:"column:sub_type;type:varchar(100)"`
	Category   string              `gorm:"type:varchar(100)"`
	Amount     decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	RecordedAt string              `gorm:"column:created_at;type:varchar(40)"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		SubType:   m.SubType,
		Category:  m.Category,
		Amount:    m.Amount,
		CreatedAt: m.RecordedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:         expense.ID,
		UserID:     expense.UserID,
		Title:      expense.Title,
		SubType:    expense.SubType,
		Category:   expense.Category,
		Amount:     expense.Amount,
		RecordedAt: expense.CreatedAt,
	}
}

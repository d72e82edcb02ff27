// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/application/adapter"
)

// ListSubTypesInput represents the input for listing sub-types.
type ListSubTypesInput struct {
	UserID uuid.UUID
}

// ListSubTypesOutput lists the sub-types an account can filter by.
type ListSubTypesOutput struct {
	FarmName   string
	Configured []string
	SubTypes   []string
}

// ListSubTypesUseCase handles listing the sub-type universe of an account.
type ListSubTypesUseCase struct {
	loader *recordLoader
}

// NewListSubTypesUseCase creates a new ListSubTypesUseCase instance.
func NewListSubTypesUseCase(
	saleRepo adapter.SaleRepository,
	expenseRepo adapter.ExpenseRepository,
	profileRepo adapter.FarmProfileRepository,
) *ListSubTypesUseCase {
	return &ListSubTypesUseCase{loader: newRecordLoader(saleRepo, expenseRepo, profileRepo)}
}

// Execute returns the configured sub-types and the full universe.
func (uc *ListSubTypesUseCase) Execute(ctx context.Context, input ListSubTypesInput) (*ListSubTypesOutput, error) {
	records, err := uc.loader.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &ListSubTypesOutput{
		Configured: make([]string, 0),
		SubTypes:   ResolveSubTypes(records.configuredSubTypes(), records.sales, records.expenses),
	}
	if records.profile != nil {
		output.FarmName = records.profile.FarmName
		output.Configured = append(output.Configured, records.profile.SubTypes...)
	}
	return output, nil
}

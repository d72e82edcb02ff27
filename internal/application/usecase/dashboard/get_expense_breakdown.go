// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/application/adapter"
)

// GetExpenseBreakdownInput represents the input for the expense breakdown.
type GetExpenseBreakdownInput struct {
	UserID uuid.UUID
	Window WindowInput
}

// GetExpenseBreakdownOutput represents the expense breakdown for a period.
type GetExpenseBreakdownOutput struct {
	ExpenseBreakdown
	Preset      Preset
	PeriodLabel string
}

// GetExpenseBreakdownUseCase handles spending breakdown by expense category.
type GetExpenseBreakdownUseCase struct {
	loader   *recordLoader
	clock    adapter.Clock
	settings Settings
}

// NewGetExpenseBreakdownUseCase creates a new GetExpenseBreakdownUseCase instance.
func NewGetExpenseBreakdownUseCase(
	saleRepo adapter.SaleRepository,
	expenseRepo adapter.ExpenseRepository,
	profileRepo adapter.FarmProfileRepository,
	clock adapter.Clock,
	settings Settings,
) *GetExpenseBreakdownUseCase {
	return &GetExpenseBreakdownUseCase{
		loader:   newRecordLoader(saleRepo, expenseRepo, profileRepo),
		clock:    clock,
		settings: settings,
	}
}

// Execute retrieves spending by category for the selected window, up to today.
func (uc *GetExpenseBreakdownUseCase) Execute(
	ctx context.Context,
	input GetExpenseBreakdownInput,
) (*GetExpenseBreakdownOutput, error) {
	today := StartOfDay(uc.clock.Now().In(uc.settings.Normalize.location()))

	period, preset, err := input.Window.resolve(today, PresetMonthly)
	if err != nil {
		return nil, err
	}
	period = period.ClipEnd(today)

	records, err := uc.loader.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	breakdown := BreakdownExpenseCategories(records.expenses, period, uc.settings.Normalize)

	return &GetExpenseBreakdownOutput{
		ExpenseBreakdown: breakdown,
		Preset:           preset,
		PeriodLabel:      periodLabel(period),
	}, nil
}

// periodLabel renders a range as "01 Mar - 15 Mar", or a single day label.
func periodLabel(r DateRange) string {
	if r.IsEmpty() {
		return ""
	}
	if SameDay(r.Start, r.End) {
		return DayLabel(r.Start)
	}
	return fmt.Sprintf("%s - %s", DayLabel(r.Start), DayLabel(r.End))
}

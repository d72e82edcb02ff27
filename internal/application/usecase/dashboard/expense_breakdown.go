// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
	"github.com/farm-manager/backend/internal/domain/valueobject"
)

// CategoryShare is the amount spent on one expense sub-category.
type CategoryShare struct {
	Group            valueobject.ExpenseGroup
	TopLevel         string
	SubCategory      string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

// GroupTotal is the amount spent on one expense group.
type GroupTotal struct {
	Group      valueobject.ExpenseGroup
	Amount     decimal.Decimal
	Percentage float64
}

// ExpenseBreakdown reports expense spending by group and sub-category over a range.
type ExpenseBreakdown struct {
	Period      DateRange
	Total       decimal.Decimal
	Groups      []GroupTotal
	Categories  []CategoryShare
	Diagnostics entity.RecordDiagnostics
}

// groupOrder fixes the display order of groups.
var groupOrder = []valueobject.ExpenseGroup{
	valueobject.ExpenseGroupCOGS,
	valueobject.ExpenseGroupOperatingExpense,
	valueobject.ExpenseGroupUnclassified,
}

// BreakdownExpenseCategories sums expenses dated within r by classified sub-category.
// Unclassified expenses are reported under their own group so the report accounts for
// everything spent; malformed expenses are skipped and counted.
// Categories are ordered by amount, largest first.
func BreakdownExpenseCategories(expenses []*entity.Expense, r DateRange, opts NormalizeOptions) ExpenseBreakdown {
	type categoryKey struct {
		group valueobject.ExpenseGroup
		label string
	}

	shares := make(map[categoryKey]*CategoryShare)
	groupTotals := make(map[valueobject.ExpenseGroup]decimal.Decimal)
	total := decimal.Zero
	var diag entity.RecordDiagnostics

	for _, expense := range expenses {
		if expense == nil || !expense.Amount.Valid {
			diag.SkippedExpenses++
			continue
		}
		day, err := ParseRecordDate(expense.CreatedAt, opts.location())
		if err != nil {
			diag.SkippedExpenses++
			continue
		}
		if !r.Contains(day) {
			continue
		}

		class := opts.Taxonomy.Classify(expense.Category)
		if class.Group == valueobject.ExpenseGroupUnclassified {
			diag.UnclassifiedExpenses++
		}

		key := categoryKey{group: class.Group, label: class.SubCategory}
		share, ok := shares[key]
		if !ok {
			share = &CategoryShare{
				Group:       class.Group,
				TopLevel:    class.TopLevel,
				SubCategory: class.SubCategory,
				Amount:      decimal.Zero,
			}
			shares[key] = share
		}
		share.Amount = share.Amount.Add(expense.Amount.Decimal)
		share.TransactionCount++

		groupTotals[class.Group] = groupTotals[class.Group].Add(expense.Amount.Decimal)
		total = total.Add(expense.Amount.Decimal)
	}

	categories := make([]CategoryShare, 0, len(shares))
	for _, share := range shares {
		share.Percentage = percentageOf(share.Amount, total)
		categories = append(categories, *share)
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Amount.GreaterThan(categories[j].Amount)
		}
		return categories[i].SubCategory < categories[j].SubCategory
	})

	groups := make([]GroupTotal, 0, len(groupTotals))
	for _, group := range groupOrder {
		amount, ok := groupTotals[group]
		if !ok {
			continue
		}
		groups = append(groups, GroupTotal{
			Group:      group,
			Amount:     amount,
			Percentage: percentageOf(amount, total),
		})
	}

	return ExpenseBreakdown{
		Period:      r,
		Total:       total,
		Groups:      groups,
		Categories:  categories,
		Diagnostics: diag,
	}
}

func percentageOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(decimal.NewFromInt(100)).Div(total).Round(2).Float64()
	return pct
}

// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
	"github.com/farm-manager/backend/internal/domain/valueobject"
)

// NormalizeOptions configures how raw records become daily contributions.
type NormalizeOptions struct {
	// Location decides which calendar day a record falls on. Defaults to UTC.
	Location *time.Location
	Taxonomy valueobject.CategoryTaxonomy
	// FallbackPrices supplies a unit price, keyed by lowercased item name, for sale
	// lines that carry none. Lines with neither are excluded and counted as unpriced.
	FallbackPrices map[string]decimal.Decimal
	// UnclassifiedAsOperating buckets unknown expense categories as operating expenses
	// instead of excluding them.
	UnclassifiedAsOperating bool
	Logger                  *slog.Logger
}

func (o NormalizeOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o NormalizeOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o NormalizeOptions) fallbackPrice(item string) (decimal.Decimal, bool) {
	price, ok := o.FallbackPrices[strings.ToLower(strings.TrimSpace(item))]
	return price, ok
}

// SubTypeTotals holds per sub-type amounts for one day.
type SubTypeTotals map[string]decimal.Decimal

func (t SubTypeTotals) add(subType string, amount decimal.Decimal) {
	t[subType] = t[subType].Add(amount)
}

// DailyContributions maps a day key (YYYY-MM-DD) to that day's per sub-type totals.
type DailyContributions map[string]SubTypeTotals

func (c DailyContributions) add(day time.Time, subType string, amount decimal.Decimal) {
	key := DayKey(day)
	totals, ok := c[key]
	if !ok {
		totals = make(SubTypeTotals)
		c[key] = totals
	}
	totals.add(subType, amount)
}

// amount returns the contribution for a day and sub-type, zero when absent.
func (c DailyContributions) amount(dayKey, subType string) decimal.Decimal {
	if totals, ok := c[dayKey]; ok {
		return totals[subType]
	}
	return decimal.Zero
}

// NormalizedRecords are the per-day contributions derived from raw records.
// COGS and Expenses are disjoint: an expense lands in exactly one of them, or neither.
type NormalizedRecords struct {
	Revenue     DailyContributions
	COGS        DailyContributions
	Expenses    DailyContributions
	Diagnostics entity.RecordDiagnostics
}

// NormalizeSales converts sales into per-day revenue by sub-type.
// Line revenue is quantity × unit price; lines without any price are excluded and counted.
// Malformed sales and sales with an unparsable date are skipped and counted.
// Items or quantities without a counterpart are counted as mismatched lines.
func NormalizeSales(sales []*entity.Sale, subTypes []string, opts NormalizeOptions) (DailyContributions, entity.RecordDiagnostics) {
	resolver := newSubTypeResolver(subTypes)
	revenue := make(DailyContributions)
	var diag entity.RecordDiagnostics
	logger := opts.logger()

	for _, sale := range sales {
		if sale == nil {
			diag.SkippedSales++
			continue
		}
		if sale.Malformed != "" {
			diag.SkippedSales++
			logger.Warn("Skipping malformed sale", "saleID", sale.ID, "reason", sale.Malformed)
			continue
		}

		day, err := ParseRecordDate(sale.Date, opts.location())
		if err != nil {
			diag.SkippedSales++
			logger.Warn("Skipping sale with unparsable date",
				"saleID", sale.ID, "date", sale.Date, "error", err)
			continue
		}

		if dangling := sale.DanglingEntries(); dangling > 0 {
			diag.MismatchedLines += dangling
			logger.Warn("Ignoring sale entries without a matching item or quantity",
				"saleID", sale.ID, "items", len(sale.Items), "quantities", len(sale.Quantities))
		}

		subType := resolver.resolve(sale.SubType)
		total := decimal.Zero
		for i := 0; i < sale.LineCount(); i++ {
			quantity := sale.Quantities[i]
			price, ok := sale.PriceAt(i)
			if !ok {
				price, ok = opts.fallbackPrice(sale.Items[i])
			}
			if !ok {
				if !quantity.IsZero() {
					diag.UnpricedLines++
					logger.Warn("Excluding sale line without a price",
						"saleID", sale.ID, "item", sale.Items[i], "quantity", quantity.String())
				}
				continue
			}
			total = total.Add(quantity.Mul(price))
		}

		revenue.add(day, subType, total)
	}

	return revenue, diag
}

// NormalizeExpenses converts expenses into per-day COGS and operating expense by sub-type.
// Expenses with an unparsable date or a missing amount are skipped and counted.
func NormalizeExpenses(
	expenses []*entity.Expense,
	subTypes []string,
	opts NormalizeOptions,
) (cogs DailyContributions, operating DailyContributions, diag entity.RecordDiagnostics) {
	resolver := newSubTypeResolver(subTypes)
	cogs = make(DailyContributions)
	operating = make(DailyContributions)
	logger := opts.logger()

	for _, expense := range expenses {
		if expense == nil {
			diag.SkippedExpenses++
			continue
		}

		day, err := ParseRecordDate(expense.CreatedAt, opts.location())
		if err != nil {
			diag.SkippedExpenses++
			logger.Warn("Skipping expense with unparsable date",
				"expenseID", expense.ID, "date", expense.CreatedAt, "error", err)
			continue
		}

		if !expense.Amount.Valid {
			diag.SkippedExpenses++
			logger.Warn("Skipping expense without an amount", "expenseID", expense.ID)
			continue
		}

		subType := resolver.resolve(expense.SubType)
		switch opts.Taxonomy.Classify(expense.Category).Group {
		case valueobject.ExpenseGroupCOGS:
			cogs.add(day, subType, expense.Amount.Decimal)
		case valueobject.ExpenseGroupOperatingExpense:
			operating.add(day, subType, expense.Amount.Decimal)
		default:
			diag.UnclassifiedExpenses++
			if opts.UnclassifiedAsOperating {
				operating.add(day, subType, expense.Amount.Decimal)
				continue
			}
			logger.Debug("Excluding expense with unclassified category",
				"expenseID", expense.ID, "category", expense.Category)
		}
	}

	return cogs, operating, diag
}

// Normalize runs both normalizers and merges their diagnostics.
func Normalize(
	sales []*entity.Sale,
	expenses []*entity.Expense,
	subTypes []string,
	opts NormalizeOptions,
) *NormalizedRecords {
	revenue, saleDiag := NormalizeSales(sales, subTypes, opts)
	cogs, operating, expenseDiag := NormalizeExpenses(expenses, subTypes, opts)

	return &NormalizedRecords{
		Revenue:     revenue,
		COGS:        cogs,
		Expenses:    operating,
		Diagnostics: saleDiag.Add(expenseDiag),
	}
}

// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// BuildDailySeries produces one entry per calendar day for the windowDays days
// ending on today (inclusive), oldest first. Days without records are zero-filled.
// Every breakdown lists each sub-type once, in the given order; records of sub-types
// outside that list do not count toward any total.
//
// For every entry and sub-type: grossProfit = revenue - cogs and
// netProfit = grossProfit - expenses. Totals are the sums of their breakdowns,
// so the same identities hold for totals.
func BuildDailySeries(
	today time.Time,
	windowDays int,
	subTypes []string,
	records *NormalizedRecords,
) entity.DailySeries {
	if windowDays <= 0 {
		return entity.DailySeries{}
	}
	if records == nil {
		records = &NormalizedRecords{}
	}

	names := uniqueNames(subTypes)
	today = StartOfDay(today)
	series := make(entity.DailySeries, 0, windowDays)

	for i := windowDays - 1; i >= 0; i-- {
		day := time.Date(today.Year(), today.Month(), today.Day()-i, 0, 0, 0, 0, today.Location())
		series = append(series, buildEntry(day, names, records))
	}

	return series
}

func buildEntry(day time.Time, subTypes []string, records *NormalizedRecords) entity.DailyEntry {
	key := DayKey(day)

	revenue := newBreakdownBuilder(len(subTypes))
	cogs := newBreakdownBuilder(len(subTypes))
	grossProfit := newBreakdownBuilder(len(subTypes))
	expenses := newBreakdownBuilder(len(subTypes))
	netProfit := newBreakdownBuilder(len(subTypes))

	for _, name := range subTypes {
		rev := records.Revenue.amount(key, name)
		cost := records.COGS.amount(key, name)
		exp := records.Expenses.amount(key, name)
		gross := rev.Sub(cost)

		revenue.add(name, rev)
		cogs.add(name, cost)
		grossProfit.add(name, gross)
		expenses.add(name, exp)
		netProfit.add(name, gross.Sub(exp))
	}

	return entity.DailyEntry{
		Date:        day,
		Revenue:     revenue.build(),
		COGS:        cogs.build(),
		GrossProfit: grossProfit.build(),
		Expenses:    expenses.build(),
		NetProfit:   netProfit.build(),
	}
}

// breakdownBuilder accumulates a MetricBreakdown whose total is the sum of its items.
type breakdownBuilder struct {
	total decimal.Decimal
	items []entity.SubTypeAmount
}

func newBreakdownBuilder(capacity int) *breakdownBuilder {
	return &breakdownBuilder{total: decimal.Zero, items: make([]entity.SubTypeAmount, 0, capacity)}
}

func (b *breakdownBuilder) add(name string, value decimal.Decimal) {
	b.total = b.total.Add(value)
	b.items = append(b.items, entity.SubTypeAmount{Name: name, Value: value})
}

func (b *breakdownBuilder) build() entity.MetricBreakdown {
	return entity.MetricBreakdown{Total: b.total, Breakdown: b.items}
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

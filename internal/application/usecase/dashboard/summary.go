// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// PeriodSummary holds the five metrics summed over a range of days.
type PeriodSummary struct {
	Period      DateRange
	Days        int
	Revenue     entity.MetricBreakdown
	COGS        entity.MetricBreakdown
	GrossProfit entity.MetricBreakdown
	Expenses    entity.MetricBreakdown
	NetProfit   entity.MetricBreakdown
}

// Metric returns the summed breakdown for key.
func (s PeriodSummary) Metric(key entity.MetricKey) (entity.MetricBreakdown, bool) {
	return entity.DailyEntry{
		Revenue:     s.Revenue,
		COGS:        s.COGS,
		GrossProfit: s.GrossProfit,
		Expenses:    s.Expenses,
		NetProfit:   s.NetProfit,
	}.Metric(key)
}

// Summarize sums every metric, per sub-type, over the series days within r.
// Sums are linear, so the gross and net profit identities of the daily entries
// carry over to the summary.
func Summarize(series entity.DailySeries, r DateRange) PeriodSummary {
	revenue := newBreakdownAccumulator()
	cogs := newBreakdownAccumulator()
	grossProfit := newBreakdownAccumulator()
	expenses := newBreakdownAccumulator()
	netProfit := newBreakdownAccumulator()

	days := 0
	for _, entry := range series {
		if !r.Contains(entry.Date) {
			continue
		}
		days++
		revenue.add(entry.Revenue)
		cogs.add(entry.COGS)
		grossProfit.add(entry.GrossProfit)
		expenses.add(entry.Expenses)
		netProfit.add(entry.NetProfit)
	}

	return PeriodSummary{
		Period:      r,
		Days:        days,
		Revenue:     revenue.build(),
		COGS:        cogs.build(),
		GrossProfit: grossProfit.build(),
		Expenses:    expenses.build(),
		NetProfit:   netProfit.build(),
	}
}

// breakdownAccumulator sums breakdowns, keeping sub-types in first-seen order.
type breakdownAccumulator struct {
	order  []string
	values map[string]decimal.Decimal
}

func newBreakdownAccumulator() *breakdownAccumulator {
	return &breakdownAccumulator{values: make(map[string]decimal.Decimal)}
}

func (a *breakdownAccumulator) add(m entity.MetricBreakdown) {
	for _, item := range m.Breakdown {
		if _, ok := a.values[item.Name]; !ok {
			a.order = append(a.order, item.Name)
		}
		a.values[item.Name] = a.values[item.Name].Add(item.Value)
	}
}

func (a *breakdownAccumulator) build() entity.MetricBreakdown {
	b := newBreakdownBuilder(len(a.order))
	for _, name := range a.order {
		b.add(name, a.values[name])
	}
	return b.build()
}

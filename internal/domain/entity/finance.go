// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedSubType is the sub-type assigned to records without one.
const UncategorizedSubType = "Uncategorized"

// MetricKey identifies one of the five financial metrics.
type MetricKey string

const (
	MetricRevenue     MetricKey = "revenue"
	MetricCOGS        MetricKey = "cogs"
	MetricGrossProfit MetricKey = "grossProfit"
	MetricExpenses    MetricKey = "expenses"
	MetricNetProfit   MetricKey = "netProfit"
)

// AllMetrics lists the metrics in dashboard order.
var AllMetrics = []MetricKey{
	MetricRevenue,
	MetricCOGS,
	MetricGrossProfit,
	MetricExpenses,
	MetricNetProfit,
}

// IsValid reports whether k names a known metric.
func (k MetricKey) IsValid() bool {
	for _, m := range AllMetrics {
		if m == k {
			return true
		}
	}
	return false
}

// SubTypeAmount is the value of a metric for one sub-type.
type SubTypeAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MetricBreakdown is a metric total with its per sub-type decomposition.
// Names are unique within Breakdown.
type MetricBreakdown struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []SubTypeAmount `json:"breakdown"`
}

// ZeroBreakdown returns a breakdown with a zero total and no sub-types.
func ZeroBreakdown() MetricBreakdown {
	return MetricBreakdown{Total: decimal.Zero, Breakdown: []SubTypeAmount{}}
}

// Value returns the amount for the named sub-type, or zero when absent.
func (m MetricBreakdown) Value(name string) decimal.Decimal {
	for _, item := range m.Breakdown {
		if item.Name == name {
			return item.Value
		}
	}
	return decimal.Zero
}

// DailyEntry holds the five metrics for one calendar day.
type DailyEntry struct {
	Date        time.Time       `json:"date"`
	Revenue     MetricBreakdown `json:"revenue"`
	COGS        MetricBreakdown `json:"cogs"`
	GrossProfit MetricBreakdown `json:"grossProfit"`
	Expenses    MetricBreakdown `json:"expenses"`
	NetProfit   MetricBreakdown `json:"netProfit"`
}

// Metric returns the breakdown for key.
func (e DailyEntry) Metric(key MetricKey) (MetricBreakdown, bool) {
	switch key {
	case MetricRevenue:
		return e.Revenue, true
	case MetricCOGS:
		return e.COGS, true
	case MetricGrossProfit:
		return e.GrossProfit, true
	case MetricExpenses:
		return e.Expenses, true
	case MetricNetProfit:
		return e.NetProfit, true
	}
	return MetricBreakdown{}, false
}

// DailySeries is a contiguous, ascending sequence of daily entries.
type DailySeries []DailyEntry

// Dates returns the calendar days covered by the series.
func (s DailySeries) Dates() []time.Time {
	dates := make([]time.Time, len(s))
	for i, entry := range s {
		dates[i] = entry.Date
	}
	return dates
}

// RecordDiagnostics counts records and lines left out of a series build.
type RecordDiagnostics struct {
	SkippedSales         int `json:"skippedSales"`
	SkippedExpenses      int `json:"skippedExpenses"`
	UnpricedLines        int `json:"unpricedLines"`
	MismatchedLines      int `json:"mismatchedLines"`
	UnclassifiedExpenses int `json:"unclassifiedExpenses"`
}

// Add returns the field-wise sum of d and other.
func (d RecordDiagnostics) Add(other RecordDiagnostics) RecordDiagnostics {
	return RecordDiagnostics{
		SkippedSales:         d.SkippedSales + other.SkippedSales,
		SkippedExpenses:      d.SkippedExpenses + other.SkippedExpenses,
		UnpricedLines:        d.UnpricedLines + other.UnpricedLines,
		MismatchedLines:      d.MismatchedLines + other.MismatchedLines,
		UnclassifiedExpenses: d.UnclassifiedExpenses + other.UnclassifiedExpenses,
	}
}

// SeriesSnapshot is a built daily series together with the inputs that shaped it.
type SeriesSnapshot struct {
	Today       time.Time         `json:"today"`
	WindowDays  int               `json:"windowDays"`
	SubTypes    []string          `json:"subTypes"`
	Series      DailySeries       `json:"series"`
	Diagnostics RecordDiagnostics `json:"diagnostics"`
}

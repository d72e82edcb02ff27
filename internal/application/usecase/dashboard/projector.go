// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"sort"
	"time"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// FindEntry returns the series entry for the calendar day of date.
// The series must be sorted ascending, as BuildDailySeries produces it.
func FindEntry(series entity.DailySeries, date time.Time) (entity.DailyEntry, bool) {
	key := DayKey(date)
	i := sort.Search(len(series), func(i int) bool {
		return DayKey(series[i].Date) >= key
	})
	if i < len(series) && DayKey(series[i].Date) == key {
		return series[i], true
	}
	return entity.DailyEntry{}, false
}

// ProjectMetric extracts one metric for one day. It returns a zero breakdown
// (total 0, no sub-types) when the day is not in the series or the metric is unknown.
// The returned breakdown does not share memory with the series.
func ProjectMetric(series entity.DailySeries, date time.Time, metric entity.MetricKey) entity.MetricBreakdown {
	entry, ok := FindEntry(series, date)
	if !ok {
		return entity.ZeroBreakdown()
	}
	breakdown, ok := entry.Metric(metric)
	if !ok {
		return entity.ZeroBreakdown()
	}
	return entity.MetricBreakdown{
		Total:     breakdown.Total,
		Breakdown: append(make([]entity.SubTypeAmount, 0, len(breakdown.Breakdown)), breakdown.Breakdown...),
	}
}

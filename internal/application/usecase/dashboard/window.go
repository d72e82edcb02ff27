// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"strings"
	"time"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// Preset is a named rolling window ending today.
type Preset string

const (
	PresetWeekly      Preset = "weekly"
	PresetMonthly     Preset = "monthly"
	PresetThreeMonths Preset = "3months"
)

// ParsePreset accepts the preset names used by the app ("Weekly", "Monthly", "3 Months")
// and their lowercase forms.
func ParsePreset(s string) (Preset, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch normalized {
	case "weekly", "week":
		return PresetWeekly, true
	case "monthly", "month":
		return PresetMonthly, true
	case "3months", "threemonths", "quarterly", "quarter":
		return PresetThreeMonths, true
	}
	return "", false
}

// DateRange is an inclusive range of calendar days. The zero value is empty.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the range covers no days.
func (r DateRange) IsEmpty() bool {
	return r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start)
}

// Contains reports whether day falls within the range, at calendar-day granularity.
func (r DateRange) Contains(day time.Time) bool {
	if r.IsEmpty() {
		return false
	}
	key := DayKey(day)
	return key >= DayKey(r.Start) && key <= DayKey(r.End)
}

// Days lists every calendar day in the range, oldest first.
func (r DateRange) Days() []time.Time {
	if r.IsEmpty() {
		return []time.Time{}
	}
	var days []time.Time
	for d := StartOfDay(r.Start); !d.After(r.End); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, d.Location()) {
		days = append(days, d)
	}
	return days
}

// ClipEnd returns the range with its end moved back to limit when it extends past it.
func (r DateRange) ClipEnd(limit time.Time) DateRange {
	if r.IsEmpty() {
		return r
	}
	limit = StartOfDay(limit)
	if r.End.After(limit) {
		r.End = limit
	}
	return r
}

// IsValidCustomRange reports whether a custom start/end pair is usable: both set,
// and end not before start.
func IsValidCustomRange(start, end *time.Time) bool {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return false
	}
	return DayKey(*end) >= DayKey(*start)
}

// SelectInterval resolves the date range a chart should display.
// A valid custom range always wins, whatever preset is selected. Otherwise:
//   - Weekly: the 7 days ending today
//   - Monthly: the calendar month containing today
//   - 3 Months: the three calendar months ending with the current month
//
// Monthly and 3 Months may extend past today; use ClipEnd for month-to-date views.
// An unknown preset without a valid custom range yields an empty range.
func SelectInterval(today time.Time, preset Preset, customStart, customEnd *time.Time) DateRange {
	today = StartOfDay(today)
	loc := today.Location()

	if IsValidCustomRange(customStart, customEnd) {
		return DateRange{
			Start: time.Date(customStart.Year(), customStart.Month(), customStart.Day(), 0, 0, 0, 0, loc),
			End:   time.Date(customEnd.Year(), customEnd.Month(), customEnd.Day(), 0, 0, 0, 0, loc),
		}
	}

	switch preset {
	case PresetWeekly:
		return DateRange{
			Start: time.Date(today.Year(), today.Month(), today.Day()-6, 0, 0, 0, 0, loc),
			End:   today,
		}
	case PresetMonthly:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
	case PresetThreeMonths:
		return DateRange{
			Start: time.Date(today.Year(), today.Month()-2, 1, 0, 0, 0, 0, loc),
			End:   time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, loc),
		}
	}

	return DateRange{}
}

// IntervalDays returns the days of the series that fall within r, oldest first.
// An empty series yields no days.
func IntervalDays(series entity.DailySeries, r DateRange) []time.Time {
	days := make([]time.Time, 0)
	if len(series) == 0 || r.IsEmpty() {
		return days
	}
	for _, entry := range series {
		if r.Contains(entry.Date) {
			days = append(days, entry.Date)
		}
	}
	return days
}

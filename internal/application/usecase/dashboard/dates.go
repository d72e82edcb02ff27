// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// dayKeyLayout is the calendar-day key used to index normalized contributions.
const dayKeyLayout = "2006-01-02"

// errUnparsableDate is returned when a record date matches none of the accepted layouts.
var errUnparsableDate = errors.New("unparsable date")

// recordDateLayouts lists the date formats the farm app has been seen to send.
var recordDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// shortMonthNames are used for chart axis labels.
var shortMonthNames = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// ParseRecordDate parses a raw record date and returns the start of its calendar day in loc.
// Dates with an explicit offset are converted to loc first; dates without one are read as loc.
func ParseRecordDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty", errUnparsableDate)
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range recordDateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 || layout == time.RFC3339Nano {
			t, err = time.Parse(layout, raw)
			if err == nil {
				t = t.In(loc)
			}
		} else {
			t, err = time.ParseInLocation(layout, raw, loc)
		}
		if err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", errUnparsableDate, raw)
}

// StartOfDay zeroes the time of day, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey returns the calendar-day key of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayLabel returns the chart axis label for a day (e.g., "07 Mar").
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), shortMonthNames[t.Month()])
}

// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"time"

	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

// WindowInput selects the interval a chart displays.
// A valid custom range wins over the preset; an invalid one is ignored.
type WindowInput struct {
	Preset    string
	StartDate *time.Time
	EndDate   *time.Time
}

// resolve returns the interval for today. An empty preset uses fallback.
func (w WindowInput) resolve(today time.Time, fallback Preset) (DateRange, Preset, error) {
	preset := fallback
	if w.Preset != "" {
		parsed, ok := ParsePreset(w.Preset)
		if !ok {
			return DateRange{}, "", domainerror.NewFinanceError(
				domainerror.ErrCodeInvalidPreset,
				domainerror.ErrInvalidPreset.Error(),
				domainerror.ErrInvalidPreset,
			)
		}
		preset = parsed
	}
	return SelectInterval(today, preset, w.StartDate, w.EndDate), preset, nil
}

// pageOf clamps page and slices days for it.
func pageOf(days []time.Time, page, pageSize int) ([]time.Time, int, int) {
	totalPages := TotalPages(len(days), pageSize)
	page = ClampPage(page, totalPages)
	return Paginate(days, page, pageSize), page, totalPages
}

// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import "time"

// MaxWindowDays bounds the historical window a caller may request.
const MaxWindowDays = 730

// DefaultWindowDays is the historical window used when none is requested.
const DefaultWindowDays = 180

// Settings holds the engine parameters shared by the finance use cases.
type Settings struct {
	WindowDays int
	PageSize   int
	// CacheTTL is how long a built series is reused. Zero disables caching.
	CacheTTL  time.Duration
	Normalize NormalizeOptions
}

func (s Settings) windowDays() int {
	if s.WindowDays <= 0 {
		return DefaultWindowDays
	}
	return s.WindowDays
}

func (s Settings) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

// DefaultPageSize is the number of days shown per chart page.
const DefaultPageSize = 7

// Paginate returns items[page*pageSize : page*pageSize+pageSize], bounded by len(items).
// It does not clamp page: a negative or out-of-range page yields an empty slice.
// Callers that want the nearest valid page should use ClampPage first.
// A non-positive pageSize uses DefaultPageSize.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := page * pageSize
	if page < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end:end]
}

// TotalPages returns ceil(length / pageSize).
func TotalPages(length, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if length <= 0 {
		return 0
	}
	return (length + pageSize - 1) / pageSize
}

// ClampPage bounds page to [0, totalPages-1], or 0 when there are no pages.
func ClampPage(page, totalPages int) int {
	if totalPages <= 0 || page < 0 {
		return 0
	}
	if page >= totalPages {
		return totalPages - 1
	}
	return page
}

// Package error defines domain-specific errors for the farm finance service.
package error

import "errors"

// Finance domain errors.
var (
	// ErrInvalidMetric is returned when a metric key is not one of the five known metrics.
	ErrInvalidMetric = errors.New("metric must be: revenue, cogs, grossProfit, expenses, or netProfit")

	// ErrMissingMetric is returned when no metric is provided.
	ErrMissingMetric = errors.New("metric is required")

	// ErrInvalidPreset is returned when the window preset is not recognized.
	ErrInvalidPreset = errors.New("preset must be: weekly, monthly, or 3months")

	// ErrInvalidPage is returned when the page parameter is not a number.
	ErrInvalidPage = errors.New("page must be a non-negative integer")

	// ErrInvalidWindow is returned when the historical window length is out of bounds.
	ErrInvalidWindow = errors.New("days must be between 1 and 730")

	// ErrRecordSourceUnavailable is returned when sale or expense records cannot be loaded.
	ErrRecordSourceUnavailable = errors.New("financial records are unavailable")
)

// FinanceErrorCode defines error codes for finance dashboard errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinanceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMetric FinanceErrorCode = "FIN-010001"
	ErrCodeMissingMetric FinanceErrorCode = "FIN-010002"
	ErrCodeInvalidPreset FinanceErrorCode = "FIN-010003"
	ErrCodeInvalidPage   FinanceErrorCode = "FIN-010004"
	ErrCodeInvalidWindow FinanceErrorCode = "FIN-010005"

	// Upstream errors (02XXXX)
	ErrCodeRecordSourceUnavailable FinanceErrorCode = "FIN-020001"

	// Throttling errors (03XXXX)
	ErrCodeRateLimited FinanceErrorCode = "FIN-030001"

	// Internal errors (99XXXX)
	ErrCodeFinanceInternalError FinanceErrorCode = "FIN-990001"
)

// FinanceError represents a finance error with code and message.
type FinanceError struct {
	Code    FinanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinanceError) Unwrap() error {
	return e.Err
}

// NewFinanceError creates a new FinanceError with the given code and message.
func NewFinanceError(code FinanceErrorCode, message string, err error) *FinanceError {
	return &FinanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

package error

import "errors"

// Analytics domain errors.
var (
	// ErrAnalyticsUnavailable is returned when the transaction set could not be read.
	ErrAnalyticsUnavailable = errors.New("failed to compute analytics")

	// ErrStaleAnalytics is returned when a summary was computed before a concurrent write.
	ErrStaleAnalytics = errors.New("analytics summary is stale")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Data access errors (03XXXX)
	ErrCodeAnalyticsUnavailable AnalyticsErrorCode = "ANL-030001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code, message, and underlying error.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

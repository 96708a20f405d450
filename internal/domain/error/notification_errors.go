package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationRender is returned when a notification template cannot be rendered.
	ErrNotificationRender = errors.New("failed to render notification")

	// ErrNotificationRejected is returned when the provider refuses a message for good.
	ErrNotificationRejected = errors.New("notification rejected by provider")

	// ErrNotificationUnavailable is returned when the provider could not be reached or asked to retry.
	ErrNotificationUnavailable = errors.New("notification provider unavailable")
)

// NotificationErrorCode defines error codes for notification errors.
// Format: NTF-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	// Rendering errors (01XXXX)
	ErrCodeNotificationRender NotificationErrorCode = "NTF-010001"

	// Delivery errors (02XXXX)
	ErrCodeNotificationRejected    NotificationErrorCode = "NTF-020001"
	ErrCodeNotificationUnavailable NotificationErrorCode = "NTF-020002"
)

// NotificationError represents a failed owner notification.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether sending the same message again may succeed.
func (e *NotificationError) Retryable() bool {
	return e.Code == ErrCodeNotificationUnavailable
}

// NewNotificationError creates a new NotificationError with the given code, message, and underlying error.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

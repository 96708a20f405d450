// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found for the owner.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionKind is returned when the kind is neither income nor expense.
	ErrInvalidTransactionKind = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date cannot be parsed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the amount is not a positive number.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionCategory is returned when the category is not one of the known categories.
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// ErrInvalidTransactionID is returned when a transaction id is not a valid UUID.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrEmptyTransactionBatch is returned when a bulk request carries no rows.
	ErrEmptyTransactionBatch = errors.New("transaction list cannot be empty")

	// ErrInvalidDateFilter is returned when a listing start or end date cannot be parsed.
	ErrInvalidDateFilter = errors.New("invalid date filter")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrTooManyTransactions is returned when a bulk request exceeds the row limit.
	ErrTooManyTransactions = errors.New("too many transactions")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionKind     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate     TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound        TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionCategory TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidTransactionID       TransactionErrorCode = "TXN-010006"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010007"
	ErrCodeEmptyTransactionBatch      TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidDateFilter          TransactionErrorCode = "TXN-010009"
	ErrCodeDescriptionTooLong         TransactionErrorCode = "TXN-010010"
	ErrCodeTooManyTransactions        TransactionErrorCode = "TXN-010011"

	// Persistence errors (03XXXX)
	ErrCodeTransactionPersistence TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
	Index   int // Row index for bulk validation failures, -1 otherwise
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code, message, and underlying error.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
		Index:   -1,
	}
}

// NewTransactionRowError creates a TransactionError that points at a row of a bulk request.
func NewTransactionRowError(index int, code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
		Index:   index,
	}
}

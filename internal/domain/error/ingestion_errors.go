package error

import "errors"

// Ingestion domain errors.
var (
	// ErrMissingFile is returned when an upload carries no file or an empty one.
	ErrMissingFile = errors.New("file is required")

	// ErrUnsupportedFileType is returned when the upload content type is not accepted by the route.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

	// ErrExtractionFailed is returned when text could not be extracted from the upload.
	ErrExtractionFailed = errors.New("failed to extract text from file")

	// ErrExtractorUnavailable is returned when no configured extractor can read the file type.
	ErrExtractorUnavailable = errors.New("text extraction is not available")

	// ErrIngestionPersistence is returned when accepted records could not be stored.
	ErrIngestionPersistence = errors.New("failed to store imported transactions")
)

// IngestionErrorCode defines error codes for ingestion errors.
// Format: ING-XXYYYY where XX is category and YYYY is specific error.
type IngestionErrorCode string

const (
	// Upload precondition errors (01XXXX)
	ErrCodeMissingFile         IngestionErrorCode = "ING-010001"
	ErrCodeUnsupportedFileType IngestionErrorCode = "ING-010002"
	ErrCodeFileTooLarge        IngestionErrorCode = "ING-010003"

	// Extraction errors (02XXXX)
	ErrCodeExtractionFailed     IngestionErrorCode = "ING-020001"
	ErrCodeExtractorUnavailable IngestionErrorCode = "ING-020002"

	// Persistence errors (03XXXX)
	ErrCodeIngestionPersistence IngestionErrorCode = "ING-030001"
)

// IngestionError represents an ingestion error with code and message.
type IngestionError struct {
	Code    IngestionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IngestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IngestionError) Unwrap() error {
	return e.Err
}

// NewIngestionError creates a new IngestionError with the given code, message, and underlying error.
func NewIngestionError(code IngestionErrorCode, message string, err error) *IngestionError {
	return &IngestionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewExtractionError wraps an extractor failure. A missing extractor is a server fault and
// keeps its own code.
func NewExtractionError(err error) *IngestionError {
	if errors.Is(err, ErrExtractorUnavailable) {
		return NewIngestionError(ErrCodeExtractorUnavailable, ErrExtractorUnavailable.Error(), err)
	}
	return NewIngestionError(ErrCodeExtractionFailed, ErrExtractionFailed.Error(), err)
}

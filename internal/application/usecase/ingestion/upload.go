package ingestion

import (
	"fmt"
	"mime"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Accepted content types.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

var (
	// DocumentContentTypes are the types accepted by the statement import.
	DocumentContentTypes = []string{ContentTypePDF, ContentTypeText}

	// ImageContentTypes are the types accepted by the receipt import.
	ImageContentTypes = []string{ContentTypeJPEG, ContentTypePNG}
)

// MediaType returns the lower-cased media type of a Content-Type value without parameters.
func MediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// ValidateUpload checks that the file is present, within maxBytes and of an allowed type.
func ValidateUpload(file adapter.UploadedFile, allowed []string, maxBytes int64) error {
	if len(file.Content) == 0 {
		return domainerror.NewIngestionError(
			domainerror.ErrCodeMissingFile,
			"a non-empty file is required",
			domainerror.ErrMissingFile,
		)
	}

	if maxBytes > 0 && int64(len(file.Content)) > maxBytes {
		return domainerror.NewIngestionError(
			domainerror.ErrCodeFileTooLarge,
			fmt.Sprintf("file must not exceed %d bytes", maxBytes),
			domainerror.ErrFileTooLarge,
		)
	}

	mediaType := MediaType(file.ContentType)
	for _, t := range allowed {
		if mediaType == t {
			return nil
		}
	}

	return domainerror.NewIngestionError(
		domainerror.ErrCodeUnsupportedFileType,
		fmt.Sprintf("file type %q is not supported, expected one of: %s", mediaType, strings.Join(allowed, ", ")),
		domainerror.ErrUnsupportedFileType,
	)
}

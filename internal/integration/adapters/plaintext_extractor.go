package adapters

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// PlainTextExtractor returns text uploads unchanged.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new PlainTextExtractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract implements adapter.TextExtractor.
func (e *PlainTextExtractor) Extract(_ context.Context, file adapter.UploadedFile) (string, error) {
	if !utf8.Valid(file.Content) {
		return "", fmt.Errorf("file %q is not valid UTF-8 text", file.Name)
	}
	return string(file.Content), nil
}

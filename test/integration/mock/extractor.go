package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// ErrExtraction is returned by Extractor when it is set to fail.
var ErrExtraction = errors.New("extraction service unavailable")

// Extractor returns the uploaded bytes as the transcription, standing in for OCR.
type Extractor struct {
	mu   sync.Mutex
	fail bool
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) SetFailing(fail bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fail = fail
}

func (e *Extractor) Extract(_ context.Context, file adapter.UploadedFile) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return "", ErrExtraction
	}
	return string(file.Content), nil
}

var _ adapter.TextExtractor = (*Extractor)(nil)

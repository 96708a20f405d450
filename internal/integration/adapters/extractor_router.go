package adapters

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ExtractorRouter dispatches each file to the extractor registered for its media type.
type ExtractorRouter struct {
	extractors map[string]adapter.TextExtractor
}

// NewExtractorRouter creates an empty ExtractorRouter.
func NewExtractorRouter() *ExtractorRouter {
	return &ExtractorRouter{extractors: make(map[string]adapter.TextExtractor)}
}

// Register adds an extractor for the given media types.
func (r *ExtractorRouter) Register(extractor adapter.TextExtractor, mediaTypes ...string) *ExtractorRouter {
	for _, t := range mediaTypes {
		r.extractors[strings.ToLower(t)] = extractor
	}
	return r
}

// Extract implements adapter.TextExtractor.
func (r *ExtractorRouter) Extract(ctx context.Context, file adapter.UploadedFile) (string, error) {
	t := mediaType(file.ContentType)
	extractor, ok := r.extractors[t]
	if !ok {
		return "", fmt.Errorf("no extractor registered for %q: %w", t, domainerror.ErrExtractorUnavailable)
	}
	return extractor.Extract(ctx, file)
}

func mediaType(contentType string) string {
	t, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return t
}

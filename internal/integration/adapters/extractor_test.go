package adapters

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fixedExtractor string

func (f fixedExtractor) Extract(context.Context, adapter.UploadedFile) (string, error) {
	return string(f), nil
}

func TestExtractorRouter(t *testing.T) {
	router := NewExtractorRouter().
		Register(fixedExtractor("from pdf"), "application/pdf").
		Register(NewPlainTextExtractor(), "text/plain")

	ctx := context.Background()

	text, err := router.Extract(ctx, adapter.UploadedFile{ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, "from pdf", text)

	text, err = router.Extract(ctx, adapter.UploadedFile{ContentType: "text/plain; charset=utf-8", Content: []byte("a  b")})
	require.NoError(t, err)
	assert.Equal(t, "a  b", text)

	_, err = router.Extract(ctx, adapter.UploadedFile{ContentType: "image/gif"})
	assert.ErrorIs(t, err, domainerror.ErrExtractorUnavailable)
}

func TestPlainTextExtractor_RejectsBinary(t *testing.T) {
	_, err := NewPlainTextExtractor().Extract(context.Background(), adapter.UploadedFile{Name: "x.txt", Content: []byte{0xff, 0xfe, 0x00}})
	assert.Error(t, err)
}

func TestGeminiExtractor_NotConfigured(t *testing.T) {
	e := NewGeminiExtractor("", "")

	assert.False(t, e.IsAvailable())
	assert.Equal(t, DefaultGeminiModel, e.modelName)

	_, err := e.Extract(context.Background(), adapter.UploadedFile{ContentType: "application/pdf", Content: []byte("%PDF")})
	assert.ErrorIs(t, err, domainerror.ErrExtractorUnavailable)
}

func TestResponseText(t *testing.T) {
	response := func(parts ...genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		}
	}

	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{name: "plain text", resp: response(genai.Text("expense  10  Food  Tea  2024-01-01\n")), want: "expense  10  Food  Tea  2024-01-01"},
		{name: "joins parts", resp: response(genai.Text("TOTAL"), genai.Text(": 5.00")), want: "TOTAL: 5.00"},
		{name: "strips code fence", resp: response(genai.Text("```text\nline one\nline two\n```")), want: "line one\nline two"},
		{name: "ignores non-text parts", resp: response(genai.Blob{MIMEType: "image/png"}, genai.Text("ok")), want: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "text/plain", mediaType("Text/Plain; charset=UTF-8"))
	assert.Equal(t, "image/png", mediaType(" image/png "))
}

package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

const transcriptionPrompt = `Transcribe all text in the attached file exactly as it appears.

RULES:
- Output plain text only, no markdown and no commentary.
- Keep one output line per printed line, in reading order.
- In tables, separate columns with at least two spaces.
- Keep numbers, dates and currency symbols exactly as printed.
- If there is no readable text, output nothing.`

// GeminiExtractor implements adapter.TextExtractor by asking Gemini to transcribe PDFs and images.
type GeminiExtractor struct {
	apiKey    string
	modelName string
}

// NewGeminiExtractor creates a new Gemini extractor instance.
func NewGeminiExtractor(apiKey, modelName string) *GeminiExtractor {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiExtractor{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini extractor is properly configured.
func (e *GeminiExtractor) IsAvailable() bool {
	return e.apiKey != ""
}

// Extract sends the file inline and returns the model's transcription.
func (e *GeminiExtractor) Extract(ctx context.Context, file adapter.UploadedFile) (string, error) {
	if !e.IsAvailable() {
		return "", fmt.Errorf("gemini api key is not set: %w", domainerror.ErrExtractorUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(e.modelName)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mediaType(file.ContentType), Data: file.Content},
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	// Remove markdown code blocks if present
	content := strings.TrimSpace(sb.String())
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content), nil
}

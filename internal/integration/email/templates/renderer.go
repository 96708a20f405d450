// Package templates renders notification emails from embedded templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// TemplateImportSummary is the name of the statement import summary template.
const TemplateImportSummary = "import_summary"

//go:embed *.html *.txt
var templateFS embed.FS

// Rendered holds both bodies of a message.
type Rendered struct {
	HTML string
	Text string
}

// Renderer executes the embedded templates. Every template exists in both an
// .html and a .txt variant.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.New("").Funcs(htmltemplate.FuncMap{"plural": plural}).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	text, err := texttemplate.New("").Funcs(texttemplate.FuncMap{"plural": plural}).ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// Render executes both variants of the named template.
func (r *Renderer) Render(name string, data any) (Rendered, error) {
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Rendered{}, fmt.Errorf("render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Rendered{}, fmt.Errorf("render %s.txt: %w", name, err)
	}
	return Rendered{HTML: html.String(), Text: text.String()}, nil
}

// SkippedLineData describes one rejected statement line.
type SkippedLineData struct {
	Line       int
	Reason     string
	SourceLine string
}

// ImportSummaryData contains data for the import summary email template.
type ImportSummaryData struct {
	FileName      string
	InsertedCount int
	SkippedCount  int
	Skipped       []SkippedLineData
	MoreSkipped   int
}

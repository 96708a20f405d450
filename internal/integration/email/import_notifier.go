package email

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

// maxListedSkippedLines bounds how many skipped lines are listed in one email.
const maxListedSkippedLines = 50

// ImportNotifier implements adapter.ImportNotifier by emailing a summary of skipped lines.
type ImportNotifier struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewImportNotifier creates a new ImportNotifier.
func NewImportNotifier(sender adapter.EmailSender, renderer *templates.Renderer) *ImportNotifier {
	return &ImportNotifier{
		sender:   sender,
		renderer: renderer,
	}
}

// NotifyImport renders and sends the import summary.
func (n *ImportNotifier) NotifyImport(ctx context.Context, to, fileName string, report *entity.IngestionReport) error {
	data := templates.ImportSummaryData{
		FileName:      fileName,
		InsertedCount: report.InsertedCount,
		SkippedCount:  len(report.Skipped),
	}
	for i, s := range report.Skipped {
		if i == maxListedSkippedLines {
			data.MoreSkipped = len(report.Skipped) - maxListedSkippedLines
			break
		}
		data.Skipped = append(data.Skipped, templates.SkippedLineData{
			Line:       s.Line,
			Reason:     s.Reason.Description(),
			SourceLine: s.SourceLine,
		})
	}

	body, err := n.renderer.Render(templates.TemplateImportSummary, data)
	if err != nil {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeNotificationRender,
			domainerror.ErrNotificationRender.Error(),
			err,
		)
	}

	_, err = n.sender.Send(ctx, adapter.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("Import of %s: %d added, %d skipped", fileName, data.InsertedCount, data.SkippedCount),
		HTML:    body.HTML,
		Text:    body.Text,
		Tags:    map[string]string{"category": templates.TemplateImportSummary},
	})
	return err
}

var _ adapter.ImportNotifier = (*ImportNotifier)(nil)

package email

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

func newNotifier(t *testing.T) (*ImportNotifier, *recordingSender) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	sender := &recordingSender{}
	return NewImportNotifier(sender, renderer), sender
}

func TestImportNotifier_NotifyImport(t *testing.T) {
	notifier, sender := newNotifier(t)
	report := &entity.IngestionReport{
		InsertedCount: 3,
		Skipped: []entity.SkippedLine{
			{Line: 2, SourceLine: "expense  abc  Food  Snack  2024-03-02", Reason: entity.SkipReasonInvalidAmount},
			{Line: 5, SourceLine: "<b>footer</b>", Reason: entity.SkipReasonInsufficientFields},
		},
	}

	err := notifier.NotifyImport(context.Background(), "owner@example.com", "march.pdf", report)
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	sent := sender.sent[0]
	assert.Equal(t, "owner@example.com", sent.To)
	assert.Equal(t, "Import of march.pdf: 3 added, 2 skipped", sent.Subject)
	assert.Contains(t, sent.Text, "line 2: Amount must be a positive number")
	assert.Contains(t, sent.Text, "line 5: Insufficient fields")
	assert.Contains(t, sent.HTML, "&lt;b&gt;footer&lt;/b&gt;", "source lines are escaped")
	assert.Equal(t, map[string]string{"category": "import_summary"}, sent.Tags)
}

func TestImportNotifier_TruncatesLongLists(t *testing.T) {
	notifier, sender := newNotifier(t)
	report := &entity.IngestionReport{}
	for i := 1; i <= maxListedSkippedLines+7; i++ {
		report.Skipped = append(report.Skipped, entity.SkippedLine{
			Line:       i,
			SourceLine: fmt.Sprintf("line %d", i),
			Reason:     entity.SkipReasonInvalidDate,
		})
	}

	require.NoError(t, notifier.NotifyImport(context.Background(), "a@b.c", "big.pdf", report))

	assert.Contains(t, sender.sent[0].Text, "...and 7 more.")
}

func TestImportNotifier_SendFailure(t *testing.T) {
	notifier, sender := newNotifier(t)
	sender.err = errors.New("503 service unavailable")

	err := notifier.NotifyImport(context.Background(), "a@b.c", "x.pdf", &entity.IngestionReport{
		Skipped: []entity.SkippedLine{{Line: 1, Reason: entity.SkipReasonInvalidKind}},
	})

	assert.Error(t, err)
	assert.Empty(t, sender.sent)
}

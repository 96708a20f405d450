package ingestion

import (
	"sort"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ReportBuilder collects accepted and skipped records for one upload.
type ReportBuilder struct {
	accepted []*entity.Transaction
	skipped  []entity.SkippedLine
}

// NewReportBuilder creates an empty ReportBuilder.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Accept records a validated transaction.
func (b *ReportBuilder) Accept(txn *entity.Transaction) {
	b.accepted = append(b.accepted, txn)
}

// Skip records a rejected line.
func (b *ReportBuilder) Skip(line entity.SkippedLine) {
	b.skipped = append(b.skipped, line)
}

// Accepted returns the transactions accepted so far.
func (b *ReportBuilder) Accepted() []*entity.Transaction {
	return b.accepted
}

// Build returns the report with skipped lines in source order.
func (b *ReportBuilder) Build() *entity.IngestionReport {
	skipped := make([]entity.SkippedLine, len(b.skipped))
	copy(skipped, b.skipped)
	sort.SliceStable(skipped, func(i, j int) bool {
		return skipped[i].Line < skipped[j].Line
	})

	inserted := b.accepted
	if inserted == nil {
		inserted = []*entity.Transaction{}
	}

	return &entity.IngestionReport{
		Inserted:      inserted,
		InsertedCount: len(inserted),
		Skipped:       skipped,
	}
}

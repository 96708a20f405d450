package ingestion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ImportDocumentInput represents the input for importing a statement document.
type ImportDocumentInput struct {
	OwnerID    uuid.UUID
	OwnerEmail string // Optional, used for the import summary email
	File       adapter.UploadedFile
}

// ImportDocumentOutput represents the output of a statement import.
type ImportDocumentOutput struct {
	Report *entity.IngestionReport
}

// ImportDocumentUseCase handles importing a statement laid out in columns.
type ImportDocumentUseCase struct {
	extractor       adapter.TextExtractor
	transactionRepo adapter.TransactionRepository
	analyticsCache  adapter.AnalyticsCache
	notifier        adapter.ImportNotifier
	strategy        Strategy
	maxBytes        int64
}

// NewImportDocumentUseCase creates a new ImportDocumentUseCase instance.
// analyticsCache and notifier may be nil.
func NewImportDocumentUseCase(
	extractor adapter.TextExtractor,
	transactionRepo adapter.TransactionRepository,
	analyticsCache adapter.AnalyticsCache,
	notifier adapter.ImportNotifier,
	maxBytes int64,
) *ImportDocumentUseCase {
	return &ImportDocumentUseCase{
		extractor:       extractor,
		transactionRepo: transactionRepo,
		analyticsCache:  analyticsCache,
		notifier:        notifier,
		strategy:        NewStatementStrategy(),
		maxBytes:        maxBytes,
	}
}

// Execute performs the statement import.
// Lines that fail to parse or validate end up in the report, never as errors.
func (uc *ImportDocumentUseCase) Execute(ctx context.Context, input ImportDocumentInput) (*ImportDocumentOutput, error) {
	if err := ValidateUpload(input.File, DocumentContentTypes, uc.maxBytes); err != nil {
		return nil, err
	}

	text, err := uc.extractor.Extract(ctx, input.File)
	if err != nil {
		return nil, domainerror.NewExtractionError(err)
	}

	report, err := ingest(ctx, uc.strategy, text, input.OwnerID, uc.transactionRepo)
	if err != nil {
		return nil, err
	}

	if report.InsertedCount > 0 {
		invalidateAnalytics(ctx, uc.analyticsCache, input.OwnerID)
	}

	slog.Info("Statement imported",
		"owner_id", input.OwnerID,
		"file", input.File.Name,
		"inserted", report.InsertedCount,
		"skipped", len(report.Skipped),
	)

	uc.notify(ctx, input, report)

	return &ImportDocumentOutput{Report: report}, nil
}

func (uc *ImportDocumentUseCase) notify(ctx context.Context, input ImportDocumentInput, report *entity.IngestionReport) {
	if uc.notifier == nil || input.OwnerEmail == "" || len(report.Skipped) == 0 {
		return
	}
	if err := uc.notifier.NotifyImport(ctx, input.OwnerEmail, input.File.Name, report); err != nil {
		slog.Warn("Failed to send import summary", "error", err, "owner_id", input.OwnerID)
	}
}

// ingest runs text through the strategy and the normalizer and stores the accepted records
// in a single batch.
func ingest(
	ctx context.Context,
	strategy Strategy,
	text string,
	ownerID uuid.UUID,
	repo adapter.TransactionRepository,
) (*entity.IngestionReport, error) {
	builder := NewReportBuilder()

	candidates, skipped := strategy.Parse(text)
	for _, line := range skipped {
		builder.Skip(line)
	}

	for _, c := range candidates {
		txn, reason := Normalize(c, ownerID, strategy.AmountPolicy())
		if txn == nil {
			builder.Skip(entity.SkippedLine{
				Line:       c.Line,
				SourceLine: c.SourceLine,
				Reason:     reason,
			})
			continue
		}
		builder.Accept(txn)
	}

	if accepted := builder.Accepted(); len(accepted) > 0 {
		if err := repo.InsertMany(ctx, accepted); err != nil {
			return nil, domainerror.NewIngestionError(
				domainerror.ErrCodeIngestionPersistence,
				domainerror.ErrIngestionPersistence.Error(),
				err,
			)
		}
	}

	return builder.Build(), nil
}

func invalidateAnalytics(ctx context.Context, cache adapter.AnalyticsCache, ownerID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, ownerID); err != nil {
		slog.Debug("Failed to invalidate analytics cache", "error", err, "owner_id", ownerID)
	}
}

package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ImportImageInput represents the input for importing a receipt image.
type ImportImageInput struct {
	OwnerID uuid.UUID
	File    adapter.UploadedFile
}

// ImportImageOutput represents the output of a receipt import.
type ImportImageOutput struct {
	Transaction *entity.Transaction
}

// ImportImageUseCase handles importing a photographed POS receipt.
type ImportImageUseCase struct {
	extractor       adapter.TextExtractor
	transactionRepo adapter.TransactionRepository
	analyticsCache  adapter.AnalyticsCache
	strategy        Strategy
	maxBytes        int64
}

// NewImportImageUseCase creates a new ImportImageUseCase instance.
// now is the clock used when the receipt carries no date; nil means time.Now.
func NewImportImageUseCase(
	extractor adapter.TextExtractor,
	transactionRepo adapter.TransactionRepository,
	analyticsCache adapter.AnalyticsCache,
	maxBytes int64,
	now func() time.Time,
) *ImportImageUseCase {
	return &ImportImageUseCase{
		extractor:       extractor,
		transactionRepo: transactionRepo,
		analyticsCache:  analyticsCache,
		strategy:        NewReceiptStrategy(now),
		maxBytes:        maxBytes,
	}
}

// Execute performs the receipt import.
func (uc *ImportImageUseCase) Execute(ctx context.Context, input ImportImageInput) (*ImportImageOutput, error) {
	if err := ValidateUpload(input.File, ImageContentTypes, uc.maxBytes); err != nil {
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
	if report.InsertedCount != 1 {
		// The receipt strategy always yields exactly one valid record.
		return nil, errors.New("receipt produced no transaction")
	}

	invalidateAnalytics(ctx, uc.analyticsCache, input.OwnerID)

	txn := report.Inserted[0]
	slog.Info("Receipt imported",
		"owner_id", input.OwnerID,
		"transaction_id", txn.ID,
		"amount", txn.Amount.String(),
	)

	return &ImportImageOutput{Transaction: txn}, nil
}

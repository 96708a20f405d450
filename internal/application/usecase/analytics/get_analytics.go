package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultBatchSize is the number of rows read per batch when none is configured.
const DefaultBatchSize = 500

// GetAnalyticsInput represents the input for computing analytics.
type GetAnalyticsInput struct {
	OwnerID uuid.UUID
}

// GetAnalyticsOutput represents the output of computing analytics.
type GetAnalyticsOutput struct {
	Summary *entity.AnalyticsSummary
	Cached  bool
}

// GetAnalyticsUseCase computes an owner's analytics summary over all of their transactions.
type GetAnalyticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
	batchSize       int
}

// NewGetAnalyticsUseCase creates a new GetAnalyticsUseCase instance. cache may be nil.
func NewGetAnalyticsUseCase(transactionRepo adapter.TransactionRepository, cache adapter.AnalyticsCache, batchSize int) *GetAnalyticsUseCase {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &GetAnalyticsUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		batchSize:       batchSize,
	}
}

// Execute returns the cached summary when present, otherwise streams the owner's transactions
// through an Aggregator and caches the result.
func (uc *GetAnalyticsUseCase) Execute(ctx context.Context, input GetAnalyticsInput) (*GetAnalyticsOutput, error) {
	if uc.cache != nil {
		summary, ok, err := uc.cache.Get(ctx, input.OwnerID)
		if err != nil {
			slog.Debug("Analytics cache read failed", "error", err, "owner_id", input.OwnerID)
		} else if ok {
			return &GetAnalyticsOutput{Summary: summary, Cached: true}, nil
		}
	}

	version, cacheable := uc.cacheVersion(ctx, input.OwnerID)

	agg := NewAggregator()
	err := uc.transactionRepo.Stream(ctx, input.OwnerID, uc.batchSize, func(batch []*entity.Transaction) error {
		agg.Add(batch...)
		return nil
	})
	if err != nil {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeAnalyticsUnavailable,
			domainerror.ErrAnalyticsUnavailable.Error(),
			err,
		)
	}

	summary := agg.Summary()

	if cacheable {
		err := uc.cache.Set(ctx, input.OwnerID, version, summary)
		switch {
		case errors.Is(err, domainerror.ErrStaleAnalytics):
			slog.Debug("Analytics summary outdated by a concurrent write", "owner_id", input.OwnerID)
		case err != nil:
			slog.Debug("Analytics cache write failed", "error", err, "owner_id", input.OwnerID)
		}
	}

	return &GetAnalyticsOutput{Summary: summary}, nil
}

// cacheVersion reads the generation the summary will be computed against. The summary is not
// cached when it cannot be read.
func (uc *GetAnalyticsUseCase) cacheVersion(ctx context.Context, ownerID uuid.UUID) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	version, err := uc.cache.Version(ctx, ownerID)
	if err != nil {
		slog.Debug("Analytics cache version read failed", "error", err, "owner_id", ownerID)
		return 0, false
	}
	return version, true
}

package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// AnalyticsCache stores computed analytics summaries per owner.
type AnalyticsCache interface {
	// Get returns the cached summary. The boolean is false on a cache miss.
	Get(ctx context.Context, ownerID uuid.UUID) (*entity.AnalyticsSummary, bool, error)

	// Version returns the owner's cache generation. It must be read before the summary is
	// computed and passed back to Set.
	Version(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Set stores the summary for the owner unless the generation moved past version, in which
	// case it returns domainerror.ErrStaleAnalytics and stores nothing.
	Set(ctx context.Context, ownerID uuid.UUID, version int64, summary *entity.AnalyticsSummary) error

	// Invalidate drops the cached summary for the owner and advances its generation.
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

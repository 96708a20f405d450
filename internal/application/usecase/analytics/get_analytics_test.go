package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type streamRepo struct {
	rows       []*entity.Transaction
	err        error
	batchSizes []int
}

func (r *streamRepo) Create(context.Context, *entity.Transaction) error       { return nil }
func (r *streamRepo) InsertMany(context.Context, []*entity.Transaction) error { return nil }
func (r *streamRepo) FindByIDAndOwner(context.Context, uuid.UUID, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}
func (r *streamRepo) DeleteByIDAndOwner(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (r *streamRepo) Count(context.Context, adapter.TransactionFilter) (int64, error) {
	return int64(len(r.rows)), nil
}
func (r *streamRepo) FindPage(context.Context, adapter.TransactionFilter, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *streamRepo) Stream(_ context.Context, _ uuid.UUID, batchSize int, fn func([]*entity.Transaction) error) error {
	if r.err != nil {
		return r.err
	}
	for i := 0; i < len(r.rows); i += batchSize {
		end := i + batchSize
		if end > len(r.rows) {
			end = len(r.rows)
		}
		r.batchSizes = append(r.batchSizes, end-i)
		if err := fn(r.rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

type mapCache struct {
	entries     map[uuid.UUID]*entity.AnalyticsSummary
	generations map[uuid.UUID]int64
	getErr      error
	versionErr  error
}

func newMapCache() *mapCache {
	return &mapCache{
		entries:     make(map[uuid.UUID]*entity.AnalyticsSummary),
		generations: make(map[uuid.UUID]int64),
	}
}

func (c *mapCache) Get(_ context.Context, ownerID uuid.UUID) (*entity.AnalyticsSummary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	s, ok := c.entries[ownerID]
	return s, ok, nil
}

func (c *mapCache) Version(_ context.Context, ownerID uuid.UUID) (int64, error) {
	return c.generations[ownerID], c.versionErr
}

func (c *mapCache) Set(_ context.Context, ownerID uuid.UUID, version int64, s *entity.AnalyticsSummary) error {
	if c.generations[ownerID] != version {
		return domainerror.ErrStaleAnalytics
	}
	c.entries[ownerID] = s
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.generations[ownerID]++
	delete(c.entries, ownerID)
	return nil
}

// racingRepo invalidates the cache while the summary is being streamed, like a write committed
// during the read.
type racingRepo struct {
	streamRepo
	cache *mapCache
}

func (r *racingRepo) Stream(ctx context.Context, ownerID uuid.UUID, batchSize int, fn func([]*entity.Transaction) error) error {
	if err := r.streamRepo.Stream(ctx, ownerID, batchSize, fn); err != nil {
		return err
	}
	return r.cache.Invalidate(ctx, ownerID)
}

func TestGetAnalyticsUseCase_StreamsAndCaches(t *testing.T) {
	ownerID := uuid.New()
	repo := &streamRepo{}
	for i := 0; i < 7; i++ {
		repo.rows = append(repo.rows, txn(entity.TransactionKindExpense, "1", entity.CategoryFood, date(2024, time.May, i+1)))
	}
	cache := newMapCache()
	uc := NewGetAnalyticsUseCase(repo, cache, 3)

	out, err := uc.Execute(context.Background(), GetAnalyticsInput{OwnerID: ownerID})
	require.NoError(t, err)

	assert.False(t, out.Cached)
	assert.Equal(t, 7, out.Summary.TransactionCount)
	assert.Equal(t, []int{3, 3, 1}, repo.batchSizes)
	assert.Contains(t, cache.entries, ownerID)

	out, err = uc.Execute(context.Background(), GetAnalyticsInput{OwnerID: ownerID})
	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Len(t, repo.batchSizes, 3, "cached summary does not touch the repository")
}

func TestGetAnalyticsUseCase_CacheErrorsFallBackToRepository(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("redis unavailable")
	uc := NewGetAnalyticsUseCase(&streamRepo{}, cache, 0)

	out, err := uc.Execute(context.Background(), GetAnalyticsInput{OwnerID: uuid.New()})

	require.NoError(t, err)
	assert.Equal(t, entity.NoCategory, out.Summary.TopExpenseCategory)
	assert.Equal(t, DefaultBatchSize, uc.batchSize)
}

func TestGetAnalyticsUseCase_StreamFailure(t *testing.T) {
	uc := NewGetAnalyticsUseCase(&streamRepo{err: errors.New("query canceled")}, nil, 10)

	_, err := uc.Execute(context.Background(), GetAnalyticsInput{OwnerID: uuid.New()})

	var anlErr *domainerror.AnalyticsError
	require.True(t, errors.As(err, &anlErr))
	assert.Equal(t, domainerror.ErrCodeAnalyticsUnavailable, anlErr.Code)
}

func TestGetAnalyticsUseCase_WriteDuringStreamIsNotCached(t *testing.T) {
	ownerID := uuid.New()
	cache := newMapCache()
	repo := &racingRepo{cache: cache}
	repo.rows = []*entity.Transaction{txn(entity.TransactionKindIncome, "10", entity.CategoryOthers, date(2024, time.May, 1))}
	uc := NewGetAnalyticsUseCase(repo, cache, 10)

	out, err := uc.Execute(context.Background(), GetAnalyticsInput{OwnerID: ownerID})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.TransactionCount)
	assert.NotContains(t, cache.entries, ownerID)
}

func TestGetAnalyticsUseCase_VersionErrorSkipsCaching(t *testing.T) {
	ownerID := uuid.New()
	cache := newMapCache()
	cache.versionErr = errors.New("redis unavailable")
	uc := NewGetAnalyticsUseCase(&streamRepo{}, cache, 10)

	_, err := uc.Execute(context.Background(), GetAnalyticsInput{OwnerID: ownerID})

	require.NoError(t, err)
	assert.NotContains(t, cache.entries, ownerID)
}

// Package cache provides Redis-backed caches for derived read models.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	analyticsKeyPrefix  = "analytics:summary:"
	generationKeyPrefix = "analytics:generation:"
)

// analyticsCache implements adapter.AnalyticsCache using Redis.
type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new Redis analytics cache.
// Entries expire after ttl; a zero ttl keeps them until invalidated.
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) adapter.AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

func analyticsKey(ownerID uuid.UUID) string {
	return analyticsKeyPrefix + ownerID.String()
}

func generationKey(ownerID uuid.UUID) string {
	return generationKeyPrefix + ownerID.String()
}

// Get returns the cached summary for the owner, if present.
func (c *analyticsCache) Get(ctx context.Context, ownerID uuid.UUID) (*entity.AnalyticsSummary, bool, error) {
	raw, err := c.client.Get(ctx, analyticsKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var record summaryRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, fmt.Errorf("decode analytics summary: %w", err)
	}

	return record.toEntity(), true, nil
}

// Version returns the owner's generation, zero when no write was recorded yet.
func (c *analyticsCache) Version(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return readGeneration(ctx, c.client, ownerID)
}

// Set stores the summary for the owner while the generation still equals version.
// The generation key is watched so an Invalidate racing with the write aborts it.
func (c *analyticsCache) Set(ctx context.Context, ownerID uuid.UUID, version int64, summary *entity.AnalyticsSummary) error {
	raw, err := json.Marshal(summaryRecordFromEntity(summary))
	if err != nil {
		return fmt.Errorf("encode analytics summary: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if current != version {
			return domainerror.ErrStaleAnalytics
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, analyticsKey(ownerID), raw, c.ttl)
			return nil
		})
		return err
	}, generationKey(ownerID))
	if errors.Is(err, redis.TxFailedErr) {
		return domainerror.ErrStaleAnalytics
	}
	return err
}

// Invalidate drops the cached summary for the owner and advances the generation.
func (c *analyticsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(ownerID))
		pipe.Del(ctx, analyticsKey(ownerID))
		return nil
	})
	return err
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, ownerID uuid.UUID) (int64, error) {
	generation, err := cmd.Get(ctx, generationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

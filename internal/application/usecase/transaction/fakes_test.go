package transaction

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// memoryRepo is an in-memory TransactionRepository honoring the filter and ordering contract.
type memoryRepo struct {
	rows      []*entity.Transaction
	failWith  error
	pageCalls int
}

func (r *memoryRepo) Create(_ context.Context, txn *entity.Transaction) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.rows = append(r.rows, txn)
	return nil
}

func (r *memoryRepo) InsertMany(_ context.Context, txns []*entity.Transaction) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.rows = append(r.rows, txns...)
	return nil
}

func (r *memoryRepo) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Transaction, error) {
	for _, txn := range r.rows {
		if txn.ID == id && txn.OwnerID == ownerID {
			return txn, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *memoryRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) error {
	for i, txn := range r.rows {
		if txn.ID == id && txn.OwnerID == ownerID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *memoryRepo) matching(filter adapter.TransactionFilter) []*entity.Transaction {
	var out []*entity.Transaction
	for _, txn := range r.rows {
		if txn.OwnerID != filter.OwnerID {
			continue
		}
		if filter.StartDate != nil && txn.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && txn.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, txn)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (r *memoryRepo) Count(_ context.Context, filter adapter.TransactionFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *memoryRepo) FindPage(_ context.Context, filter adapter.TransactionFilter, skip, limit int) ([]*entity.Transaction, error) {
	r.pageCalls++
	rows := r.matching(filter)
	if skip >= len(rows) {
		return []*entity.Transaction{}, nil
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end], nil
}

func (r *memoryRepo) Stream(_ context.Context, _ uuid.UUID, _ int, _ func([]*entity.Transaction) error) error {
	return errors.New("not implemented")
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) Get(_ context.Context, _ uuid.UUID) (*entity.AnalyticsSummary, bool, error) {
	return nil, false, nil
}

func (c *countingCache) Version(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (c *countingCache) Set(_ context.Context, _ uuid.UUID, _ int64, _ *entity.AnalyticsSummary) error {
	return nil
}

func (c *countingCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	c.invalidations++
	return nil
}

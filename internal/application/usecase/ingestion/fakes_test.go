package ingestion

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, _ adapter.UploadedFile) (string, error) {
	s.calls++
	return s.text, s.err
}

type fakeRepo struct {
	stored    []*entity.Transaction
	insertErr error
	batches   int
}

func (r *fakeRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.stored = append(r.stored, txn)
	return nil
}

func (r *fakeRepo) InsertMany(_ context.Context, txns []*entity.Transaction) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.batches++
	r.stored = append(r.stored, txns...)
	return nil
}

func (r *fakeRepo) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Transaction, error) {
	for _, txn := range r.stored {
		if txn.ID == id && txn.OwnerID == ownerID {
			return txn, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeRepo) DeleteByIDAndOwner(_ context.Context, _, _ uuid.UUID) error {
	return errors.New("not implemented")
}

func (r *fakeRepo) Count(_ context.Context, _ adapter.TransactionFilter) (int64, error) {
	return int64(len(r.stored)), nil
}

func (r *fakeRepo) FindPage(_ context.Context, _ adapter.TransactionFilter, _, _ int) ([]*entity.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) Stream(_ context.Context, _ uuid.UUID, _ int, _ func([]*entity.Transaction) error) error {
	return errors.New("not implemented")
}

type fakeCache struct {
	invalidated []uuid.UUID
	err         error
}

func (c *fakeCache) Get(_ context.Context, _ uuid.UUID) (*entity.AnalyticsSummary, bool, error) {
	return nil, false, nil
}

func (c *fakeCache) Version(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (c *fakeCache) Set(_ context.Context, _ uuid.UUID, _ int64, _ *entity.AnalyticsSummary) error {
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.invalidated = append(c.invalidated, ownerID)
	return c.err
}

type fakeNotifier struct {
	to      string
	reports []*entity.IngestionReport
	err     error
}

func (n *fakeNotifier) NotifyImport(_ context.Context, to, _ string, report *entity.IngestionReport) error {
	n.to = to
	n.reports = append(n.reports, report)
	return n.err
}

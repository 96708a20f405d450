// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
// StartDate and EndDate are inclusive bounds on the transaction date.
type TransactionFilter struct {
	OwnerID   uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// InsertMany stores all transactions in a single database transaction.
	// Either every row is committed or none is.
	InsertMany(ctx context.Context, transactions []*entity.Transaction) error

	// FindByIDAndOwner retrieves a transaction by its ID, scoped to its owner.
	// Returns domain.ErrTransactionNotFound when no row matches.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Transaction, error)

	// DeleteByIDAndOwner permanently removes a transaction owned by ownerID.
	// Returns domain.ErrTransactionNotFound when no row matches.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) error

	// Count returns the number of transactions matching the filter.
	Count(ctx context.Context, filter TransactionFilter) (int64, error)

	// FindPage returns up to limit transactions matching the filter, skipping the first skip rows.
	// Rows are ordered by date descending, then id descending.
	FindPage(ctx context.Context, filter TransactionFilter, skip, limit int) ([]*entity.Transaction, error)

	// Stream walks every transaction of the owner in batches of batchSize, calling fn for each batch.
	// Returning an error from fn stops the walk and the error is returned.
	Stream(ctx context.Context, ownerID uuid.UUID, batchSize int, fn func(batch []*entity.Transaction) error) error
}

package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestGetAndDeleteTransaction(t *testing.T) {
	ownerID := uuid.New()
	txn := entity.NewTransaction(ownerID, entity.TransactionKindExpense, decimal.NewFromInt(3), entity.CategoryFood, "", day(1))
	repo := &memoryRepo{rows: []*entity.Transaction{txn}}
	cache := &countingCache{}

	get := NewGetTransactionUseCase(repo)
	del := NewDeleteTransactionUseCase(repo, cache)
	ctx := context.Background()

	t.Run("owner can fetch", func(t *testing.T) {
		out, err := get.Execute(ctx, GetTransactionInput{TransactionID: txn.ID, OwnerID: ownerID})
		require.NoError(t, err)
		assert.Equal(t, txn, out.Transaction)
	})

	t.Run("other owners see not found", func(t *testing.T) {
		_, err := get.Execute(ctx, GetTransactionInput{TransactionID: txn.ID, OwnerID: uuid.New()})
		assertNotFound(t, err)

		_, err = del.Execute(ctx, DeleteTransactionInput{TransactionID: txn.ID, OwnerID: uuid.New()})
		assertNotFound(t, err)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("owner can delete once", func(t *testing.T) {
		out, err := del.Execute(ctx, DeleteTransactionInput{TransactionID: txn.ID, OwnerID: ownerID})
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Empty(t, repo.rows)
		assert.Equal(t, 1, cache.invalidations)

		_, err = del.Execute(ctx, DeleteTransactionInput{TransactionID: txn.ID, OwnerID: ownerID})
		assertNotFound(t, err)
	})
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnErr.Code)
}

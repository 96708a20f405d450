package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbSQL, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TransactionModel{}))
	return db
}

func newTxn(ownerID uuid.UUID, kind entity.TransactionKind, amount string, d time.Time) *entity.Transaction {
	return entity.NewTransaction(ownerID, kind, decimal.RequireFromString(amount), entity.CategoryFood, "test", d)
}

func jan(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_CreateAndFind(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	txn := newTxn(ownerID, entity.TransactionKindExpense, "45.50", jan(15))
	require.NoError(t, repo.Create(ctx, txn))

	found, err := repo.FindByIDAndOwner(ctx, txn.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, found.ID)
	assert.Equal(t, entity.TransactionKindExpense, found.Kind)
	assert.Equal(t, entity.CategoryFood, found.Category)
	assert.True(t, decimal.RequireFromString("45.50").Equal(found.Amount))
	assert.True(t, jan(15).Equal(found.Date))

	_, err = repo.FindByIDAndOwner(ctx, txn.ID, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestTransactionRepository_InsertManyAndPage(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	var txns []*entity.Transaction
	for d := 1; d <= 12; d++ {
		txns = append(txns, newTxn(ownerID, entity.TransactionKindExpense, "1", jan(d)))
	}
	sameDay := newTxn(ownerID, entity.TransactionKindIncome, "9", jan(12))
	txns = append(txns, sameDay)
	require.NoError(t, repo.InsertMany(ctx, txns))
	require.NoError(t, repo.Create(ctx, newTxn(uuid.New(), entity.TransactionKindExpense, "1", jan(5))))

	filter := adapter.TransactionFilter{OwnerID: ownerID}
	total, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)

	page, err := repo.FindPage(ctx, filter, 0, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, sameDay.ID, page[0].ID, "same date is ordered by id descending")
	assert.True(t, jan(12).Equal(page[1].Date))
	assert.True(t, jan(9).Equal(page[4].Date))

	last, err := repo.FindPage(ctx, filter, 10, 5)
	require.NoError(t, err)
	assert.Len(t, last, 3)

	past, err := repo.FindPage(ctx, filter, 50, 5)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestTransactionRepository_DateFilter(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	var txns []*entity.Transaction
	for d := 1; d <= 10; d++ {
		txns = append(txns, newTxn(ownerID, entity.TransactionKindExpense, "1", jan(d)))
	}
	require.NoError(t, repo.InsertMany(ctx, txns))

	start := jan(3)
	end := jan(6).Add(24*time.Hour - time.Nanosecond)
	total, err := repo.Count(ctx, adapter.TransactionFilter{OwnerID: ownerID, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestTransactionRepository_InsertManyIsAtomic(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	existing := newTxn(ownerID, entity.TransactionKindExpense, "1", jan(1))
	require.NoError(t, repo.Create(ctx, existing))

	batch := []*entity.Transaction{
		newTxn(ownerID, entity.TransactionKindExpense, "2", jan(2)),
		existing, // duplicate primary key
	}
	assert.Error(t, repo.InsertMany(ctx, batch))

	total, err := repo.Count(ctx, adapter.TransactionFilter{OwnerID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "nothing from the failed batch is visible")
}

func TestTransactionRepository_DeleteByIDAndOwner(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	txn := newTxn(ownerID, entity.TransactionKindExpense, "3", jan(3))
	require.NoError(t, repo.Create(ctx, txn))

	assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, txn.ID, uuid.New()), domainerror.ErrTransactionNotFound)
	require.NoError(t, repo.DeleteByIDAndOwner(ctx, txn.ID, ownerID))
	assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, txn.ID, ownerID), domainerror.ErrTransactionNotFound)
}

func TestTransactionRepository_Stream(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	var txns []*entity.Transaction
	for d := 1; d <= 7; d++ {
		txns = append(txns, newTxn(ownerID, entity.TransactionKindExpense, "1", jan(d)))
	}
	require.NoError(t, repo.InsertMany(ctx, txns))
	require.NoError(t, repo.Create(ctx, newTxn(uuid.New(), entity.TransactionKindExpense, "1", jan(1))))

	var sizes []int
	seen := 0
	err := repo.Stream(ctx, ownerID, 3, func(batch []*entity.Transaction) error {
		sizes = append(sizes, len(batch))
		for _, txn := range batch {
			assert.Equal(t, ownerID, txn.OwnerID)
		}
		seen += len(batch)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, seen)
	assert.Equal(t, []int{3, 3, 1}, sizes)

	stop := errors.New("stop")
	err = repo.Stream(ctx, ownerID, 3, func([]*entity.Transaction) error { return stop })
	assert.ErrorIs(t, err, stop)
}

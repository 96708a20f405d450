package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxBulkTransactions is the maximum number of rows accepted by a single bulk request.
const MaxBulkTransactions = 1000

// CreateManyTransactionsInput represents the input for bulk transaction creation.
type CreateManyTransactionsInput struct {
	OwnerID      uuid.UUID
	Transactions []TransactionFields
}

// CreateManyTransactionsOutput represents the output of bulk transaction creation.
type CreateManyTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// CreateManyTransactionsUseCase validates every row and stores them all or none.
type CreateManyTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	analyticsCache  adapter.AnalyticsCache
}

// NewCreateManyTransactionsUseCase creates a new CreateManyTransactionsUseCase instance.
func NewCreateManyTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	analyticsCache adapter.AnalyticsCache,
) *CreateManyTransactionsUseCase {
	return &CreateManyTransactionsUseCase{
		transactionRepo: transactionRepo,
		analyticsCache:  analyticsCache,
	}
}

// Execute performs the bulk creation. The first invalid row aborts the request.
func (uc *CreateManyTransactionsUseCase) Execute(ctx context.Context, input CreateManyTransactionsInput) (*CreateManyTransactionsOutput, error) {
	if len(input.Transactions) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionBatch,
			"at least one transaction is required",
			domainerror.ErrEmptyTransactionBatch,
		)
	}
	if len(input.Transactions) > MaxBulkTransactions {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTooManyTransactions,
			fmt.Sprintf("at most %d transactions can be created at once", MaxBulkTransactions),
			domainerror.ErrTooManyTransactions,
		)
	}

	txns := make([]*entity.Transaction, 0, len(input.Transactions))
	for i, fields := range input.Transactions {
		txn, txnErr := buildTransaction(input.OwnerID, fields)
		if txnErr != nil {
			return nil, domainerror.NewTransactionRowError(
				i,
				txnErr.Code,
				fmt.Sprintf("transaction %d: %s", i, txnErr.Message),
				txnErr.Err,
			)
		}
		txns = append(txns, txn)
	}

	if err := uc.transactionRepo.InsertMany(ctx, txns); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionPersistence,
			"failed to create transactions",
			err,
		)
	}

	invalidateAnalytics(ctx, uc.analyticsCache, input.OwnerID)

	return &CreateManyTransactionsOutput{Transactions: txns}, nil
}

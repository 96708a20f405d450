// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = entity.MaxDescriptionLength

// TransactionFields are the client supplied fields of a new transaction.
type TransactionFields struct {
	Kind        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        string
}

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	OwnerID uuid.UUID
	TransactionFields
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	analyticsCache  adapter.AnalyticsCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	analyticsCache adapter.AnalyticsCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		analyticsCache:  analyticsCache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	txn, err := buildTransaction(input.OwnerID, input.TransactionFields)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionPersistence,
			"failed to create transaction",
			err,
		)
	}

	invalidateAnalytics(ctx, uc.analyticsCache, input.OwnerID)

	return &CreateTransactionOutput{Transaction: txn}, nil
}

// buildTransaction validates the fields strictly. Unlike statement imports, an unknown category is
// an error here rather than falling back to Others.
func buildTransaction(ownerID uuid.UUID, fields TransactionFields) (*entity.Transaction, *domainerror.TransactionError) {
	kind := entity.TransactionKind(strings.ToLower(strings.TrimSpace(fields.Kind)))
	if !kind.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionKind,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionKind,
		)
	}

	amount, ok := entity.NormalizeAmount(fields.Amount)
	if !ok || !amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			fmt.Sprintf("amount must be a positive number no greater than %s", entity.MaxAmount.StringFixed(entity.AmountScale)),
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	category, found := entity.LookupCategory(fields.Category)
	if !found {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionCategory,
			fmt.Sprintf("category must be one of: %s", categoryNames()),
			domainerror.ErrInvalidTransactionCategory,
		)
	}

	description := strings.TrimSpace(fields.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	date, ok := valueobject.ParseDate(fields.Date)
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is missing or not a recognized date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	return entity.NewTransaction(ownerID, kind, amount, category, description, date), nil
}

func categoryNames() string {
	names := make([]string, len(entity.Categories))
	for i, c := range entity.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func invalidateAnalytics(ctx context.Context, cache adapter.AnalyticsCache, ownerID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, ownerID); err != nil {
		slog.Debug("Failed to invalidate analytics cache", "error", err, "owner_id", ownerID)
	}
}

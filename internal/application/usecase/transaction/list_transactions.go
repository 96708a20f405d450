package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

const (
	// DefaultPage is used when no valid page is requested.
	DefaultPage = 1
	// DefaultLimit is used when no valid limit is requested.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// ListTransactionsInput represents the input for listing transactions.
// Page and Limit below 1 fall back to their defaults.
type ListTransactionsInput struct {
	OwnerID   uuid.UUID
	Page      int
	Limit     int
	StartDate string
	EndDate   string
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Page *entity.TransactionPage
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	defaultLimit    int
	maxLimit        int
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
// Non-positive limits fall back to DefaultLimit and MaxLimit.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, defaultLimit, maxLimit int) *ListTransactionsUseCase {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		defaultLimit:    defaultLimit,
		maxLimit:        maxLimit,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = uc.defaultLimit
	}
	if limit > uc.maxLimit {
		limit = uc.maxLimit
	}

	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	total, err := uc.transactionRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	pages := totalPages(total, limit)
	txns := []*entity.Transaction{}
	// Pages past the end are answered without a query; this also keeps the offset from overflowing.
	if page <= pages {
		txns, err = uc.transactionRepo.FindPage(ctx, filter, (page-1)*limit, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
	}

	return &ListTransactionsOutput{
		Page: &entity.TransactionPage{
			Transactions: txns,
			TotalCount:   total,
			CurrentPage:  page,
			Limit:        limit,
			TotalPages:   pages,
		},
	}, nil
}

func buildFilter(input ListTransactionsInput) (adapter.TransactionFilter, error) {
	filter := adapter.TransactionFilter{OwnerID: input.OwnerID}

	if input.StartDate != "" {
		start, _, ok := valueobject.ParseInstant(input.StartDate)
		if !ok {
			return filter, invalidDateFilter("start")
		}
		filter.StartDate = &start
	}

	if input.EndDate != "" {
		end, dateOnly, ok := valueobject.ParseInstant(input.EndDate)
		if !ok {
			return filter, invalidDateFilter("end")
		}
		if dateOnly {
			end = valueobject.EndOfDay(end)
		}
		filter.EndDate = &end
	}

	return filter, nil
}

func invalidDateFilter(name string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidDateFilter,
		fmt.Sprintf("%s date is not a recognized date", name),
		domainerror.ErrInvalidDateFilter,
	)
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

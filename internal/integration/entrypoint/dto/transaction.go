package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Kind        string   `json:"kind" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" binding:"required"`
}

// ToFields converts the request into use case fields.
func (r CreateTransactionRequest) ToFields() transaction.TransactionFields {
	return transaction.TransactionFields{
		Kind:        r.Kind,
		Amount:      decimal.NewFromFloat(*r.Amount),
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}
}

// CreateManyTransactionsRequest represents the request body for bulk transaction creation.
type CreateManyTransactionsRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,dive"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Kind        string    `json:"kind"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TransactionListResponse represents one page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int64                 `json:"totalCount"`
	CurrentPage  int                   `json:"currentPage"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"totalPages"`
}

// TransactionsResponse wraps a list of created transactions.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		OwnerID:     txn.OwnerID.String(),
		Kind:        string(txn.Kind),
		Amount:      txn.Amount.InexactFloat64(),
		Category:    string(txn.Category),
		Description: txn.Description,
		Date:        txn.Date.UTC(),
		CreatedAt:   txn.CreatedAt.UTC(),
		UpdatedAt:   txn.UpdatedAt.UTC(),
	}
}

// ToTransactionResponses converts a slice of transactions, never returning nil.
func ToTransactionResponses(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, ToTransactionResponse(txn))
	}
	return out
}

// ToTransactionListResponse converts a transaction page to its response DTO.
func ToTransactionListResponse(page *entity.TransactionPage) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(page.Transactions),
		TotalCount:   page.TotalCount,
		CurrentPage:  page.CurrentPage,
		Limit:        page.Limit,
		TotalPages:   page.TotalPages,
	}
}

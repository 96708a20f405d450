// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of transaction (expense or income).
type TransactionKind string

const (
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindIncome  TransactionKind = "income"
)

// IsValid reports whether the kind is one of the known transaction kinds.
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindExpense || k == TransactionKindIncome
}

// Storage bounds of a transaction: amounts are decimal(15,2) and descriptions varchar(255).
const (
	AmountScale          = 2
	MaxDescriptionLength = 255
)

// MaxAmount is the largest amount that fits the amount column.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// NormalizeAmount rounds an amount to cents. It reports false when the rounded amount is
// negative or does not fit the amount column.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, bool) {
	rounded := amount.Round(AmountScale)
	if rounded.IsNegative() || rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	return rounded, true
}

// TruncateDescription cuts a description to MaxDescriptionLength characters.
func TruncateDescription(description string) string {
	if utf8.RuneCountInString(description) <= MaxDescriptionLength {
		return description
	}
	return string([]rune(description)[:MaxDescriptionLength])
}

// Transaction is an income or expense record belonging to one owner.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        TransactionKind
	Amount      decimal.Decimal
	Category    Category
	Description string
	Date        time.Time // When the transaction happened, not when it was recorded
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
// IDs are time-ordered so that sorting by ID breaks ties between records sharing a date
// in insertion order.
func NewTransaction(
	ownerID uuid.UUID,
	kind TransactionKind,
	amount decimal.Decimal,
	category Category,
	description string,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return &Transaction{
		ID:          id,
		OwnerID:     ownerID,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionPage represents one page of a date-sorted transaction listing.
type TransactionPage struct {
	Transactions []*Transaction
	TotalCount   int64
	CurrentPage  int
	Limit        int
	TotalPages   int
}

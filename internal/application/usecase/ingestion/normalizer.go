package ingestion

import (
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Normalize validates a candidate and builds the transaction owned by ownerID.
// When the candidate is rejected the transaction is nil and the reason says why.
// Amounts are rounded to cents and over-long descriptions are truncated to fit storage.
func Normalize(c Candidate, ownerID uuid.UUID, policy AmountPolicy) (*entity.Transaction, entity.SkipReason) {
	kind := entity.TransactionKind(strings.ToLower(strings.TrimSpace(c.Kind)))
	if !kind.IsValid() {
		return nil, entity.SkipReasonInvalidKind
	}

	if !c.AmountValid {
		return nil, entity.SkipReasonInvalidAmount
	}
	amount, ok := entity.NormalizeAmount(c.Amount)
	if !ok {
		return nil, entity.SkipReasonInvalidAmount
	}
	if policy == AmountMustBePositive && !amount.IsPositive() {
		return nil, entity.SkipReasonInvalidAmount
	}

	return entity.NewTransaction(
		ownerID,
		kind,
		amount,
		entity.CategoryOrDefault(c.Category),
		entity.TruncateDescription(strings.TrimSpace(c.Description)),
		c.Date,
	), ""
}

package ingestion

import "github.com/expense-tracker/backend/internal/domain/entity"

// AmountPolicy decides which amounts the normalizer accepts.
type AmountPolicy int

const (
	// AmountMustBePositive rejects zero and negative amounts.
	AmountMustBePositive AmountPolicy = iota
	// AmountMayBeZero accepts zero, used when the amount is a fallback value.
	AmountMayBeZero
)

// Strategy turns extracted text into candidate records.
// Lines a strategy cannot parse at all are reported as skipped.
type Strategy interface {
	Parse(raw string) ([]Candidate, []entity.SkippedLine)
	AmountPolicy() AmountPolicy
}

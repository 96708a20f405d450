package ingestion

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// statementColumns is the number of columns in a statement line:
// type, amount, category, description, date.
const statementColumns = 5

var columnSeparatorRegex = regexp.MustCompile(`\s{2,}`)

// StatementStrategy parses statement text laid out in whitespace-aligned columns.
type StatementStrategy struct{}

// NewStatementStrategy creates a new StatementStrategy.
func NewStatementStrategy() *StatementStrategy {
	return &StatementStrategy{}
}

// AmountPolicy implements Strategy.
func (s *StatementStrategy) AmountPolicy() AmountPolicy {
	return AmountMustBePositive
}

// Parse implements Strategy. Columns past the fifth are ignored.
func (s *StatementStrategy) Parse(raw string) ([]Candidate, []entity.SkippedLine) {
	var candidates []Candidate
	var skipped []entity.SkippedLine

	for i, line := range Tokenize(raw) {
		lineNo := i + 1
		fields := columnSeparatorRegex.Split(line, -1)
		if len(fields) < statementColumns {
			skipped = append(skipped, entity.SkippedLine{
				Line:       lineNo,
				SourceLine: line,
				Reason:     entity.SkipReasonInsufficientFields,
			})
			continue
		}

		date, ok := valueobject.ParseDate(fields[4])
		if !ok {
			skipped = append(skipped, entity.SkippedLine{
				Line:       lineNo,
				SourceLine: line,
				Reason:     entity.SkipReasonInvalidDate,
			})
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
		candidates = append(candidates, Candidate{
			Line:        lineNo,
			SourceLine:  line,
			Kind:        strings.ToLower(strings.TrimSpace(fields[0])),
			Amount:      amount,
			AmountValid: err == nil,
			Category:    strings.TrimSpace(fields[2]),
			Description: strings.TrimSpace(fields[3]),
			Date:        date,
		})
	}

	return candidates, skipped
}

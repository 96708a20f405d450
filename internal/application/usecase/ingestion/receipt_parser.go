package ingestion

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

const (
	// ReceiptDescription is the description given to every receipt transaction.
	ReceiptDescription = "POS receipt"

	receiptDateLayout = "01/02/2006"
)

var (
	receiptDateRegex  = regexp.MustCompile(`\b(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])/(19|20)\d{2}\b`)
	receiptTotalRegex = regexp.MustCompile(`(?i)total\s*[:\-]?\s*\$?\s*([\d,]+(\.\d{2})?)`)
)

// ReceiptStrategy extracts a single expense from free-form receipt text.
// It never skips: a missing date falls back to the clock and a missing total to zero.
type ReceiptStrategy struct {
	now func() time.Time
}

// NewReceiptStrategy creates a new ReceiptStrategy. A nil clock defaults to time.Now.
func NewReceiptStrategy(now func() time.Time) *ReceiptStrategy {
	if now == nil {
		now = time.Now
	}
	return &ReceiptStrategy{now: now}
}

// AmountPolicy implements Strategy.
func (s *ReceiptStrategy) AmountPolicy() AmountPolicy {
	return AmountMayBeZero
}

// Parse implements Strategy. Fields are searched line by line so a match never spans lines.
func (s *ReceiptStrategy) Parse(raw string) ([]Candidate, []entity.SkippedLine) {
	lines := Tokenize(raw)
	candidate := Candidate{
		Line:        1,
		SourceLine:  strings.Join(lines, "\n"),
		Kind:        string(entity.TransactionKindExpense),
		Amount:      s.findTotal(lines),
		AmountValid: true,
		Category:    string(entity.CategoryBills),
		Description: ReceiptDescription,
		Date:        s.findDate(lines),
	}
	return []Candidate{candidate}, nil
}

// findDate returns the first MM/DD/YYYY match that is a real calendar date.
func (s *ReceiptStrategy) findDate(lines []string) time.Time {
	for _, line := range lines {
		for _, match := range receiptDateRegex.FindAllString(line, -1) {
			if t, err := time.Parse(receiptDateLayout, match); err == nil {
				return valueobject.StartOfDay(t)
			}
		}
	}
	return s.now().UTC()
}

// findTotal returns the amount on the last line carrying a "total", with thousands separators
// removed. Totals that cannot be stored fall back to zero.
func (s *ReceiptStrategy) findTotal(lines []string) decimal.Decimal {
	var last []string
	for _, line := range lines {
		if match := receiptTotalRegex.FindStringSubmatch(line); match != nil {
			last = match
		}
	}
	if last == nil {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(last[1], ",", ""))
	if err != nil {
		return decimal.Zero
	}
	amount, ok := entity.NormalizeAmount(amount)
	if !ok {
		return decimal.Zero
	}
	return amount
}

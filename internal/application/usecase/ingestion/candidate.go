package ingestion

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candidate is a parsed but not yet validated record.
type Candidate struct {
	Line        int
	SourceLine  string
	Kind        string
	Amount      decimal.Decimal
	AmountValid bool // False when the amount column was not a number
	Category    string
	Description string
	Date        time.Time
}

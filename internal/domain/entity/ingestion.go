package entity

// SkipReason is the closed set of reasons a statement line can be rejected for.
type SkipReason string

const (
	SkipReasonInsufficientFields SkipReason = "insufficient_fields"
	SkipReasonInvalidDate        SkipReason = "invalid_date"
	SkipReasonInvalidKind        SkipReason = "invalid_kind"
	SkipReasonInvalidAmount      SkipReason = "invalid_amount"
)

// Description returns a human readable explanation of the reason.
func (r SkipReason) Description() string {
	switch r {
	case SkipReasonInsufficientFields:
		return "Insufficient fields"
	case SkipReasonInvalidDate:
		return "Invalid date format"
	case SkipReasonInvalidKind:
		return "Type must be income or expense"
	case SkipReasonInvalidAmount:
		return "Amount must be a positive number"
	default:
		return string(r)
	}
}

// SkippedLine is a source line that could not be turned into a transaction.
type SkippedLine struct {
	Line       int // 1-based position among the non-empty lines of the document
	SourceLine string
	Reason     SkipReason
}

// IngestionReport summarizes the outcome of importing one uploaded file.
// It is returned to the caller and never persisted.
type IngestionReport struct {
	Inserted      []*Transaction
	InsertedCount int
	Skipped       []SkippedLine
}

// ProcessedLines returns the number of lines that were either inserted or skipped.
func (r *IngestionReport) ProcessedLines() int {
	return r.InsertedCount + len(r.Skipped)
}

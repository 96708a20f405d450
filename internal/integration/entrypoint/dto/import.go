package dto

import "github.com/expense-tracker/backend/internal/domain/entity"

// SkippedLineResponse describes one rejected source line.
type SkippedLineResponse struct {
	Line       int    `json:"line"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
	SourceLine string `json:"sourceLine"`
}

// ImportReportResponse is returned by the statement import endpoint.
type ImportReportResponse struct {
	InsertedCount  int                   `json:"insertedCount"`
	SkippedCount   int                   `json:"skippedCount"`
	ProcessedLines int                   `json:"processedLines"`
	Transactions   []TransactionResponse `json:"transactions"`
	Skipped        []SkippedLineResponse `json:"skipped"`
}

// ReceiptResponse is returned by the receipt import endpoint.
type ReceiptResponse struct {
	Transaction TransactionResponse `json:"transaction"`
}

// ToImportReportResponse converts an ingestion report to its response DTO.
func ToImportReportResponse(report *entity.IngestionReport) ImportReportResponse {
	skipped := make([]SkippedLineResponse, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		skipped = append(skipped, SkippedLineResponse{
			Line:       s.Line,
			Reason:     string(s.Reason),
			Message:    s.Reason.Description(),
			SourceLine: s.SourceLine,
		})
	}

	return ImportReportResponse{
		InsertedCount:  report.InsertedCount,
		SkippedCount:   len(report.Skipped),
		ProcessedLines: report.ProcessedLines(),
		Transactions:   ToTransactionResponses(report.Inserted),
		Skipped:        skipped,
	}
}

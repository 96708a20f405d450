package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailMessage is a rendered message ready for delivery.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
	// Tags are attached to the message at the provider for filtering and analytics.
	Tags map[string]string
}

// EmailSender delivers rendered messages through an email provider.
type EmailSender interface {
	// Send returns the provider's message id.
	Send(ctx context.Context, msg EmailMessage) (string, error)
}

// ImportNotifier tells an owner about the outcome of a statement import.
type ImportNotifier interface {
	// NotifyImport sends a summary of the report to the given address.
	NotifyImport(ctx context.Context, to, fileName string, report *entity.IngestionReport) error
}

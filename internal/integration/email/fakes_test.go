package email

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

type recordingSender struct {
	sent []adapter.EmailMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg adapter.EmailMessage) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return fmt.Sprintf("msg-%d", len(s.sent)), nil
}

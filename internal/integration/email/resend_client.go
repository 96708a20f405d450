// Package email delivers owner notifications through Resend.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ResendConfig configures a ResendClient.
type ResendConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	// BaseURL overrides the Resend API endpoint. Empty means the public API.
	BaseURL string
}

// ResendClient implements adapter.EmailSender on the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a client for the configured sender address.
func NewResendClient(cfg ResendConfig) (*ResendClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("resend api key is required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("sender email is required")
	}

	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	return &ResendClient{client: client, from: from}, nil
}

// Send delivers msg and returns the Resend message id.
func (c *ResendClient) Send(ctx context.Context, msg adapter.EmailMessage) (string, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		Tags:    resendTags(msg.Tags),
	})
	if err != nil {
		return "", classifySendError(err)
	}
	return resp.Id, nil
}

// resendTags converts tags to the provider format in a stable order.
func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]resend.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, resend.Tag{Name: name, Value: tags[name]})
	}
	return out
}

// permanentMarkers appear in Resend errors that will fail again on retry.
// Rate limits and server errors carry none of them.
var permanentMarkers = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}

func classifySendError(err error) *domainerror.NotificationError {
	text := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(text, marker) {
			return domainerror.NewNotificationError(
				domainerror.ErrCodeNotificationRejected,
				domainerror.ErrNotificationRejected.Error(),
				err,
			)
		}
	}
	return domainerror.NewNotificationError(
		domainerror.ErrCodeNotificationUnavailable,
		domainerror.ErrNotificationUnavailable.Error(),
		err,
	)
}

var _ adapter.EmailSender = (*ResendClient)(nil)

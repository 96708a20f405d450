package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func newResendServer(t *testing.T, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResendClient_Send(t *testing.T) {
	var request map[string]any
	server := newResendServer(t, http.StatusOK, `{"id":"email_123"}`, &request)

	client, err := NewResendClient(ResendConfig{
		APIKey:    "re_test",
		FromName:  "Expense Tracker",
		FromEmail: "noreply@example.com",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)

	id, err := client.Send(context.Background(), adapter.EmailMessage{
		To:      "owner@example.com",
		Subject: "Import of march.pdf: 1 added, 0 skipped",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Tags:    map[string]string{"category": "import_summary", "b": "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "email_123", id)
	assert.Equal(t, "Expense Tracker <noreply@example.com>", request["from"])
	assert.Equal(t, []any{"owner@example.com"}, request["to"])
	assert.Equal(t, []any{
		map[string]any{"name": "b", "value": "2"},
		map[string]any{"name": "category", "value": "import_summary"},
	}, request["tags"])
}

func TestResendClient_Config(t *testing.T) {
	_, err := NewResendClient(ResendConfig{FromEmail: "noreply@example.com"})
	assert.Error(t, err)

	_, err = NewResendClient(ResendConfig{APIKey: "re_test"})
	assert.Error(t, err)

	_, err = NewResendClient(ResendConfig{APIKey: "re_test", FromEmail: "noreply@example.com", BaseURL: "://bad"})
	assert.Error(t, err)
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		err       error
		wantCode  domainerror.NotificationErrorCode
		retryable bool
	}{
		{errors.New("[ERROR]: 401 Unauthorized"), domainerror.ErrCodeNotificationRejected, false},
		{errors.New("[ERROR]: Invalid `to` field"), domainerror.ErrCodeNotificationRejected, false},
		{errors.New("[ERROR]: 429 rate limit exceeded"), domainerror.ErrCodeNotificationUnavailable, true},
		{errors.New("dial tcp: connection refused"), domainerror.ErrCodeNotificationUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := classifySendError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.retryable, got.Retryable())
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthController_Check(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name         string
		database     HealthCheck
		cache        HealthCheck
		wantStatus   int
		wantResponse HealthResponse
	}{
		{"all up", up, up, http.StatusOK, HealthResponse{Status: "ok", Database: "connected", Cache: "connected"}},
		{"cache down", up, down, http.StatusOK, HealthResponse{Status: "degraded", Database: "connected", Cache: "disconnected"}},
		{"cache missing", up, nil, http.StatusOK, HealthResponse{Status: "degraded", Database: "connected", Cache: "disconnected"}},
		{"database down", down, up, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: "disconnected", Cache: "connected"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthController(tt.database, tt.cache).Check)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Timestamp)
			got.Timestamp = ""
			assert.Equal(t, tt.wantResponse, got)
		})
	}
}

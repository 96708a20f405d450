package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

var errNotConfigured = errors.New("not configured")

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

// HealthController reports whether the API can reach its database and cache.
type HealthController struct {
	database HealthCheck
	cache    HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(database, cache HealthCheck) *HealthController {
	return &HealthController{database: database, cache: cache}
}

// Check handles GET /health. A lost cache only degrades the service, since
// analytics falls back to the database. A lost database answers 503.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	var dbErr, cacheErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dbErr = runCheck(ctx, "database", h.database)
	}()
	go func() {
		defer wg.Done()
		cacheErr = runCheck(ctx, "cache", h.cache)
	}()
	wg.Wait()

	response := HealthResponse{
		Status:    "ok",
		Database:  connectionStatus(dbErr),
		Cache:     connectionStatus(cacheErr),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	switch {
	case dbErr != nil:
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case cacheErr != nil:
		response.Status = "degraded"
	}

	c.JSON(status, response)
}

func runCheck(ctx context.Context, name string, check HealthCheck) error {
	if check == nil {
		return errNotConfigured
	}
	if err := check(ctx); err != nil {
		slog.Error("Health check failed", "dependency", name, "error", err)
		return err
	}
	return nil
}

func connectionStatus(err error) string {
	if err != nil {
		return "disconnected"
	}
	return "connected"
}

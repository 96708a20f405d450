// Package main is the entry point for the Expense Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/ingestion"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/email"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Expense Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	gemini := adapters.NewGeminiExtractor(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if !gemini.IsAvailable() {
		slog.Warn("GEMINI_API_KEY not set, PDF and image imports will fail extraction")
	}
	extractor := adapters.NewExtractorRouter().
		Register(adapters.NewPlainTextExtractor(), ingestion.ContentTypeText).
		Register(gemini, ingestion.ContentTypePDF, ingestion.ContentTypeJPEG, ingestion.ContentTypePNG)

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender, err = email.NewResendClient(email.ResendConfig{
			APIKey:    cfg.Email.ResendAPIKey,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.Email.FromEmail,
			BaseURL:   cfg.Email.ResendBaseURL,
		})
		if err != nil {
			slog.Error("Failed to configure email sender", "error", err)
			os.Exit(1)
		}
	} else if cfg.Email.ImportNotifications {
		slog.Warn("RESEND_API_KEY not set, import notifications disabled")
	}

	injector, err := dependency.NewInjector(cfg, dependency.Dependencies{
		Database:    database,
		Redis:       redisClient,
		Extractor:   extractor,
		EmailSender: emailSender,
	})
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Expired rate limit windows are dropped periodically
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Upload.RateWindow)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				injector.RateLimiter.Cleanup()
			case <-stopCleanup:
				return
			}
		}
	}()

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

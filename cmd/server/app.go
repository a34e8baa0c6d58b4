package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cardloop/cardloop-api/internal/config"
	"github.com/cardloop/cardloop-api/internal/domain/srs"
	"github.com/cardloop/cardloop-api/internal/generation"
	"github.com/cardloop/cardloop-api/internal/platform/gemini"
	"github.com/cardloop/cardloop-api/internal/platform/postgres"
	"github.com/cardloop/cardloop-api/internal/ratelimit"
	"github.com/cardloop/cardloop-api/internal/service/auth"
	"github.com/cardloop/cardloop-api/internal/service/review"
	"github.com/cardloop/cardloop-api/internal/store"
)

// application holds the fully wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	deckStore      store.DeckStore
	flashcardStore store.FlashcardStore
	reviewStore    store.ReviewEventStore

	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	reviewService review.Service

	// generator is nil when no Gemini API key is configured; the
	// /generate route is not registered in that case.
	generator generation.Generator

	deckCreateLimits *ratelimit.Registry
	cardCreateLimits *ratelimit.Registry
	generateLimits   *ratelimit.Registry
}

// newApplication builds the application dependency graph from config.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	flashcardStore := postgres.NewPostgresFlashcardStore(db, logger)
	reviewStore := postgres.NewPostgresReviewEventStore(db, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      postgres.NewPostgresUserStore(db, logger),
		deckStore:      postgres.NewPostgresDeckStore(db, logger),
		flashcardStore: flashcardStore,
		reviewStore:    reviewStore,
		jwtService:     jwtService,
		hasher:         auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		reviewService: review.NewService(
			flashcardStore,
			reviewStore,
			srs.NewDefaultService(),
			logger,
		),
	}

	if cfg.LLM.GeminiAPIKey != "" {
		generator, err := gemini.NewGenerator(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.ModelName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create card generator: %w", err)
		}
		app.generator = generator
	} else {
		logger.Warn("no Gemini API key configured, card generation disabled")
	}

	app.setupRateLimiters()

	return app, nil
}

// setupRateLimiters builds one limiter registry per throttled operation.
// The per-minute creation limits use token buckets so capacity trickles
// back continuously; the hourly generation limit uses a sliding window
// so a burst an hour ago ages out request by request.
func (app *application) setupRateLimiters() {
	cfg := app.config.RateLimit

	ttl := time.Duration(cfg.RegistryTTLMinutes) * time.Minute

	if !cfg.Enabled {
		noop := func() ratelimit.Limiter { return ratelimit.NewNoopLimiter() }
		app.deckCreateLimits = ratelimit.NewRegistry(noop, ttl, cfg.RegistryMaxEntries)
		app.cardCreateLimits = ratelimit.NewRegistry(noop, ttl, cfg.RegistryMaxEntries)
		app.generateLimits = ratelimit.NewRegistry(noop, ttl, cfg.RegistryMaxEntries)
		return
	}

	app.deckCreateLimits = ratelimit.NewRegistry(func() ratelimit.Limiter {
		return ratelimit.NewTokenBucketLimiter(
			float64(cfg.DeckCreationPerMinute),
			float64(cfg.DeckCreationPerMinute)/60.0,
		)
	}, ttl, cfg.RegistryMaxEntries)

	app.cardCreateLimits = ratelimit.NewRegistry(func() ratelimit.Limiter {
		return ratelimit.NewTokenBucketLimiter(
			float64(cfg.FlashcardCreationPerMinute),
			float64(cfg.FlashcardCreationPerMinute)/60.0,
		)
	}, ttl, cfg.RegistryMaxEntries)

	app.generateLimits = ratelimit.NewRegistry(func() ratelimit.Limiter {
		return ratelimit.NewSlidingWindowLimiter(cfg.GenerationPerHour, time.Hour)
	}, ttl, cfg.RegistryMaxEntries)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}

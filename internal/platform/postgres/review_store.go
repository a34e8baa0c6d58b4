package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/platform/logger"
	"github.com/cardloop/cardloop-api/internal/store"
)

// PostgresReviewEventStore implements the store.ReviewEventStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewEventStore creates a new PostgreSQL implementation of
// the ReviewEventStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresReviewEventStore(db store.DBTX, logger *slog.Logger) *PostgresReviewEventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_event_store")),
	}
}

// Ensure PostgresReviewEventStore implements store.ReviewEventStore interface
var _ store.ReviewEventStore = (*PostgresReviewEventStore)(nil)

// Create implements store.ReviewEventStore.Create
func (s *PostgresReviewEventStore) Create(ctx context.Context, event *domain.ReviewEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("review event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", event.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_events (id, flashcard_id, user_id, quality, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.FlashcardID,
		event.UserID,
		event.Quality,
		nullableInt(event.LatencyMs),
		event.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create review event",
			slog.String("error", err.Error()),
			slog.String("review_id", event.ID.String()),
			slog.String("flashcard_id", event.FlashcardID.String()))
		return MapError(err)
	}

	log.Debug("review event created",
		slog.String("review_id", event.ID.String()),
		slog.String("flashcard_id", event.FlashcardID.String()),
		slog.Int("quality", event.Quality))
	return nil
}

// ListForFlashcard implements store.ReviewEventStore.ListForFlashcard
func (s *PostgresReviewEventStore) ListForFlashcard(
	ctx context.Context,
	flashcardID, userID uuid.UUID,
) ([]*domain.ReviewEvent, error) {
	query := `
		SELECT id, flashcard_id, user_id, quality, latency_ms, created_at
		FROM review_events
		WHERE flashcard_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, flashcardID, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.ReviewEvent
	for rows.Next() {
		var event domain.ReviewEvent
		var latency sql.NullInt64
		err := rows.Scan(
			&event.ID,
			&event.FlashcardID,
			&event.UserID,
			&event.Quality,
			&latency,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		if latency.Valid {
			ms := int(latency.Int64)
			event.LatencyMs = &ms
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return events, nil
}

// WithTx implements store.ReviewEventStore.WithTx
func (s *PostgresReviewEventStore) WithTx(tx *sql.Tx) store.ReviewEventStore {
	return &PostgresReviewEventStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableInt converts an optional int into a driver-friendly value.
func nullableInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

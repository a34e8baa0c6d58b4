package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/platform/logger"
	"github.com/cardloop/cardloop-api/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardColumns = `id, deck_id, user_id, front, back,
	ease_factor, interval_days, repetition, next_review_at,
	created_at, updated_at`

// scanFlashcard reads one flashcard row. next_review_at is nullable.
func scanFlashcard(row interface{ Scan(...any) error }) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var nextReviewAt sql.NullTime
	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.UserID,
		&card.Front,
		&card.Back,
		&card.EaseFactor,
		&card.IntervalDays,
		&card.Repetition,
		&nextReviewAt,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if nextReviewAt.Valid {
		t := nextReviewAt.Time.UTC()
		card.NextReviewAt = &t
	}
	return &card, nil
}

// Create implements store.FlashcardStore.Create
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcards (id, deck_id, user_id, front, back,
			ease_factor, interval_days, repetition, next_review_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.DeckID,
		card.UserID,
		card.Front,
		card.Back,
		card.EaseFactor,
		card.IntervalDays,
		card.Repetition,
		nullableTime(card.NextReviewAt),
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()),
			slog.String("deck_id", card.DeckID.String()))
		return MapError(err)
	}

	log.Debug("flashcard created",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple
func (s *PostgresFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			return fmt.Errorf("failed to create flashcard %s: %w", card.ID, err)
		}
	}
	return nil
}

// GetForUser implements store.FlashcardStore.GetForUser
func (s *PostgresFlashcardStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE id = $1 AND user_id = $2
	`
	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, MapError(err)
	}
	return card, nil
}

// ListByDeck implements store.FlashcardStore.ListByDeck
func (s *PostgresFlashcardStore) ListByDeck(
	ctx context.Context,
	deckID, userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE deck_id = $1 AND user_id = $2
		ORDER BY created_at
	`
	return s.queryFlashcards(ctx, query, deckID, userID)
}

// ListDue implements store.FlashcardStore.ListDue
// It returns the user's review queue: every card whose next review time is
// set and not in the future, soonest due first.
func (s *PostgresFlashcardStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1
		  AND next_review_at IS NOT NULL
		  AND next_review_at <= $2
		ORDER BY next_review_at
	`
	return s.queryFlashcards(ctx, query, userID, time.Now().UTC())
}

func (s *PostgresFlashcardStore) queryFlashcards(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Flashcard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// UpdateScheduling implements store.FlashcardStore.UpdateScheduling
// The statement writes the full scheduling state keyed by (id, user_id),
// so replaying it after a partial failure is safe.
func (s *PostgresFlashcardStore) UpdateScheduling(
	ctx context.Context,
	id, userID uuid.UUID,
	state domain.SchedulingState,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE flashcards
		SET ease_factor = $3,
		    interval_days = $4,
		    repetition = $5,
		    next_review_at = $6,
		    updated_at = $7
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		id,
		userID,
		state.EaseFactor,
		state.IntervalDays,
		state.Repetition,
		nullableTime(state.NextReviewAt),
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to update flashcard scheduling",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrFlashcardNotFound)
}

// UpdateContent implements store.FlashcardStore.UpdateContent
func (s *PostgresFlashcardStore) UpdateContent(
	ctx context.Context,
	id, userID uuid.UUID,
	front, back string,
) error {
	query := `
		UPDATE flashcards
		SET front = $3, back = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, id, userID, front, back, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrFlashcardNotFound)
}

// Delete implements store.FlashcardStore.Delete
// Associated review events are removed by the ON DELETE CASCADE foreign
// key on review_events.flashcard_id.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM flashcards WHERE id = $1 AND user_id = $2`
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrFlashcardNotFound)
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableTime converts an optional time into a driver-friendly value.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

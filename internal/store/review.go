package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
)

// ReviewEventStore defines the interface for review-event persistence.
// Review events are append-only: there are no update or delete operations.
type ReviewEventStore interface {
	// Create saves a new review event.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity wrapping the validation error if data is invalid.
	Create(ctx context.Context, event *domain.ReviewEvent) error

	// ListForFlashcard retrieves the review history of a flashcard owned
	// by the user, most recent first.
	ListForFlashcard(ctx context.Context, flashcardID, userID uuid.UUID) ([]*domain.ReviewEvent, error)

	// WithTx returns a new ReviewEventStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) ReviewEventStore
}

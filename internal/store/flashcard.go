package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// Create saves a new flashcard to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity wrapping the validation error if data is invalid.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMultiple saves multiple flashcards in one batch. Run it inside
	// a transaction via RunInTransaction for atomicity.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// GetForUser retrieves a flashcard by ID, scoped to its owner.
	// Returns ErrFlashcardNotFound if the card does not exist or belongs
	// to a different user; absence and non-ownership are deliberately
	// indistinguishable to the caller.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Flashcard, error)

	// ListByDeck retrieves all flashcards in a deck owned by the user.
	ListByDeck(ctx context.Context, deckID, userID uuid.UUID) ([]*domain.Flashcard, error)

	// ListDue retrieves all flashcards for a user whose next review time
	// is set and not after now, ordered by next review time ascending.
	ListDue(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// UpdateScheduling replaces the scheduling state of a flashcard owned
	// by the user. The write is idempotent: repeating it with the same
	// state is harmless, which allows safe retries after a failed update.
	// Returns ErrFlashcardNotFound if the card does not exist or is not owned.
	UpdateScheduling(ctx context.Context, id, userID uuid.UUID, state domain.SchedulingState) error

	// UpdateContent modifies a card's front and back text.
	// Returns ErrFlashcardNotFound if the card does not exist or is not owned.
	UpdateContent(ctx context.Context, id, userID uuid.UUID, front, back string) error

	// Delete removes a flashcard and, via cascading foreign keys, its
	// review events. Returns ErrFlashcardNotFound if absent or not owned.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) FlashcardStore
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns ErrInvalidEntity wrapping the validation error if data is invalid.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetForUser retrieves a deck by ID, scoped to its owner.
	// Returns ErrDeckNotFound if the deck does not exist or is not owned.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error)

	// ListForUser retrieves all decks owned by the user, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// Update modifies a deck's name and description.
	// Returns ErrDeckNotFound if the deck does not exist or is not owned.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck and, via cascading foreign keys, its
	// flashcards. Returns ErrDeckNotFound if absent or not owned.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new DeckStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DeckStore
}

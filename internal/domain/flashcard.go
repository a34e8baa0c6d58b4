package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default scheduling values for a newly created flashcard.
const (
	DefaultEaseFactor   = 2.5
	MinEaseFactor       = 1.3
	DefaultIntervalDays = 1
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardDeckIDEmpty is returned when a flashcard's deck ID is empty or nil.
	ErrFlashcardDeckIDEmpty = errors.New("flashcard deck ID cannot be empty")

	// ErrFlashcardUserIDEmpty is returned when a flashcard's user ID is empty or nil.
	ErrFlashcardUserIDEmpty = errors.New("flashcard user ID cannot be empty")

	// ErrFlashcardFrontEmpty is returned when a flashcard's front side is empty.
	ErrFlashcardFrontEmpty = errors.New("flashcard front cannot be empty")

	// ErrFlashcardBackEmpty is returned when a flashcard's back side is empty.
	ErrFlashcardBackEmpty = errors.New("flashcard back cannot be empty")

	// ErrInvalidEaseFactor is returned when an ease factor is below the 1.3 floor.
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")

	// ErrInvalidInterval is returned when an interval is below one day.
	ErrInvalidInterval = errors.New("interval must be at least 1 day")

	// ErrInvalidRepetition is returned when a repetition count is negative.
	ErrInvalidRepetition = errors.New("repetition count cannot be negative")
)

// SchedulingState is the spaced-repetition memory of one flashcard.
// It is mutated exclusively through the srs package; a nil NextReviewAt
// means the card has never been reviewed.
type SchedulingState struct {
	EaseFactor   float64    `json:"ease_factor"`   // >= 1.3 always
	IntervalDays int        `json:"interval_days"` // >= 1 always
	Repetition   int        `json:"repetition"`    // consecutive successful reviews
	NextReviewAt *time.Time `json:"next_review_at,omitempty"`
}

// NewSchedulingState returns the scheduling state assigned to a flashcard
// at creation time: default ease, one-day interval, no reviews yet.
func NewSchedulingState() SchedulingState {
	return SchedulingState{
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
		Repetition:   0,
		NextReviewAt: nil,
	}
}

// Validate checks the scheduling state invariants.
func (s SchedulingState) Validate() error {
	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}
	if s.IntervalDays < 1 {
		return ErrInvalidInterval
	}
	if s.Repetition < 0 {
		return ErrInvalidRepetition
	}
	return nil
}

// Flashcard represents a single front/back card belonging to a deck.
// Scheduling fields are embedded so the card row carries its own
// spaced-repetition state.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	UserID    uuid.UUID `json:"user_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	SchedulingState
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard with default scheduling state.
// It generates a new UUID for the card ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewFlashcard(userID, deckID uuid.UUID, front, back string) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:              uuid.New(),
		DeckID:          deckID,
		UserID:          userID,
		Front:           front,
		Back:            back,
		SchedulingState: NewSchedulingState(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}
	if c.DeckID == uuid.Nil {
		return ErrFlashcardDeckIDEmpty
	}
	if c.UserID == uuid.Nil {
		return ErrFlashcardUserIDEmpty
	}
	if strings.TrimSpace(c.Front) == "" {
		return ErrFlashcardFrontEmpty
	}
	if strings.TrimSpace(c.Back) == "" {
		return ErrFlashcardBackEmpty
	}
	return c.SchedulingState.Validate()
}

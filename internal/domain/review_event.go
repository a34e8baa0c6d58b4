package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Quality score bounds for a review submission.
const (
	MinQuality = 0
	MaxQuality = 5

	// PassingQuality is the lowest quality score counted as a successful
	// recall; anything below it resets the card's repetition streak.
	PassingQuality = 3
)

// ReviewEvent-specific validation errors
var (
	// ErrReviewEventIDEmpty is returned when a review event ID is empty or nil.
	ErrReviewEventIDEmpty = errors.New("review event ID cannot be empty")

	// ErrReviewFlashcardIDEmpty is returned when a review's flashcard ID is empty or nil.
	ErrReviewFlashcardIDEmpty = errors.New("review event flashcard ID cannot be empty")

	// ErrReviewUserIDEmpty is returned when a review's user ID is empty or nil.
	ErrReviewUserIDEmpty = errors.New("review event user ID cannot be empty")

	// ErrInvalidLatency is returned when a review latency is negative.
	ErrInvalidLatency = errors.New("review latency cannot be negative")
)

// ReviewEvent is an immutable audit record of one review submission.
// Events are created once and never updated or deleted; they remain as
// evidence even if the follow-up scheduling update fails.
type ReviewEvent struct {
	ID          uuid.UUID `json:"id"`
	FlashcardID uuid.UUID `json:"flashcard_id"`
	UserID      uuid.UUID `json:"user_id"`
	Quality     int       `json:"quality"`
	LatencyMs   *int      `json:"latency_ms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewReviewEvent creates a review event for the given submission.
// latencyMs may be nil when the client did not measure it.
// Returns an error if validation fails.
func NewReviewEvent(userID, flashcardID uuid.UUID, quality int, latencyMs *int) (*ReviewEvent, error) {
	event := &ReviewEvent{
		ID:          uuid.New(),
		FlashcardID: flashcardID,
		UserID:      userID,
		Quality:     quality,
		LatencyMs:   latencyMs,
		CreatedAt:   time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the ReviewEvent has valid data.
func (e *ReviewEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrReviewEventIDEmpty
	}
	if e.FlashcardID == uuid.Nil {
		return ErrReviewFlashcardIDEmpty
	}
	if e.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}
	if e.Quality < MinQuality || e.Quality > MaxQuality {
		return ErrInvalidQuality
	}
	if e.LatencyMs != nil && *e.LatencyMs < 0 {
		return ErrInvalidLatency
	}
	return nil
}

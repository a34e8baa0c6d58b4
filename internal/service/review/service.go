// Package review orchestrates flashcard review submissions: it loads the
// card's scheduling state, runs the spaced-repetition computation, and
// persists the audit event and the updated state.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
)

// Common error types for the review service.
var (
	// ErrCardNotFound indicates the flashcard does not exist or is not
	// owned by the submitting user. The two cases are intentionally not
	// distinguished.
	ErrCardNotFound = errors.New("flashcard not found")

	// ErrReviewPersist indicates the audit event insert failed. Nothing
	// was written, so the whole submission is safe to retry.
	ErrReviewPersist = errors.New("failed to record review")

	// ErrSchedulingUpdate indicates the review event was persisted but
	// the follow-up scheduling-state update failed. The review is on
	// record while the card's due date is stale; retrying just the state
	// update is safe because the write is idempotent.
	ErrSchedulingUpdate = errors.New("review recorded but scheduling update failed")
)

// ReviewResult is returned to the caller after a successful submission.
type ReviewResult struct {
	ReviewID    uuid.UUID              `json:"id"`
	FlashcardID uuid.UUID              `json:"flashcard_id"`
	Quality     int                    `json:"quality"`
	CreatedAt   time.Time              `json:"created_at"`
	State       domain.SchedulingState `json:"flashcard"`
}

// Service provides flashcard review operations.
type Service interface {
	// SubmitReview processes a review of the given flashcard.
	//
	// It verifies ownership, computes the next scheduling state, persists
	// a review event, and then persists the new state onto the flashcard.
	// The two persistence steps are deliberately not atomic; see
	// ErrReviewPersist and ErrSchedulingUpdate for the distinct failure
	// modes. latencyMs may be nil when the client did not measure it.
	//
	// Returns srs.ErrInvalidQuality for a quality outside [0, 5] and
	// ErrCardNotFound for an absent or unowned card.
	SubmitReview(
		ctx context.Context,
		userID, flashcardID uuid.UUID,
		quality int,
		latencyMs *int,
	) (*ReviewResult, error)

	// ReviewQueue returns all of the user's flashcards due for review
	// (next review time set and not after now), soonest due first.
	ReviewQueue(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// PostponeReview pushes the card's next review time forward by the
	// given number of days without touching ease factor or repetition.
	// Returns srs.ErrInvalidDays for days < 1, srs.ErrNotScheduled for a
	// never-reviewed card, and ErrCardNotFound for an absent or unowned
	// card.
	PostponeReview(ctx context.Context, userID, flashcardID uuid.UUID, days int) (*domain.Flashcard, error)
}

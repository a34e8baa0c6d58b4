package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/domain/srs"
	"github.com/cardloop/cardloop-api/internal/platform/logger"
	"github.com/cardloop/cardloop-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	flashcards store.FlashcardStore
	reviews    store.ReviewEventStore
	scheduler  srs.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new review Service implementation.
func NewService(
	flashcards store.FlashcardStore,
	reviews store.ReviewEventStore,
	scheduler srs.Service,
	log *slog.Logger,
) Service {
	if flashcards == nil {
		panic("flashcards store cannot be nil")
	}
	if reviews == nil {
		panic("reviews store cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		flashcards: flashcards,
		reviews:    reviews,
		scheduler:  scheduler,
		logger:     log.With(slog.String("component", "review_service")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SubmitReview implements Service.SubmitReview.
//
// Persistence is a two-phase sequence: the review event is inserted
// first so that a crash between the phases leaves an audit trail, then
// the scheduling state is written onto the flashcard. A failed state
// update is retried once (the write is idempotent) before the distinct
// ErrSchedulingUpdate is surfaced.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
	quality int,
	latencyMs *int,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review submission",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.Int("quality", quality))

	// Reject invalid quality before touching storage so a bad request
	// leaves no trace.
	if quality < domain.MinQuality || quality > domain.MaxQuality {
		log.Warn("invalid review quality",
			slog.String("user_id", userID.String()),
			slog.String("flashcard_id", flashcardID.String()),
			slog.Int("quality", quality))
		return nil, srs.ErrInvalidQuality
	}

	card, err := s.flashcards.GetForUser(ctx, flashcardID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("flashcard not found for review",
				slog.String("user_id", userID.String()),
				slog.String("flashcard_id", flashcardID.String()))
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to load flashcard: %w", err)
	}

	now := s.now()
	newState, err := s.scheduler.ComputeNextState(card.SchedulingState, quality, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next state: %w", err)
	}

	event, err := domain.NewReviewEvent(userID, flashcardID, quality, latencyMs)
	if err != nil {
		return nil, fmt.Errorf("failed to build review event: %w", err)
	}

	if err := s.reviews.Create(ctx, event); err != nil {
		log.Error("failed to persist review event",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", flashcardID.String()))
		return nil, fmt.Errorf("%w: %v", ErrReviewPersist, err)
	}

	if err := s.updateSchedulingWithRetry(ctx, flashcardID, userID, newState); err != nil {
		log.Error("scheduling update failed after review was recorded",
			slog.String("error", err.Error()),
			slog.String("review_id", event.ID.String()),
			slog.String("flashcard_id", flashcardID.String()))
		return nil, fmt.Errorf("%w: %v", ErrSchedulingUpdate, err)
	}

	log.Debug("review submission processed",
		slog.String("review_id", event.ID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.Int("quality", quality),
		slog.Float64("ease_factor", newState.EaseFactor),
		slog.Int("interval_days", newState.IntervalDays),
		slog.Time("next_review_at", *newState.NextReviewAt))

	return &ReviewResult{
		ReviewID:    event.ID,
		FlashcardID: flashcardID,
		Quality:     quality,
		CreatedAt:   event.CreatedAt,
		State:       newState,
	}, nil
}

// updateSchedulingWithRetry performs the second persistence phase. One
// immediate retry covers transient failures; anything persistent is the
// caller's to surface. A card deleted between the two phases maps to
// ErrCardNotFound rather than a retry.
func (s *serviceImpl) updateSchedulingWithRetry(
	ctx context.Context,
	flashcardID, userID uuid.UUID,
	state domain.SchedulingState,
) error {
	err := s.flashcards.UpdateScheduling(ctx, flashcardID, userID, state)
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrCardNotFound
	}

	if retryErr := s.flashcards.UpdateScheduling(ctx, flashcardID, userID, state); retryErr == nil {
		return nil
	}
	return err
}

// PostponeReview implements Service.PostponeReview. The state change is
// a single write, so no retry layer; an idempotent resubmit is enough.
func (s *serviceImpl) PostponeReview(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
	days int,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.flashcards.GetForUser(ctx, flashcardID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to load flashcard: %w", err)
	}

	newState, err := s.scheduler.PostponeReview(card.SchedulingState, days, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.flashcards.UpdateScheduling(ctx, flashcardID, userID, newState); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to persist postponed state: %w", err)
	}

	card.SchedulingState = newState
	log.Debug("review postponed",
		slog.String("flashcard_id", flashcardID.String()),
		slog.Int("days", days),
		slog.Time("next_review_at", *newState.NextReviewAt))
	return card, nil
}

// ReviewQueue implements Service.ReviewQueue.
func (s *serviceImpl) ReviewQueue(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.flashcards.ListDue(ctx, userID)
	if err != nil {
		log.Error("failed to list due flashcards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list due flashcards: %w", err)
	}

	return cards, nil
}

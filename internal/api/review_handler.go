package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cardloop/cardloop-api/internal/api/shared"
	"github.com/cardloop/cardloop-api/internal/platform/logger"
	"github.com/cardloop/cardloop-api/internal/service/review"
)

// ReviewHandler handles review submission and review queue requests.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /reviews requests. It records a review of a
// flashcard and returns the card's updated scheduling state with 201.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	// The uuid tag above guarantees this parses.
	flashcardID, err := uuid.Parse(req.FlashcardID)
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid flashcard ID format")
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, flashcardID, *req.Quality, req.LatencyMs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.Int("quality", result.Quality),
		slog.Int("interval_days", result.State.IntervalDays))
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// PostponeCard handles POST /cards/{id}/postpone requests. It pushes the
// card's next review forward by the requested number of days.
func (h *ReviewHandler) PostponeCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return
	}

	flashcardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid flashcard ID format")
		return
	}

	var req PostponeCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	card, err := h.reviewService.PostponeReview(r.Context(), userID, flashcardID, req.Days)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card postponed",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// GetReviewQueue handles GET /reviews/queue requests. It returns the
// authenticated user's flashcards due for review, soonest first.
func (h *ReviewHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return
	}

	cards, err := h.reviewService.ReviewQueue(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), "Failed to get review queue", err)
		return
	}

	log.Debug("review queue retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

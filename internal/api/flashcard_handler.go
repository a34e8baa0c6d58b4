package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cardloop/cardloop-api/internal/api/shared"
	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/platform/logger"
	"github.com/cardloop/cardloop-api/internal/store"
)

// FlashcardHandler handles flashcard CRUD requests.
type FlashcardHandler struct {
	flashcardStore store.FlashcardStore
	deckStore      store.DeckStore
	logger         *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(
	flashcardStore store.FlashcardStore,
	deckStore store.DeckStore,
	logger *slog.Logger,
) *FlashcardHandler {
	if flashcardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcardStore cannot be nil for FlashcardHandler")
	}
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}

	return &FlashcardHandler{
		flashcardStore: flashcardStore,
		deckStore:      deckStore,
		logger:         logger.With(slog.String("component", "flashcard_handler")),
	}
}

// CreateFlashcard handles POST /decks/{id}/cards requests. The new card
// starts with default scheduling state and no due date.
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := h.cardRequestIDs(w, r)
	if !ok {
		return
	}

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	// Confirm the deck exists and belongs to the caller before writing.
	if _, err := h.deckStore.GetForUser(r.Context(), deckID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	card, err := domain.NewFlashcard(userID, deckID, req.Front, req.Back)
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid flashcard data")
		return
	}

	if err := h.flashcardStore.Create(r.Context(), card); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), "Failed to create flashcard", err)
		return
	}

	log.Debug("flashcard created",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.String("flashcard_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// ListFlashcards handles GET /decks/{id}/cards requests.
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.cardRequestIDs(w, r)
	if !ok {
		return
	}

	cards, err := h.flashcardStore.ListByDeck(r.Context(), deckID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), "Failed to list flashcards", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// UpdateFlashcard handles PUT /cards/{id} requests. Only front and back
// are writable; scheduling state changes go through reviews.
func (h *FlashcardHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := h.cardRequestIDs(w, r)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	if err := h.flashcardStore.UpdateContent(r.Context(), cardID, userID, req.Front, req.Back); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	card, err := h.flashcardStore.GetForUser(r.Context(), cardID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteFlashcard handles DELETE /cards/{id} requests.
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := h.cardRequestIDs(w, r)
	if !ok {
		return
	}

	if err := h.flashcardStore.Delete(r.Context(), cardID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cardRequestIDs extracts the authenticated user ID and the {id} URL
// parameter, writing the error response itself when either is missing.
func (h *FlashcardHandler) cardRequestIDs(w http.ResponseWriter, r *http.Request) (userID, id uuid.UUID, ok bool) {
	userID, valid := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !valid || userID == uuid.Nil {
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, id, true
}

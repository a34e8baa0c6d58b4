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

// DeckHandler handles deck CRUD requests.
type DeckHandler struct {
	deckStore store.DeckStore
	logger    *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckStore store.DeckStore, logger *slog.Logger) *DeckHandler {
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil for DeckHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckStore: deckStore,
		logger:    logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	deck, err := domain.NewDeck(userID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid deck data")
		return
	}

	if err := h.deckStore.Create(r.Context(), deck); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), "Failed to create deck", err)
		return
	}

	log.Debug("deck created",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return
	}

	decks, err := h.deckStore.ListForUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), "Failed to list decks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetDeck handles GET /decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckRequestIDs(w, r)
	if !ok {
		return
	}

	deck, err := h.deckStore.GetForUser(r.Context(), deckID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// UpdateDeck handles PUT /decks/{id} requests.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckRequestIDs(w, r)
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	deck, err := h.deckStore.GetForUser(r.Context(), deckID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	deck.Name = req.Name
	deck.Description = req.Description
	if err := h.deckStore.Update(r.Context(), deck); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), "Failed to update deck", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{id} requests. Flashcards in the deck
// are removed by the schema's cascade.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := h.deckRequestIDs(w, r)
	if !ok {
		return
	}

	if err := h.deckStore.Delete(r.Context(), deckID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deckRequestIDs extracts the authenticated user ID and the deck ID from
// the request, writing the error response itself when either is missing.
func (h *DeckHandler) deckRequestIDs(w http.ResponseWriter, r *http.Request) (userID, deckID uuid.UUID, ok bool) {
	userID, valid := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !valid || userID == uuid.Nil {
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid deck ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, deckID, true
}

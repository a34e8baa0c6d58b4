package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/cardloop/cardloop-api/internal/api/shared"
	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/generation"
	"github.com/cardloop/cardloop-api/internal/platform/logger"
	"github.com/cardloop/cardloop-api/internal/store"
)

// defaultGenerateCount is used when the request omits count.
const defaultGenerateCount = 5

// GenerateHandler handles AI flashcard generation requests.
type GenerateHandler struct {
	db             *sql.DB
	generator      generation.Generator
	deckStore      store.DeckStore
	flashcardStore store.FlashcardStore
	logger         *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(
	db *sql.DB,
	generator generation.Generator,
	deckStore store.DeckStore,
	flashcardStore store.FlashcardStore,
	logger *slog.Logger,
) *GenerateHandler {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil for GenerateHandler")
	}
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for GenerateHandler")
	}
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil for GenerateHandler")
	}
	if flashcardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcardStore cannot be nil for GenerateHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		db:             db,
		generator:      generator,
		deckStore:      deckStore,
		flashcardStore: flashcardStore,
		logger:         logger.With(slog.String("component", "generate_handler")),
	}
}

// GenerateCards handles POST /generate requests. It asks the generator
// for card drafts on the given topic and saves them into the target deck
// in one transaction, so a partial batch is never persisted.
func (h *GenerateHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithCodedError(w, r, http.StatusUnauthorized, CodeUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Validation error")
		return
	}

	deckID, err := uuid.Parse(req.DeckID)
	if err != nil {
		shared.RespondWithCodedError(w, r, http.StatusBadRequest, CodeValidationError, "Invalid deck ID format")
		return
	}

	if _, err := h.deckStore.GetForUser(r.Context(), deckID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	count := req.Count
	if count == 0 {
		count = defaultGenerateCount
	}

	drafts, err := h.generator.GenerateCards(r.Context(), req.Topic, count)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), MapErrorToCode(err), GetSafeErrorMessage(err), err)
		return
	}

	cards := make([]*domain.Flashcard, 0, len(drafts))
	for _, draft := range drafts {
		card, err := domain.NewFlashcard(userID, deckID, draft.Front, draft.Back)
		if err != nil {
			log.Warn("skipping invalid generated card", slog.String("error", err.Error()))
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		shared.RespondWithCodedError(w, r, http.StatusBadGateway, CodeGenerationFailed, "Card generation produced no usable cards")
		return
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		return h.flashcardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, CodeInternalError, "Failed to save generated cards", err)
		return
	}

	log.Info("cards generated",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusCreated, cards)
}

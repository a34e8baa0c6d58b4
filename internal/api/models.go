package api

import (
	"github.com/google/uuid"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// CreateDeckRequest is the request body for creating a deck.
type CreateDeckRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateDeckRequest is the request body for updating a deck.
type UpdateDeckRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// CreateFlashcardRequest is the request body for creating one flashcard
// in a deck.
type CreateFlashcardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"  validate:"required"`
}

// UpdateFlashcardRequest is the request body for editing a flashcard's
// content. Scheduling fields are never client-writable.
type UpdateFlashcardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"  validate:"required"`
}

// SubmitReviewRequest is the request body for submitting a flashcard
// review. Quality is a pointer so that an explicit 0 survives decoding;
// range validation happens in the review service.
type SubmitReviewRequest struct {
	FlashcardID string `json:"flashcard_id" validate:"required,uuid"`
	Quality     *int   `json:"quality"      validate:"required"`
	LatencyMs   *int   `json:"latency_ms"   validate:"omitempty,min=0"`
}

// PostponeCardRequest is the request body for pushing a card's next
// review further out.
type PostponeCardRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// GenerateCardsRequest is the request body for AI flashcard generation.
type GenerateCardsRequest struct {
	DeckID string `json:"deck_id" validate:"required,uuid"`
	Topic  string `json:"topic"   validate:"required,max=500"`
	Count  int    `json:"count"   validate:"omitempty,min=1,max=20"`
}

package api

import (
	"errors"
	"net/http"

	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/domain/srs"
	"github.com/cardloop/cardloop-api/internal/generation"
	"github.com/cardloop/cardloop-api/internal/service/auth"
	"github.com/cardloop/cardloop-api/internal/service/review"
	"github.com/cardloop/cardloop-api/internal/store"
)

// Stable machine-readable error codes returned in JSON error bodies.
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeInvalidQuality         = "INVALID_QUALITY"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeFlashcardNotFound      = "FLASHCARD_NOT_FOUND"
	CodeDeckNotFound           = "DECK_NOT_FOUND"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeEmailExists            = "EMAIL_EXISTS"
	CodeReviewSubmissionFailed = "REVIEW_SUBMISSION_FAILED"
	CodeFlashcardUpdateFailed  = "FLASHCARD_UPDATE_FAILED"
	CodeRateLimited            = "RATE_LIMITED"
	CodeGenerationFailed       = "GENERATION_FAILED"
	CodeContentBlocked         = "CONTENT_BLOCKED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrFlashcardNotFound),
		errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, srs.ErrInvalidQuality),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, srs.ErrNotScheduled),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, generation.ErrEmptyTopic):
		return http.StatusBadRequest

	// Upstream generation problems
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToCode returns the stable error code for the given error.
func MapErrorToCode(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return CodeUnauthorized

	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrFlashcardNotFound):
		return CodeFlashcardNotFound

	case errors.Is(err, store.ErrDeckNotFound):
		return CodeDeckNotFound

	case errors.Is(err, store.ErrUserNotFound):
		return CodeUserNotFound

	case errors.Is(err, store.ErrEmailExists):
		return CodeEmailExists

	case errors.Is(err, srs.ErrInvalidQuality):
		return CodeInvalidQuality

	case errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, srs.ErrNotScheduled),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, generation.ErrEmptyTopic):
		return CodeValidationError

	// The two-phase review failure modes map to distinct codes so clients
	// can tell "retry the whole submission" from "the review is recorded
	// but the card's schedule is stale".
	case errors.Is(err, review.ErrReviewPersist):
		return CodeReviewSubmissionFailed
	case errors.Is(err, review.ErrSchedulingUpdate):
		return CodeFlashcardUpdateFailed

	case errors.Is(err, generation.ErrContentBlocked):
		return CodeContentBlocked
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return CodeGenerationFailed

	default:
		return CodeInternalError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for the
// given error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, srs.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, srs.ErrNotScheduled):
		return "Card has no scheduled review to postpone"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, generation.ErrEmptyTopic):
		return "Topic cannot be empty"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Generated content was blocked"

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Card generation failed"

	case errors.Is(err, review.ErrReviewPersist):
		return "Failed to record review"

	case errors.Is(err, review.ErrSchedulingUpdate):
		return "Review recorded but flashcard update failed"

	default:
		return "An unexpected error occurred"
	}
}

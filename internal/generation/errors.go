package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrEmptyTopic is returned when a generation request has no topic text.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrGenerationFailed is returned when card generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate cards")

	// ErrInvalidResponse is returned when the model response cannot be
	// parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due
	// to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)

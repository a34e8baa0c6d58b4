// Package generation defines the boundary between the application core
// and external AI text-completion services used to draft flashcards.
package generation

import "context"

// CardDraft is a generated front/back pair, not yet persisted as a
// flashcard.
type CardDraft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Generator defines the interface for drafting flashcards from a topic
// prompt. Implementations wrap an opaque text-completion provider; the
// application core never depends on a specific vendor.
type Generator interface {
	// GenerateCards drafts up to count flashcards about the given topic.
	// Returns at least one draft on success, or an error from errors.go.
	GenerateCards(ctx context.Context, topic string, count int) ([]CardDraft, error)
}

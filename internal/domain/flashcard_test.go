package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewFlashcard(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	card, err := NewFlashcard(userID, deckID, "What is the capital of France?", "Paris")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if card.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, card.UserID)
	}
	if card.DeckID != deckID {
		t.Errorf("Expected deck ID %s, got %s", deckID, card.DeckID)
	}
	if card.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestNewFlashcardDefaultScheduling(t *testing.T) {
	card, err := NewFlashcard(uuid.New(), uuid.New(), "front", "back")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.EaseFactor != DefaultEaseFactor {
		t.Errorf("Expected ease factor %v, got %v", DefaultEaseFactor, card.EaseFactor)
	}
	if card.IntervalDays != DefaultIntervalDays {
		t.Errorf("Expected interval %d, got %d", DefaultIntervalDays, card.IntervalDays)
	}
	if card.Repetition != 0 {
		t.Errorf("Expected repetition 0, got %d", card.Repetition)
	}
	if card.NextReviewAt != nil {
		t.Error("Expected nil NextReviewAt for an unreviewed card")
	}
}

func TestNewFlashcardValidation(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	tests := []struct {
		name    string
		userID  uuid.UUID
		deckID  uuid.UUID
		front   string
		back    string
		wantErr error
	}{
		{"empty user ID", uuid.Nil, deckID, "front", "back", ErrFlashcardUserIDEmpty},
		{"empty deck ID", userID, uuid.Nil, "front", "back", ErrFlashcardDeckIDEmpty},
		{"empty front", userID, deckID, "", "back", ErrFlashcardFrontEmpty},
		{"whitespace front", userID, deckID, "   ", "back", ErrFlashcardFrontEmpty},
		{"empty back", userID, deckID, "front", "", ErrFlashcardBackEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFlashcard(tt.userID, tt.deckID, tt.front, tt.back)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSchedulingStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   SchedulingState
		wantErr error
	}{
		{"valid default", NewSchedulingState(), nil},
		{"ease at floor", SchedulingState{EaseFactor: 1.3, IntervalDays: 1}, nil},
		{"ease below floor", SchedulingState{EaseFactor: 1.29, IntervalDays: 1}, ErrInvalidEaseFactor},
		{"zero interval", SchedulingState{EaseFactor: 2.5, IntervalDays: 0}, ErrInvalidInterval},
		{"negative repetition", SchedulingState{EaseFactor: 2.5, IntervalDays: 1, Repetition: -1}, ErrInvalidRepetition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

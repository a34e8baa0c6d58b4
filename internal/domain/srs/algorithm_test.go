package srs

import (
	"testing"
	"time"

	"github.com/cardloop/cardloop-api/internal/domain"
)

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		quality  int
		expected float64
	}{
		{
			name:     "perfect recall gains a tenth",
			current:  2.5,
			quality:  5,
			expected: 2.6,
		},
		{
			name:     "good recall is neutral",
			current:  2.5,
			quality:  4,
			expected: 2.5,
		},
		{
			name:     "hard recall drops moderately",
			current:  2.5,
			quality:  3,
			expected: 2.36, // 2.5 + (0.1 - 2*(0.08 + 2*0.02)) = 2.36
		},
		{
			name:     "complete blackout drops sharply",
			current:  2.5,
			quality:  0,
			expected: 1.7, // 2.5 + (0.1 - 5*(0.08 + 5*0.02)) = 1.7
		},
		{
			name:     "floor holds at minimum ease",
			current:  1.3,
			quality:  0,
			expected: 1.3,
		},
		{
			name:     "large drop saturates at floor",
			current:  1.5,
			quality:  1,
			expected: 1.3, // 1.5 - 0.54 = 0.96, clamped
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateNewEaseFactor(tc.current, tc.quality, params)

			if got != tc.expected {
				t.Errorf("Expected ease factor %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		quality  int
		newEF    float64
		expected int
	}{
		{
			name:     "failed recall resets interval",
			current:  30,
			quality:  2,
			newEF:    2.18,
			expected: 1,
		},
		{
			name:     "hard recall uses the 1.2 multiplier",
			current:  10,
			quality:  3,
			newEF:    2.36,
			expected: 12, // ceil(10 * 1.2)
		},
		{
			name:     "hard recall rounds up",
			current:  6,
			quality:  3,
			newEF:    2.36,
			expected: 8, // ceil(7.2)
		},
		{
			name:     "good recall multiplies by ease factor",
			current:  6,
			quality:  4,
			newEF:    2.5,
			expected: 15, // ceil(6 * 2.5)
		},
		{
			name:     "perfect recall rounds up",
			current:  6,
			quality:  5,
			newEF:    2.6,
			expected: 16, // ceil(15.6)
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateNewInterval(tc.current, tc.quality, tc.newEF, params)

			if got != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestComputeNextStateInvariants(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	states := []domain.SchedulingState{
		domain.NewSchedulingState(),
		{EaseFactor: 1.3, IntervalDays: 1, Repetition: 0},
		{EaseFactor: 1.3, IntervalDays: 365, Repetition: 12},
		{EaseFactor: 2.5, IntervalDays: 6, Repetition: 2},
		{EaseFactor: 3.1, IntervalDays: 100, Repetition: 9},
	}

	for _, state := range states {
		for quality := domain.MinQuality; quality <= domain.MaxQuality; quality++ {
			next := computeNextState(state, quality, now, params)

			if next.EaseFactor < params.MinEaseFactor {
				t.Errorf("quality %d: ease factor %v below floor", quality, next.EaseFactor)
			}
			if next.IntervalDays < 1 {
				t.Errorf("quality %d: interval %d below 1", quality, next.IntervalDays)
			}
			if next.Repetition < 0 {
				t.Errorf("quality %d: negative repetition %d", quality, next.Repetition)
			}

			if quality < domain.PassingQuality {
				if next.IntervalDays != 1 || next.Repetition != 0 {
					t.Errorf("quality %d: expected reset, got interval=%d repetition=%d",
						quality, next.IntervalDays, next.Repetition)
				}
			} else if next.Repetition != state.Repetition+1 {
				t.Errorf("quality %d: expected repetition %d, got %d",
					quality, state.Repetition+1, next.Repetition)
			}

			if next.NextReviewAt == nil {
				t.Fatalf("quality %d: next review time not set", quality)
			}
			expectedDue := now.AddDate(0, 0, next.IntervalDays)
			if !next.NextReviewAt.Equal(expectedDue) {
				t.Errorf("quality %d: expected due %v, got %v",
					quality, expectedDue, *next.NextReviewAt)
			}
		}
	}
}

func TestComputeNextStateExactValues(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name               string
		state              domain.SchedulingState
		quality            int
		expectedEase       float64
		expectedInterval   int
		expectedRepetition int
	}{
		{
			name:               "good recall on mature card",
			state:              domain.SchedulingState{EaseFactor: 2.5, IntervalDays: 6, Repetition: 2},
			quality:            4,
			expectedEase:       2.5,
			expectedInterval:   15,
			expectedRepetition: 3,
		},
		{
			name:               "perfect recall on mature card",
			state:              domain.SchedulingState{EaseFactor: 2.5, IntervalDays: 6, Repetition: 2},
			quality:            5,
			expectedEase:       2.6,
			expectedInterval:   16,
			expectedRepetition: 3,
		},
		{
			name:               "blackout resets a long streak",
			state:              domain.SchedulingState{EaseFactor: 2.5, IntervalDays: 10, Repetition: 3},
			quality:            0,
			expectedEase:       1.7,
			expectedInterval:   1,
			expectedRepetition: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := computeNextState(tc.state, tc.quality, now, params)

			if next.EaseFactor != tc.expectedEase {
				t.Errorf("Expected ease factor %v, got %v", tc.expectedEase, next.EaseFactor)
			}
			if next.IntervalDays != tc.expectedInterval {
				t.Errorf("Expected interval %d, got %d", tc.expectedInterval, next.IntervalDays)
			}
			if next.Repetition != tc.expectedRepetition {
				t.Errorf("Expected repetition %d, got %d", tc.expectedRepetition, next.Repetition)
			}
		})
	}
}

func TestComputeNextStateDeterminism(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := domain.SchedulingState{EaseFactor: 2.17, IntervalDays: 42, Repetition: 5}

	first := computeNextState(state, 4, now, params)
	second := computeNextState(state, 4, now, params)

	if first.EaseFactor != second.EaseFactor ||
		first.IntervalDays != second.IntervalDays ||
		first.Repetition != second.Repetition ||
		!first.NextReviewAt.Equal(*second.NextReviewAt) {
		t.Errorf("identical inputs produced different states: %+v vs %+v", first, second)
	}

	// The input state must remain untouched.
	if state.EaseFactor != 2.17 || state.IntervalDays != 42 || state.Repetition != 5 {
		t.Errorf("input state was mutated: %+v", state)
	}
}

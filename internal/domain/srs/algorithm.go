package srs

import (
	"math"
	"time"

	"github.com/cardloop/cardloop-api/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease adjustment for the given
// quality score and clamps the result at the configured floor.
//
// The adjustment is quadratic in (5 - quality): a perfect recall gains
// +0.1, quality 4 is neutral, and each step below that costs progressively
// more. The same formula runs on every review, failed recalls included, so
// repeated failures saturate at the floor rather than dropping further.
// The result is rounded to two decimal places to keep stored ease factors
// stable across platforms.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	delta := 0.1 - float64(domain.MaxQuality-quality)*
		(0.08+float64(domain.MaxQuality-quality)*0.02)

	newEF := currentEF + delta
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return math.Round(newEF*100) / 100
}

// calculateNewInterval determines the next interval in days.
//
// Failed recalls (quality below passing) reset to the failure interval.
// A bare pass uses the hard multiplier rather than the ease factor; good
// and perfect recalls grow the interval by the freshly computed ease
// factor. Intervals always round up so a card is never under-scheduled.
func calculateNewInterval(currentInterval, quality int, newEF float64, params *Params) int {
	switch {
	case quality < domain.PassingQuality:
		return params.FailedIntervalDays
	case quality == domain.PassingQuality:
		return int(math.Ceil(float64(currentInterval) * params.HardIntervalMultiplier))
	default:
		return int(math.Ceil(float64(currentInterval) * newEF))
	}
}

// computeNextState derives the full next scheduling state from the current
// state and a review quality score. The input state is not modified.
func computeNextState(
	state domain.SchedulingState,
	quality int,
	now time.Time,
	params *Params,
) domain.SchedulingState {
	next := domain.SchedulingState{
		EaseFactor: calculateNewEaseFactor(state.EaseFactor, quality, params),
	}

	next.IntervalDays = calculateNewInterval(state.IntervalDays, quality, next.EaseFactor, params)

	if quality < domain.PassingQuality {
		next.Repetition = 0
	} else {
		next.Repetition = state.Repetition + 1
	}

	due := now.AddDate(0, 0, next.IntervalDays)
	next.NextReviewAt = &due

	return next
}

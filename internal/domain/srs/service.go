package srs

import (
	"errors"
	"time"

	"github.com/cardloop/cardloop-api/internal/domain"
)

// Common errors
var (
	ErrInvalidQuality = errors.New("quality score must be an integer between 0 and 5")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
	ErrNotScheduled   = errors.New("card has no scheduled review to postpone")
)

// Service defines the interface for scheduling operations.
type Service interface {
	// ComputeNextState computes the scheduling state that follows a review
	// with the given quality score. It returns ErrInvalidQuality if quality
	// is outside [0, 5]; the input state is never modified.
	ComputeNextState(
		state domain.SchedulingState,
		quality int,
		now time.Time,
	) (domain.SchedulingState, error)

	// PostponeReview pushes the next review time forward by a specified
	// number of days without altering ease factor or repetition count.
	PostponeReview(
		state domain.SchedulingState,
		days int,
		now time.Time,
	) (domain.SchedulingState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// ComputeNextState implements the Service interface.
func (s *defaultService) ComputeNextState(
	state domain.SchedulingState,
	quality int,
	now time.Time,
) (domain.SchedulingState, error) {
	if quality < domain.MinQuality || quality > domain.MaxQuality {
		return domain.SchedulingState{}, ErrInvalidQuality
	}

	return computeNextState(state, quality, now, s.params), nil
}

// PostponeReview implements the Service interface.
func (s *defaultService) PostponeReview(
	state domain.SchedulingState,
	days int,
	now time.Time,
) (domain.SchedulingState, error) {
	if days < 1 {
		return domain.SchedulingState{}, ErrInvalidDays
	}
	if state.NextReviewAt == nil {
		return domain.SchedulingState{}, ErrNotScheduled
	}

	postponed := state.NextReviewAt.AddDate(0, 0, days)
	next := state
	next.NextReviewAt = &postponed

	return next, nil
}

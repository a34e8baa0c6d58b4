package srs

import "testing"

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	if params.MinEaseFactor != 1.3 {
		t.Errorf("Expected min ease factor 1.3, got %v", params.MinEaseFactor)
	}
	if params.HardIntervalMultiplier != 1.2 {
		t.Errorf("Expected hard multiplier 1.2, got %v", params.HardIntervalMultiplier)
	}
	if params.FailedIntervalDays != 1 {
		t.Errorf("Expected failed interval 1, got %d", params.FailedIntervalDays)
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		MinEaseFactor:          1.5,
		HardIntervalMultiplier: 1.4,
	})

	if params.MinEaseFactor != 1.5 {
		t.Errorf("Expected min ease factor 1.5, got %v", params.MinEaseFactor)
	}
	if params.HardIntervalMultiplier != 1.4 {
		t.Errorf("Expected hard multiplier 1.4, got %v", params.HardIntervalMultiplier)
	}
	// Unset fields keep their defaults.
	if params.FailedIntervalDays != 1 {
		t.Errorf("Expected failed interval 1, got %d", params.FailedIntervalDays)
	}
}

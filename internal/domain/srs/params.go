package srs

// Params defines the configurable parameters of the scheduling algorithm.
type Params struct {
	// MinEaseFactor is the floor applied to every computed ease factor.
	MinEaseFactor float64

	// HardIntervalMultiplier is applied to the current interval when a
	// review scores exactly the passing quality (a "hard" recall), instead
	// of the card's ease factor.
	HardIntervalMultiplier float64

	// FailedIntervalDays is the interval assigned after a failed recall.
	FailedIntervalDays int
}

// NewDefaultParams returns the standard SM-2 parameters.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:          1.3,
		HardIntervalMultiplier: 1.2,
		FailedIntervalDays:     1,
	}
}

// ParamsConfig allows overriding individual defaults when constructing Params.
// Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinEaseFactor          float64
	HardIntervalMultiplier float64
	FailedIntervalDays     int
}

// NewParams creates a Params instance with custom configuration applied
// over the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.HardIntervalMultiplier > 0 {
		params.HardIntervalMultiplier = config.HardIntervalMultiplier
	}
	if config.FailedIntervalDays > 0 {
		params.FailedIntervalDays = config.FailedIntervalDays
	}

	return params
}

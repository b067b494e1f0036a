package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged rolling.
// All rolls are logged at debug level with their bounds and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewLoggedRoller precondition violated: src and logger must be non-nil")
	}
	return &Roller{src: src, logger: logger}
}

// Uniform rolls a float in [min, max] and logs it.
//
// Precondition: min <= max.
// Postcondition: min <= result <= max.
func (r *Roller) Uniform(min, max float64) float64 {
	v := Uniform(r.src, min, max)
	r.logger.Debug("uniform roll",
		zap.Float64("min", min),
		zap.Float64("max", max),
		zap.Float64("result", v),
	)
	return v
}

// Percent rolls an int in [1, 100] and logs it.
//
// Postcondition: 1 <= result <= 100.
func (r *Roller) Percent() int {
	v := Percent(r.src)
	r.logger.Debug("percentile roll", zap.Int("result", v))
	return v
}

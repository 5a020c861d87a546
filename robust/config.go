package robust

import (
	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// Defaults applied by NewEngine when the corresponding option is not given.
const (
	// DefaultConfidence is the probability that at least one drawn subset
	// is outlier-free.
	DefaultConfidence = 0.99

	// DefaultMaxIterations bounds the iteration count regardless of the
	// confidence-driven budget.
	DefaultMaxIterations = 5000

	// DefaultProgressDelta is the minimum progress advance between two
	// OnEstimateProgressChange notifications.
	DefaultProgressDelta = 0.05

	// DefaultRandomSeed seeds the subset sampler. A fixed default keeps
	// estimations reproducible; use WithRandomSeed to vary it.
	DefaultRandomSeed = 1
)

// Config is the immutable configuration snapshot of an engine. It is
// validated once at construction; a copy is returned by Engine.Config.
type Config struct {
	// Variant selects the sampling and scoring policy.
	Variant Variant

	// Confidence is the target probability of drawing at least one
	// outlier-free subset. Must lie strictly between 0 and 1.
	Confidence float64

	// MaxIterations caps the iteration budget. Must be positive.
	MaxIterations int

	// Threshold is the residual bound below which a sample counts as an
	// inlier. Required positive for RANSAC, MSAC and PROSAC; unused by the
	// median-based variants.
	Threshold float64

	// ProgressDelta is the minimum progress advance between listener
	// progress notifications, in [0,1].
	ProgressDelta float64

	// RefineResult requests a final non-robust refit over all inliers of
	// the winning hypothesis.
	RefineResult bool
}

func defaultConfig(v Variant) Config {
	return Config{
		Variant:       v,
		Confidence:    DefaultConfidence,
		MaxIterations: DefaultMaxIterations,
		ProgressDelta: DefaultProgressDelta,
	}
}

// validate checks the configuration invariants.
func (c Config) validate() error {
	if !c.Variant.valid() {
		return errors.NewValidationError("variant", "unknown estimation variant", c.Variant)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return errors.NewValidationError("confidence", "must lie strictly between 0 and 1", c.Confidence)
	}
	if c.MaxIterations <= 0 {
		return errors.NewValidationError("maxIterations", "must be positive", c.MaxIterations)
	}
	if !c.Variant.medianBased() && c.Threshold <= 0 {
		return errors.NewValidationError("threshold", "must be positive", c.Threshold)
	}
	if c.Threshold < 0 {
		return errors.NewValidationError("threshold", "must not be negative", c.Threshold)
	}
	if c.ProgressDelta < 0 || c.ProgressDelta > 1 {
		return errors.NewValidationError("progressDelta", "must lie in [0,1]", c.ProgressDelta)
	}
	return nil
}

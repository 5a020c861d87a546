package robust

import (
	"github.com/YuminosukeSato/numgo/pkg/log"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithSamples supplies the sample set before the first estimation. Samples
// can also be supplied later via SetSamples.
func WithSamples(s *SampleSet) Option {
	return func(e *Engine) {
		e.samples = s
	}
}

// WithConfidence sets the target confidence, strictly between 0 and 1.
func WithConfidence(p float64) Option {
	return func(e *Engine) {
		e.cfg.Confidence = p
	}
}

// WithMaxIterations caps the iteration budget.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.cfg.MaxIterations = n
	}
}

// WithThreshold sets the inlier residual threshold used by the
// threshold-based variants.
func WithThreshold(t float64) Option {
	return func(e *Engine) {
		e.cfg.Threshold = t
	}
}

// WithProgressDelta sets the minimum progress advance between listener
// progress notifications.
func WithProgressDelta(d float64) Option {
	return func(e *Engine) {
		e.cfg.ProgressDelta = d
	}
}

// WithRefinement requests a final non-robust refit over all inliers of the
// winning hypothesis.
func WithRefinement(refine bool) Option {
	return func(e *Engine) {
		e.cfg.RefineResult = refine
	}
}

// WithListener installs a progress listener. A nil listener disables
// notifications.
func WithListener(l ProgressListener) Option {
	return func(e *Engine) {
		e.listener = l
	}
}

// WithLogger replaces the engine's logger. Useful for routing estimation
// events into a test capture or a component-tagged logger.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRandomSeed seeds the subset sampler. Estimations with the same seed,
// configuration and data are bit-identical.
func WithRandomSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithGeometricDistance forwards the geometric-distance flag to the residual
// evaluator when it implements GeometricDistancer. The engine itself ignores
// the flag.
func WithGeometricDistance(use bool) Option {
	return func(e *Engine) {
		e.geometric = use
		e.geometricSet = true
	}
}

package robust

// Model is an opaque candidate model produced by a ModelFitter. The engine
// never inspects it; it only forwards it to the ResidualEvaluator and into
// the final Result.
type Model interface{}

// ModelFitter instantiates candidate models from sample subsets. It is a
// caller-supplied collaborator; the engine contains no fitting logic.
type ModelFitter interface {
	// MinSamples returns the minimal number of samples needed to
	// instantiate one candidate model. Must be at least 1 and constant for
	// the lifetime of the fitter.
	MinSamples() int

	// Fit produces zero or more candidate models from the given sample
	// indices. A degenerate subset yields an empty slice, not an error.
	// Fit must accept any index slice of length >= MinSamples; the engine
	// passes all inliers of the winning hypothesis when refining. The
	// indices slice is reused between calls and must not be retained.
	Fit(indices []int) ([]Model, error)
}

// ResidualEvaluator computes the non-negative error of a sample against a
// candidate model. Implementations must be pure: the same model and sample
// always yield the same residual.
type ResidualEvaluator interface {
	Residual(m Model, sample int) (float64, error)
}

// GeometricDistancer is an optional interface for residual evaluators that
// can switch between algebraic and geometric distance. The engine forwards
// the WithGeometricDistance option to the evaluator when it implements this
// interface; the flag has no meaning to the engine itself.
type GeometricDistancer interface {
	UseGeometricDistance(use bool)
}

// ProgressListener receives estimation lifecycle events. All callbacks run
// synchronously on the goroutine that called Estimate and must not call back
// into the engine's mutating methods; doing so fails with a LockedError.
type ProgressListener interface {
	// OnEstimateStart is called once before the first iteration.
	OnEstimateStart(e *Engine)

	// OnEstimateNextIteration is called whenever a candidate improves the
	// best hypothesis, with the zero-based iteration index.
	OnEstimateNextIteration(e *Engine, iteration int)

	// OnEstimateProgressChange is called when the running progress
	// fraction, completed iterations over the current budget, advances by
	// at least the configured progress delta. progress is in [0,1].
	OnEstimateProgressChange(e *Engine, progress float64)

	// OnEstimateEnd is called once after the loop terminates, on success
	// and on failure alike.
	OnEstimateEnd(e *Engine)
}

// Package optimize provides deterministic single-dimension optimizers:
// downhill bracketing, golden-section minimization and Ridder's method for
// root finding.
package optimize

import (
	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// Func is a scalar objective function.
type Func func(x float64) float64

// Iteration reports the state of a solver after one iteration.
type Iteration struct {
	K  int     // iteration counter, starting at 1
	A  float64 // lower bound of the current interval
	B  float64 // upper bound of the current interval
	X  float64 // current best abscissa
	FX float64 // objective value at X
}

// ErrStopped is returned by a solver when its iteration callback requests an
// early stop.
var ErrStopped = errors.New("optimize: stopped by callback")

const (
	// DefaultTolerance is the default interval tolerance for the scalar
	// solvers.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations bounds the iteration count of the scalar solvers.
	DefaultMaxIterations = 200
)

type settings struct {
	tol     float64
	maxIter int
	onIter  func(Iteration) error
}

// Option configures a solver call.
type Option func(*settings)

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(s *settings) {
		s.tol = tol
	}
}

// WithMaxIterations sets the iteration budget.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		s.maxIter = n
	}
}

// WithIterationCallback installs a callback invoked after every iteration.
// Returning ErrStopped from the callback aborts the solver; any other error
// is propagated unchanged.
func WithIterationCallback(fn func(Iteration) error) Option {
	return func(s *settings) {
		s.onIter = fn
	}
}

func newSettings(opts []Option) (*settings, error) {
	s := &settings{
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tol <= 0 {
		return nil, errors.NewValidationError("tolerance", "must be positive", s.tol)
	}
	if s.maxIter <= 0 {
		return nil, errors.NewValidationError("maxIterations", "must be positive", s.maxIter)
	}
	return s, nil
}

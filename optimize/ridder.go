package optimize

import (
	"math"

	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// Ridder finds a root of f on the interval [a,b] using Ridder's method.
//
// The endpoints must bracket a root: f(a) and f(b) must have opposite signs,
// or the call fails with a ValueError before any iteration. Each iteration
// evaluates f twice and applies an exponential correction to the false
// position, giving quadratic convergence while the bracket is maintained at
// every step. Failure to converge within the iteration budget is reported as
// an error carrying a ConvergenceWarning.
func Ridder(f Func, a, b float64, opts ...Option) (float64, error) {
	s, err := newSettings(opts)
	if err != nil {
		return math.NaN(), err
	}

	fa := f(a)
	if fa == 0 {
		return a, nil
	}
	fb := f(b)
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 {
		return math.NaN(), errors.NewValueError("optimize.Ridder", "f(a) and f(b) must have opposite signs")
	}

	root := math.NaN()
	for k := 1; k <= s.maxIter; k++ {
		xm := 0.5 * (a + b)
		fm := f(xm)
		d := math.Sqrt(fm*fm - fa*fb)
		if d == 0 {
			return xm, nil
		}

		// Exponential correction of the false-position step.
		dx := (xm - a) * fm / d
		if fa < fb {
			dx = -dx
		}
		xNew := xm + dx
		fNew := f(xNew)

		if !math.IsNaN(root) && math.Abs(xNew-root) <= s.tol {
			return xNew, nil
		}
		root = xNew
		if fNew == 0 {
			return root, nil
		}

		// Re-bracket with the points of opposite sign closest to the root.
		switch {
		case math.Signbit(fm) != math.Signbit(fNew):
			a, fa = xm, fm
			b, fb = xNew, fNew
		case math.Signbit(fa) != math.Signbit(fNew):
			b, fb = xNew, fNew
		default:
			a, fa = xNew, fNew
		}

		if s.onIter != nil {
			if cbErr := s.onIter(Iteration{K: k, A: a, B: b, X: root, FX: fNew}); cbErr != nil {
				if errors.Is(cbErr, ErrStopped) {
					return root, nil
				}
				return math.NaN(), cbErr
			}
		}

		if math.Abs(b-a) <= s.tol {
			return root, nil
		}
	}

	return root, errors.WithStack(errors.NewConvergenceWarning("Ridder", s.maxIter, ""))
}

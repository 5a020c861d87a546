package optimize

import (
	"math"

	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// invPhi is 1/φ, the interval reduction factor of the golden-section search.
var invPhi = (math.Sqrt(5) - 1) / 2

// Minimum is the result of a scalar minimization.
type Minimum struct {
	X          float64 // abscissa of the minimum
	F          float64 // objective value at X
	Iterations int     // iterations actually performed
	Converged  bool    // whether the interval shrank below the tolerance
}

// Bracket expands the interval [a,b] downhill until it brackets a local
// minimum, returning a triple a < m < b with f(m) < f(a) and f(m) < f(b).
// Expansion uses golden-ratio steps and gives up after the iteration budget.
func Bracket(f Func, a, b float64, opts ...Option) (lo, mid, hi float64, err error) {
	s, err := newSettings(opts)
	if err != nil {
		return 0, 0, 0, err
	}
	if a == b {
		return 0, 0, 0, errors.NewValueError("optimize.Bracket", "interval endpoints must differ")
	}

	fa := f(a)
	fb := f(b)
	if fb > fa {
		// Walk downhill from a toward b.
		a, b = b, a
		fa, fb = fb, fa
	}
	c := b + (b-a)/invPhi
	fc := f(c)

	for k := 1; fc < fb; k++ {
		if k > s.maxIter {
			return 0, 0, 0, errors.WithStack(errors.NewConvergenceWarning(
				"Bracket", s.maxIter, "no bracketing triple found; the function may be unbounded below"))
		}
		a, b, c = b, c, c+(c-b)/invPhi
		fa, fb, fc = fb, fc, f(c)
	}
	_ = fa

	if a > c {
		a, c = c, a
	}
	return a, b, c, nil
}

// GoldenSection minimizes f on the interval [a,b] by golden-section search.
//
// The search assumes f is unimodal on [a,b]; otherwise it converges to some
// local minimum. If the iteration budget runs out before the interval shrinks
// below the tolerance, the best point found so far is returned with
// Converged=false and a ConvergenceWarning is emitted through the warning
// handler.
func GoldenSection(f Func, a, b float64, opts ...Option) (Minimum, error) {
	s, err := newSettings(opts)
	if err != nil {
		return Minimum{}, err
	}
	if a >= b {
		return Minimum{}, errors.NewValueError("optimize.GoldenSection", "interval must satisfy a < b")
	}

	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1 := f(x1)
	f2 := f(x2)

	var k int
	for k = 1; k <= s.maxIter && b-a > s.tol; k++ {
		if f1 <= f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}

		if s.onIter != nil {
			x, fx := x1, f1
			if f2 < f1 {
				x, fx = x2, f2
			}
			if cbErr := s.onIter(Iteration{K: k, A: a, B: b, X: x, FX: fx}); cbErr != nil {
				if errors.Is(cbErr, ErrStopped) {
					return Minimum{X: x, F: fx, Iterations: k}, nil
				}
				return Minimum{}, cbErr
			}
		}
	}

	x, fx := x1, f1
	if f2 < f1 {
		x, fx = x2, f2
	}
	min := Minimum{X: x, F: fx, Iterations: k - 1, Converged: b-a <= s.tol}
	if !min.Converged {
		errors.Warn(errors.NewConvergenceWarning("GoldenSection", s.maxIter, ""))
	}
	return min, nil
}

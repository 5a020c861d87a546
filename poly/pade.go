package poly

import (
	"math"

	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// Pade is a rational approximant P(x)/Q(x) given by a numerator and a
// denominator polynomial. By convention Q is normalized so that Q(0) = 1,
// but this is not enforced.
type Pade struct {
	P Polynomial
	Q Polynomial
}

// NewPade returns a Padé approximant from numerator and denominator
// coefficients in ascending order of power.
func NewPade(num, den []float64) (*Pade, error) {
	if len(den) == 0 {
		return nil, errors.NewValueError("poly.NewPade", "denominator must have at least one coefficient")
	}
	allZero := true
	for _, c := range den {
		if c != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, errors.NewValueError("poly.NewPade", "denominator must not be identically zero")
	}
	return &Pade{
		P: NewPolynomial(num...),
		Q: NewPolynomial(den...),
	}, nil
}

// Eval evaluates the approximant at x. Evaluation near a pole, where the
// denominator vanishes, yields a NumericalInstabilityError instead of Inf.
func (pa *Pade) Eval(x float64) (float64, error) {
	den := pa.Q.Eval(x)
	if math.Abs(den) < 1e-300 {
		return 0, errors.NewNumericalInstabilityError("Pade.Eval", []float64{x, den}, 0)
	}
	y := pa.P.Eval(x) / den
	if err := errors.CheckScalar("Pade.Eval", y, 0); err != nil {
		return 0, err
	}
	return y, nil
}

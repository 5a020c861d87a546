// Package poly provides polynomial and Padé rational evaluators.
//
// A Polynomial is a coefficient slice in ascending order of power, so
// Polynomial{c0, c1, c2} represents c0 + c1*x + c2*x². Evaluation uses
// Horner's scheme.
package poly

import (
	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// Polynomial represents a real polynomial by its coefficients in ascending
// order of power. The zero-length polynomial evaluates to 0 everywhere.
type Polynomial []float64

// NewPolynomial returns a polynomial with the given ascending coefficients,
// trimmed of trailing zero coefficients.
func NewPolynomial(coeffs ...float64) Polynomial {
	n := len(coeffs)
	for n > 1 && coeffs[n-1] == 0 {
		n--
	}
	p := make(Polynomial, n)
	copy(p, coeffs[:n])
	return p
}

// Degree returns the degree of the polynomial. The zero polynomial has
// degree 0.
func (p Polynomial) Degree() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Eval evaluates the polynomial at x using Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Derivative returns the first derivative as a new polynomial.
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	d := make(Polynomial, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// EvalWithDerivative evaluates the polynomial and its first derivative at x
// in a single Horner pass.
func (p Polynomial) EvalWithDerivative(x float64) (y, dy float64) {
	for i := len(p) - 1; i >= 0; i-- {
		dy = dy*x + y
		y = y*x + p[i]
	}
	return y, dy
}

// Coeff returns the coefficient of x^i, or 0 when i exceeds the degree.
func (p Polynomial) Coeff(i int) float64 {
	if i < 0 || i >= len(p) {
		return 0
	}
	return p[i]
}

// Validate reports an error when the coefficients contain NaN or Inf.
func (p Polynomial) Validate() error {
	return errors.CheckNumericalStability("Polynomial.Validate", p, 0)
}

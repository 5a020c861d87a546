// Package polyfit fits polynomials to 2-D data by least squares and plugs
// into the robust estimation engine as both ModelFitter and
// ResidualEvaluator.
//
// A Fitter of degree d needs d+1 samples to instantiate a candidate, builds
// a Vandermonde system over the requested sample indices and solves it by QR
// factorization, so the same code path serves minimal subsets during the
// robust loop and the overdetermined refit over all inliers afterwards.
package polyfit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/numgo/pkg/errors"
	"github.com/YuminosukeSato/numgo/poly"
	"github.com/YuminosukeSato/numgo/robust"
)

// Fitter fits degree-d polynomials to the points (x[i], y[i]).
//
// The data slices are caller-owned and read-only for the lifetime of the
// fitter; no defensive copy is made.
type Fitter struct {
	degree    int
	x, y      []float64
	geometric bool
}

// New creates a polynomial fitter of the given degree over the data points.
// The coordinate slices must be non-empty and of equal length.
func New(degree int, x, y []float64) (*Fitter, error) {
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must not be negative", degree)
	}
	if len(x) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "polyfit.New")
	}
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("polyfit.New", len(x), len(y))
	}
	return &Fitter{degree: degree, x: x, y: y}, nil
}

// Degree returns the polynomial degree.
func (f *Fitter) Degree() int {
	return f.degree
}

// MinSamples returns the minimal number of points needed to determine a
// degree-d polynomial, d+1.
func (f *Fitter) MinSamples() int {
	return f.degree + 1
}

// Fit solves the least-squares polynomial through the given sample indices.
// Degenerate subsets, such as repeated x positions that make the Vandermonde
// matrix rank-deficient, yield an empty candidate list rather than an error.
func (f *Fitter) Fit(indices []int) ([]robust.Model, error) {
	if len(indices) < f.MinSamples() {
		return nil, errors.NewDimensionError("polyfit.Fit", f.MinSamples(), len(indices))
	}

	a := f.vandermonde(indices)
	b := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		b.SetVec(i, f.y[idx])
	}

	c := mat.NewVecDense(f.degree+1, nil)
	// mat.QR panics on rank-deficient solves; treat that as a degenerate
	// subset, not a failure of the estimation.
	err := errors.SafeExecute("polyfit.Fit", func() error {
		var qr mat.QR
		qr.Factorize(a)
		return qr.SolveVecTo(c, false, b)
	})
	if err != nil {
		return nil, nil
	}

	coeffs := make([]float64, f.degree+1)
	for i := range coeffs {
		coeffs[i] = c.AtVec(i)
	}
	if errors.CheckNumericalStability("polyfit.Fit", coeffs, 0) != nil {
		return nil, nil
	}
	return []robust.Model{poly.NewPolynomial(coeffs...)}, nil
}

// Residual returns the distance of sample i from the candidate polynomial:
// the vertical distance |p(x)−y|, or for degree-1 models with geometric
// distance enabled, the perpendicular point-line distance.
func (f *Fitter) Residual(m robust.Model, sample int) (float64, error) {
	p, ok := m.(poly.Polynomial)
	if !ok {
		return 0, errors.NewValueError("polyfit.Residual", "model is not a polynomial")
	}
	if sample < 0 || sample >= len(f.x) {
		return 0, errors.NewDimensionError("polyfit.Residual", len(f.x), sample)
	}

	xi, yi := f.x[sample], f.y[sample]
	d := math.Abs(p.Eval(xi) - yi)
	if f.geometric && p.Degree() == 1 {
		// Distance from (x,y) to the line y = c1*x + c0.
		d /= math.Hypot(p.Coeff(1), 1)
	}
	return d, nil
}

// UseGeometricDistance toggles perpendicular distance for degree-1 models.
// Implements robust.GeometricDistancer.
func (f *Fitter) UseGeometricDistance(use bool) {
	f.geometric = use
}

func (f *Fitter) vandermonde(indices []int) *mat.Dense {
	a := mat.NewDense(len(indices), f.degree+1, nil)
	for i, idx := range indices {
		v := 1.0
		for j := 0; j <= f.degree; j++ {
			a.Set(i, j, v)
			v *= f.x[idx]
		}
	}
	return a
}

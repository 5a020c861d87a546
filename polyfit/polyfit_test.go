package polyfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	numerrors "github.com/YuminosukeSato/numgo/pkg/errors"
	"github.com/YuminosukeSato/numgo/poly"
)

func TestNewValidation(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 2}

	_, err := New(-1, x, y)
	var verr *numerrors.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = New(1, nil, nil)
	assert.ErrorIs(t, err, numerrors.ErrEmptyData)

	_, err = New(1, x, y[:2])
	var derr *numerrors.DimensionError
	assert.ErrorAs(t, err, &derr)
}

func TestMinSamples(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	for degree, want := range map[int]int{0: 1, 1: 2, 2: 3} {
		f, err := New(degree, x, x)
		require.NoError(t, err)
		assert.Equal(t, want, f.MinSamples())
	}
}

func TestFitExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7} // y = 2x + 1
	f, err := New(1, x, y)
	require.NoError(t, err)

	models, err := f.Fit([]int{0, 3})
	require.NoError(t, err)
	require.Len(t, models, 1)

	p := models[0].(poly.Polynomial)
	assert.InDelta(t, 1.0, p.Coeff(0), 1e-12)
	assert.InDelta(t, 2.0, p.Coeff(1), 1e-12)
}

func TestFitOverdeterminedLeastSquares(t *testing.T) {
	// Symmetric noise around y = x leaves the least-squares line exact.
	x := []float64{0, 1, 2, 3}
	y := []float64{0.1, 0.9, 2.1, 2.9}
	f, err := New(1, x, y)
	require.NoError(t, err)

	models, err := f.Fit([]int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, models, 1)

	p := models[0].(poly.Polynomial)
	assert.InDelta(t, 0.0, p.Coeff(0), 1e-9)
	assert.InDelta(t, 1.0, p.Coeff(1), 1e-9)
}

func TestFitQuadratic(t *testing.T) {
	x := []float64{-1, 0, 1, 2}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3*xi*xi - 2*xi + 0.5
	}
	f, err := New(2, x, y)
	require.NoError(t, err)

	models, err := f.Fit([]int{0, 1, 2})
	require.NoError(t, err)
	require.Len(t, models, 1)

	p := models[0].(poly.Polynomial)
	assert.InDelta(t, 0.5, p.Coeff(0), 1e-9)
	assert.InDelta(t, -2.0, p.Coeff(1), 1e-9)
	assert.InDelta(t, 3.0, p.Coeff(2), 1e-9)
}

func TestFitDegenerateSubset(t *testing.T) {
	// Two points at the same x cannot determine a line. The fitter reports
	// no candidates instead of failing the whole estimation.
	x := []float64{1, 1, 2}
	y := []float64{0, 5, 3}
	f, err := New(1, x, y)
	require.NoError(t, err)

	models, err := f.Fit([]int{0, 1})
	assert.NoError(t, err)
	assert.Empty(t, models)
}

func TestFitTooFewIndices(t *testing.T) {
	f, err := New(1, []float64{0, 1, 2}, []float64{0, 1, 2})
	require.NoError(t, err)

	_, err = f.Fit([]int{0})
	var derr *numerrors.DimensionError
	assert.ErrorAs(t, err, &derr)
}

func TestResidualVertical(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 3, 6}
	f, err := New(1, x, y)
	require.NoError(t, err)

	p := poly.NewPolynomial(1, 2) // y = 2x + 1

	r, err := f.Residual(p, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, r, 1e-12)

	r, err = f.Residual(p, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestResidualGeometric(t *testing.T) {
	x := []float64{0}
	y := []float64{1}
	f, err := New(1, x, y)
	require.NoError(t, err)

	p := poly.NewPolynomial(0, 1) // y = x, at distance 1/sqrt(2) from (0,1)

	f.UseGeometricDistance(true)
	r, err := f.Residual(p, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, r, 1e-12)

	f.UseGeometricDistance(false)
	r, err = f.Residual(p, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestResidualErrors(t *testing.T) {
	f, err := New(1, []float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)

	_, err = f.Residual("not a polynomial", 0)
	var verr *numerrors.ValueError
	assert.ErrorAs(t, err, &verr)

	p := poly.NewPolynomial(0, 1)
	_, err = f.Residual(p, 5)
	var derr *numerrors.DimensionError
	assert.ErrorAs(t, err, &derr)
}

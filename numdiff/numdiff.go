// Package numdiff estimates derivatives, gradients and Jacobians by finite
// differences.
//
// Step sizes are chosen automatically from machine epsilon:
// h = eps^(1/2)·max(1,|x|) for forward differences and
// h = eps^(1/3)·max(1,|x|) for central differences, which balances
// truncation against roundoff error for each scheme.
package numdiff

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/numgo/pkg/errors"
)

var (
	sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
	cubeEps = math.Pow(math.Nextafter(1, 2)-1, 1.0/3)
)

// Method selects the finite-difference scheme.
type Method int

const (
	// Forward uses the first order accuracy forward difference.
	Forward Method = iota
	// Central uses the second order accuracy central difference.
	Central
)

func stepSize(m Method, x float64) float64 {
	rel := sqrtEps
	if m == Central {
		rel = cubeEps
	}
	return rel * math.Max(1, math.Abs(x))
}

// Derivative estimates df/dx at x.
func Derivative(f func(float64) float64, x float64, m Method) float64 {
	h := stepSize(m, x)
	switch m {
	case Central:
		return (f(x+h) - f(x-h)) / (2 * h)
	default:
		return (f(x+h) - f(x)) / h
	}
}

// Gradient estimates the gradient of f at x, storing the result in dst.
// When dst is nil a new slice is allocated. dst, when supplied, must have the
// same length as x.
func Gradient(dst []float64, f func([]float64) float64, x []float64, m Method) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, errors.NewValueError("numdiff.Gradient", "x must not be empty")
	}
	if dst == nil {
		dst = make([]float64, n)
	}
	if len(dst) != n {
		return nil, errors.NewDimensionError("numdiff.Gradient", n, len(dst))
	}

	// Perturb one coordinate at a time, restoring it afterward so x is
	// unchanged on return.
	var f0 float64
	if m == Forward {
		f0 = f(x)
	}
	for i := 0; i < n; i++ {
		xi := x[i]
		h := stepSize(m, xi)
		switch m {
		case Central:
			x[i] = xi + h
			fp := f(x)
			x[i] = xi - h
			fm := f(x)
			dst[i] = (fp - fm) / (2 * h)
		default:
			x[i] = xi + h
			dst[i] = (f(x) - f0) / h
		}
		x[i] = xi
	}

	if err := errors.CheckNumericalStability("numdiff.Gradient", dst, 0); err != nil {
		return nil, err
	}
	return dst, nil
}

// Jacobian estimates the m×n Jacobian of a vector function f: R^n -> R^m at
// x, storing row i, column j = dy_i/dx_j into dst. f writes its result into
// the slice y of length m. When dst is nil a new matrix is allocated.
func Jacobian(dst *mat.Dense, f func(x, y []float64), n, mDim int, x []float64, method Method) (*mat.Dense, error) {
	if n <= 0 || mDim <= 0 {
		return nil, errors.NewValueError("numdiff.Jacobian", "dimensions must be positive")
	}
	if len(x) != n {
		return nil, errors.NewDimensionError("numdiff.Jacobian", n, len(x))
	}
	if dst == nil {
		dst = mat.NewDense(mDim, n, nil)
	} else {
		r, c := dst.Dims()
		if r != mDim || c != n {
			return nil, errors.NewDimensionError("numdiff.Jacobian", mDim*n, r*c)
		}
	}

	y0 := make([]float64, mDim)
	yp := make([]float64, mDim)
	ym := make([]float64, mDim)
	if method == Forward {
		f(x, y0)
	}

	for j := 0; j < n; j++ {
		xj := x[j]
		h := stepSize(method, xj)
		switch method {
		case Central:
			x[j] = xj + h
			f(x, yp)
			x[j] = xj - h
			f(x, ym)
			for i := 0; i < mDim; i++ {
				dst.Set(i, j, (yp[i]-ym[i])/(2*h))
			}
		default:
			x[j] = xj + h
			f(x, yp)
			for i := 0; i < mDim; i++ {
				dst.Set(i, j, (yp[i]-y0[i])/h)
			}
		}
		x[j] = xj
	}

	return dst, nil
}

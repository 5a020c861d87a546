// Package mle provides maximum-likelihood estimators for common
// distributions, plus a numeric estimator for scalar parameters of arbitrary
// likelihoods.
package mle

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/numgo/optimize"
	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// Normal estimates the mean and standard deviation of a normal distribution
// from xs by maximum likelihood. The returned sigma is the ML estimate, i.e.
// the biased standard deviation with divisor n.
func Normal(xs []float64) (mu, sigma float64, err error) {
	n := len(xs)
	if n == 0 {
		return 0, 0, errors.Wrap(errors.ErrEmptyData, "mle.Normal")
	}
	if err := errors.CheckNumericalStability("mle.Normal", xs, 0); err != nil {
		return 0, 0, err
	}

	mu = stat.Mean(xs, nil)
	var ss float64
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	sigma = math.Sqrt(ss / float64(n))
	return mu, sigma, nil
}

// Exponential estimates the rate parameter of an exponential distribution
// from xs by maximum likelihood. All observations must be non-negative.
func Exponential(xs []float64) (rate float64, err error) {
	if len(xs) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "mle.Exponential")
	}
	for _, x := range xs {
		if x < 0 {
			return 0, errors.NewValueError("mle.Exponential", "observations must be non-negative")
		}
	}
	mean := floats.Sum(xs) / float64(len(xs))
	if mean == 0 {
		return 0, errors.NewValueError("mle.Exponential", "all observations are zero")
	}
	return 1 / mean, nil
}

// Scalar numerically maximizes a scalar log-likelihood over the interval
// [lo, hi] by golden-section search and returns the maximizing parameter
// together with the attained log-likelihood. The log-likelihood is assumed
// unimodal on the interval.
func Scalar(logLik func(theta float64) float64, lo, hi float64, opts ...optimize.Option) (theta, ll float64, err error) {
	min, err := optimize.GoldenSection(func(t float64) float64 {
		return -logLik(t)
	}, lo, hi, opts...)
	if err != nil {
		return 0, 0, err
	}
	return min.X, -min.F, nil
}

// Package metrics provides goodness-of-fit measures for fitted models:
// classical least-squares metrics and their outlier-resistant counterparts.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/numgo/pkg/errors"
)

func checkPair(op string, yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred))
	}
	return nil
}

// MSE returns the mean squared error between observed and predicted values.
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("metrics.MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, y := range yTrue {
		d := y - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

// RMSE returns the root mean squared error.
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE returns the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("metrics.MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, y := range yTrue {
		sum += math.Abs(y - yPred[i])
	}
	return sum / float64(len(yTrue)), nil
}

// MedianAbsoluteError returns the median of the absolute errors. Unlike MAE
// it is unaffected by up to half the observations being arbitrarily bad,
// which makes it the natural companion metric for robustly estimated models.
func MedianAbsoluteError(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("metrics.MedianAbsoluteError", yTrue, yPred); err != nil {
		return 0, err
	}
	abs := make([]float64, len(yTrue))
	for i, y := range yTrue {
		abs[i] = math.Abs(y - yPred[i])
	}
	sort.Float64s(abs)
	return stat.Quantile(0.5, stat.Empirical, abs, nil), nil
}

// R2Score returns the coefficient of determination R². A constant yTrue has
// no variance to explain and yields a ValueError.
func R2Score(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("metrics.R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	mean := stat.Mean(yTrue, nil)
	var tss, rss float64
	for i, y := range yTrue {
		tss += (y - mean) * (y - mean)
		d := y - yPred[i]
		rss += d * d
	}
	if tss == 0 {
		return 0, errors.NewValueError("metrics.R2Score", "no variance in observed values")
	}
	return 1 - rss/tss, nil
}

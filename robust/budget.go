package robust

import (
	"math"
)

// requiredIterations recomputes the iteration budget needed to reach the
// target confidence p given the current best inlier ratio w and the minimal
// subset size s:
//
//	N = ceil( log(1−p) / log(1−wˢ) )
//
// A perfect consensus (w == 1) needs no further iterations and returns 1.
// When wˢ underflows so far that log(1−wˢ) is numerically zero, the budget
// saturates at maxIterations instead of dividing by zero. The result is
// always clipped to [1, maxIterations].
func requiredIterations(confidence float64, subsetSize, inlierCount, sampleCount, maxIterations int) int {
	if inlierCount >= sampleCount {
		return 1
	}
	if inlierCount <= 0 {
		return maxIterations
	}

	w := float64(inlierCount) / float64(sampleCount)
	ws := math.Pow(w, float64(subsetSize))
	denom := math.Log1p(-ws)
	if denom == 0 || math.IsNaN(denom) {
		return maxIterations
	}

	n := math.Ceil(math.Log1p(-confidence) / denom)
	if math.IsNaN(n) || n >= float64(maxIterations) {
		return maxIterations
	}
	if n < 1 {
		return 1
	}
	return int(n)
}

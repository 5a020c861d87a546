package robust

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// consensus is the verdict of a scorer for one candidate: a fitness score
// where higher is better across all variants, plus the inlier mask and count
// when the policy defines them during the loop. The median-based policies
// leave the mask nil; the engine derives it from a robust scale estimate for
// accepted hypotheses only.
type consensus struct {
	fitness    float64
	inliers    []bool
	numInliers int
	median     float64 // residual median, median-based policies only
}

// consensusScorer converts a candidate's residual vector into a consensus
// verdict according to the active variant policy.
type consensusScorer interface {
	score(residuals []float64, c *consensus)
}

// ransacScorer counts samples with residual strictly below the threshold.
type ransacScorer struct {
	threshold float64
	mask      []bool
}

func (s *ransacScorer) score(residuals []float64, c *consensus) {
	if s.mask == nil {
		s.mask = make([]bool, len(residuals))
	}
	count := 0
	for i, r := range residuals {
		in := r < s.threshold
		s.mask[i] = in
		if in {
			count++
		}
	}
	c.fitness = float64(count)
	c.inliers = s.mask
	c.numInliers = count
}

// msacScorer uses the RANSAC inlier rule but scores by the truncated
// quadratic gain sum(threshold² − r²) over inliers, so tighter fits among
// equal consensus sets win.
type msacScorer struct {
	threshold float64
	mask      []bool
}

func (s *msacScorer) score(residuals []float64, c *consensus) {
	if s.mask == nil {
		s.mask = make([]bool, len(residuals))
	}
	t2 := s.threshold * s.threshold
	count := 0
	gain := 0.0
	for i, r := range residuals {
		in := r < s.threshold
		s.mask[i] = in
		if in {
			count++
			gain += t2 - r*r
		}
	}
	c.fitness = gain
	c.inliers = s.mask
	c.numInliers = count
}

// lmedsScorer scores by the negative median of all residuals; a lower median
// yields a higher fitness. No inlier verdict is made per candidate.
type lmedsScorer struct {
	buf []float64
}

func (s *lmedsScorer) score(residuals []float64, c *consensus) {
	if cap(s.buf) < len(residuals) {
		s.buf = make([]float64, len(residuals))
	}
	s.buf = s.buf[:len(residuals)]
	copy(s.buf, residuals)
	sort.Float64s(s.buf)
	med := stat.Quantile(0.5, stat.Empirical, s.buf, nil)
	c.fitness = -med
	c.inliers = nil
	c.numInliers = 0
	c.median = med
}

// medianScaleFactor converts a residual median into a robust standard
// deviation estimate, assuming normally distributed inlier noise.
const medianScaleFactor = 1.4826

// medianInlierCutoff is the robust-sigma multiple below which a residual
// counts as an inlier for the median-based variants.
const medianInlierCutoff = 2.5

// robustInlierMask derives an inlier mask for a median-based hypothesis from
// the robust scale estimate sigma = 1.4826·median. Samples within 2.5 sigma
// are inliers. A zero median admits only exact fits.
func robustInlierMask(residuals []float64, median float64) ([]bool, int) {
	cutoff := medianInlierCutoff * medianScaleFactor * median
	mask := make([]bool, len(residuals))
	count := 0
	for i, r := range residuals {
		if r <= cutoff {
			mask[i] = true
			count++
		}
	}
	return mask, count
}

// nonRandomnessBound decides whether an inlier count within the progressive
// sampling pool is too large to have arisen by chance, enabling the PROSAC
// and PROMedS early stop.
//
// Chance inliers of a bad hypothesis are modelled as i.i.d. events with
// probability beta per sample. The bound is the normal approximation of the
// binomial tail: a hypothesis with subset size m over a pool of n samples is
// non-random once its pool inlier count reaches
// m + beta·(n−m) + z·sqrt((n−m)·beta·(1−beta)), with z the 99% normal
// quantile.
type nonRandomnessBound struct {
	beta float64
	z    float64
}

// defaultChanceInlierProb is the assumed probability that an outlier lands
// within the inlier band of an arbitrary bad hypothesis.
const defaultChanceInlierProb = 0.05

func newNonRandomnessBound() nonRandomnessBound {
	return nonRandomnessBound{
		beta: defaultChanceInlierProb,
		z:    distuv.UnitNormal.Quantile(0.99),
	}
}

// minInliers returns the smallest pool inlier count that satisfies the
// bound for the given pool and subset size.
func (b nonRandomnessBound) minInliers(poolSize, subsetSize int) int {
	free := float64(poolSize - subsetSize)
	if free <= 0 {
		return subsetSize
	}
	mu := b.beta * free
	sigma := math.Sqrt(free * b.beta * (1 - b.beta))
	return subsetSize + int(math.Ceil(mu+b.z*sigma))
}

package robust

import (
	"math"
	"math/rand"
)

// subsetSampler draws the next minimal subset of distinct sample indices
// into dst. len(dst) is the minimal subset size.
type subsetSampler interface {
	next(dst []int)
}

// uniformSampler draws subsets uniformly at random without replacement over
// all samples, via a partial Fisher-Yates shuffle of a reused index slice.
type uniformSampler struct {
	rng *rand.Rand
	idx []int
}

func newUniformSampler(rng *rand.Rand, n int) *uniformSampler {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &uniformSampler{rng: rng, idx: idx}
}

func (u *uniformSampler) next(dst []int) {
	n := len(u.idx)
	for j := range dst {
		k := j + u.rng.Intn(n-j)
		u.idx[j], u.idx[k] = u.idx[k], u.idx[j]
		dst[j] = u.idx[j]
	}
}

// progressiveSampler implements the PROSAC sampling schedule. Samples are
// ranked once by descending quality score; subsets are drawn from a growing
// pool of the top-ranked samples. While the pool is still growing, the
// newest-admitted sample is always part of the subset and the remaining
// members are drawn uniformly from the better-ranked pool entries, so early
// hypotheses concentrate on high-quality samples. Once the pool covers every
// sample the draw degenerates to uniform sampling.
//
// Pool growth follows the standard PROSAC schedule: with m the subset size
// and N the sample count, T(n) is the expected number of uniform draws that
// touch only the top n samples, grown via T(n+1) = T(n)·(n+1)/(n+1−m), and
// the pool advances from n to n+1 once ceil-accumulated draws T'(n) are
// spent. T(m) is anchored so that T(N) equals the iteration budget.
type progressiveSampler struct {
	rng   *rand.Rand
	order []int // sample indices by descending quality
	size  int
	pool  int // current active pool size n
	t     int // draws made so far
	tn    float64
	tnp   float64 // T'(n), the draw count at which the pool grows past n
	idx   []int   // scratch for partial shuffles within the pool
}

func newProgressiveSampler(rng *rand.Rand, order []int, size, totalIterations int) *progressiveSampler {
	n := len(order)
	s := &progressiveSampler{
		rng:   rng,
		order: order,
		size:  size,
		pool:  size,
		idx:   make([]int, n),
	}

	// T(m) = totalIterations * prod_{i=0..m-1} (m-i)/(N-i)
	tm := float64(totalIterations)
	for i := 0; i < size; i++ {
		tm *= float64(size-i) / float64(n-i)
	}
	s.tn = tm
	s.tnp = math.Max(1, math.Ceil(tm))
	return s
}

func (p *progressiveSampler) next(dst []int) {
	n := len(p.order)
	p.t++

	// Grow the active pool when the scheduled draw count for the current
	// pool size is spent.
	for p.pool < n && float64(p.t) > p.tnp {
		tNext := p.tn * float64(p.pool+1) / float64(p.pool+1-p.size)
		p.tnp += math.Ceil(tNext - p.tn)
		p.tn = tNext
		p.pool++
	}

	if p.pool >= n {
		// Fully grown: uniform over all samples.
		p.drawFromPool(dst, n)
		return
	}

	// Force the newest-admitted pool member, then fill up uniformly from
	// the better-ranked part of the pool.
	dst[len(dst)-1] = p.order[p.pool-1]
	p.drawFromPool(dst[:len(dst)-1], p.pool-1)
}

// drawFromPool draws len(dst) distinct indices uniformly from the top k
// ranked samples.
func (p *progressiveSampler) drawFromPool(dst []int, k int) {
	for i := 0; i < k; i++ {
		p.idx[i] = p.order[i]
	}
	for j := range dst {
		r := j + p.rng.Intn(k-j)
		p.idx[j], p.idx[r] = p.idx[r], p.idx[j]
		dst[j] = p.idx[j]
	}
}

// poolSize returns the current active pool size.
func (p *progressiveSampler) poolSize() int {
	return p.pool
}

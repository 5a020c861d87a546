package robust

import (
	"sort"

	"github.com/YuminosukeSato/numgo/pkg/errors"
)

// SampleSet describes the observations available to the engine: a sample
// count plus optional per-sample quality scores. Samples themselves are
// opaque to the engine; collaborators address them by index.
//
// A SampleSet is read-only for the duration of an estimation. The engine
// makes no defensive copy, so mutating the quality scores while Estimate is
// running is undefined behavior.
type SampleSet struct {
	n       int
	quality []float64
}

// NewSampleSet creates a sample set of n unscored samples.
func NewSampleSet(n int) (*SampleSet, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("samples", "sample count must be positive", n)
	}
	return &SampleSet{n: n}, nil
}

// NewScoredSampleSet creates a sample set of n samples with one quality
// score per sample. Higher scores mean higher prior confidence. The score
// slice length must equal n.
func NewScoredSampleSet(n int, quality []float64) (*SampleSet, error) {
	ss, err := NewSampleSet(n)
	if err != nil {
		return nil, err
	}
	if len(quality) != n {
		return nil, errors.NewDimensionError("robust.NewScoredSampleSet", n, len(quality))
	}
	ss.quality = quality
	return ss, nil
}

// Len returns the number of samples.
func (s *SampleSet) Len() int {
	return s.n
}

// HasQuality reports whether per-sample quality scores are present.
func (s *SampleSet) HasQuality() bool {
	return s.quality != nil
}

// Quality returns the quality score of sample i. It panics when no scores
// are present.
func (s *SampleSet) Quality(i int) float64 {
	return s.quality[i]
}

// ranksByQuality returns sample indices sorted by descending quality score.
// The sort is stable so equal-quality samples keep their input order.
func (s *SampleSet) ranksByQuality() []int {
	order := make([]int, s.n)
	for i := range order {
		order[i] = i
	}
	if s.quality == nil {
		return order
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.quality[order[a]] > s.quality[order[b]]
	})
	return order
}

package robust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	numerrors "github.com/YuminosukeSato/numgo/pkg/errors"
)

func TestNewSampleSet(t *testing.T) {
	ss, err := NewSampleSet(10)
	require.NoError(t, err)
	assert.Equal(t, 10, ss.Len())
	assert.False(t, ss.HasQuality())
}

func TestNewSampleSetRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := NewSampleSet(n)
		var verr *numerrors.ValidationError
		assert.ErrorAs(t, err, &verr, "n=%d", n)
	}
}

func TestNewScoredSampleSetLengthInvariant(t *testing.T) {
	_, err := NewScoredSampleSet(3, []float64{1, 2})
	var derr *numerrors.DimensionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 3, derr.Expected)
	assert.Equal(t, 2, derr.Got)
}

func TestRanksByQuality(t *testing.T) {
	ss, err := NewScoredSampleSet(4, []float64{0.2, 0.9, 0.5, 0.9})
	require.NoError(t, err)

	order := ss.ranksByQuality()

	// Descending by score, stable on ties.
	assert.Equal(t, []int{1, 3, 2, 0}, order)
}

func TestRanksByQualityWithoutScoresIsIdentity(t *testing.T) {
	ss, err := NewSampleSet(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ss.ranksByQuality())
}

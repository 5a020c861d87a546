package robust_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	numerrors "github.com/YuminosukeSato/numgo/pkg/errors"
	"github.com/YuminosukeSato/numgo/poly"
	"github.com/YuminosukeSato/numgo/polyfit"
	"github.com/YuminosukeSato/numgo/robust"
)

const (
	trueSlope     = 2.0
	trueIntercept = 1.0
)

// lineData builds n points with the first nInliers lying exactly on
// y = trueSlope*x + trueIntercept and the rest displaced well clear of it.
func lineData(n, nInliers int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 10.0 / float64(n)
		xs[i] = x
		ys[i] = trueSlope*x + trueIntercept
		if i >= nInliers {
			// Alternate-signed offsets of at least 6 keep every outlier
			// far outside any reasonable inlier threshold.
			off := 6.0 + float64(i%7)
			if i%2 == 0 {
				off = -off
			}
			ys[i] += off
		}
	}
	return xs, ys
}

// descendingQuality ranks earlier samples higher, matching lineData's
// inliers-first layout.
func descendingQuality(n int) []float64 {
	q := make([]float64, n)
	for i := range q {
		q[i] = float64(n - i)
	}
	return q
}

func newLineEngine(t *testing.T, variant robust.Variant, n, nInliers int, opts ...robust.Option) (*robust.Engine, *polyfit.Fitter) {
	t.Helper()
	xs, ys := lineData(n, nInliers)
	fitter, err := polyfit.New(1, xs, ys)
	require.NoError(t, err)

	var samples *robust.SampleSet
	if variant == robust.PROSAC || variant == robust.PROMedS {
		samples, err = robust.NewScoredSampleSet(n, descendingQuality(n))
	} else {
		samples, err = robust.NewSampleSet(n)
	}
	require.NoError(t, err)

	opts = append([]robust.Option{robust.WithSamples(samples)}, opts...)
	engine, err := robust.NewEngine(variant, fitter, fitter, opts...)
	require.NoError(t, err)
	return engine, fitter
}

func modelCoeffs(t *testing.T, m robust.Model) (intercept, slope float64) {
	t.Helper()
	p, ok := m.(poly.Polynomial)
	require.True(t, ok, "model should be a polynomial, got %T", m)
	return p.Coeff(0), p.Coeff(1)
}

func TestNewEngineValidation(t *testing.T) {
	xs, ys := lineData(10, 10)
	fitter, err := polyfit.New(1, xs, ys)
	require.NoError(t, err)
	samples, err := robust.NewSampleSet(10)
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() error
	}{
		{"nil fitter", func() error {
			_, err := robust.NewEngine(robust.RANSAC, nil, fitter)
			return err
		}},
		{"nil evaluator", func() error {
			_, err := robust.NewEngine(robust.RANSAC, fitter, nil)
			return err
		}},
		{"confidence out of range", func() error {
			_, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
				robust.WithSamples(samples), robust.WithThreshold(0.5), robust.WithConfidence(1.5))
			return err
		}},
		{"missing threshold", func() error {
			_, err := robust.NewEngine(robust.MSAC, fitter, fitter, robust.WithSamples(samples))
			return err
		}},
		{"non-positive max iterations", func() error {
			_, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
				robust.WithSamples(samples), robust.WithThreshold(0.5), robust.WithMaxIterations(0))
			return err
		}},
		{"progressive variant without quality scores", func() error {
			_, err := robust.NewEngine(robust.PROSAC, fitter, fitter,
				robust.WithSamples(samples), robust.WithThreshold(0.5))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var verr *numerrors.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestEngineMinSamples(t *testing.T) {
	xs, ys := lineData(10, 10)
	for degree, want := range map[int]int{1: 2, 2: 3, 3: 4} {
		fitter, err := polyfit.New(degree, xs, ys)
		require.NoError(t, err)
		engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter, robust.WithThreshold(0.5))
		require.NoError(t, err)
		assert.Equal(t, want, engine.MinSamples(), "degree %d", degree)
	}
}

func TestEstimateNotReady(t *testing.T) {
	xs, ys := lineData(10, 10)
	fitter, err := polyfit.New(1, xs, ys)
	require.NoError(t, err)

	t.Run("no samples", func(t *testing.T) {
		engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter, robust.WithThreshold(0.5))
		require.NoError(t, err)
		assert.False(t, engine.IsReady())

		_, err = engine.Estimate()
		var nrerr *numerrors.NotReadyError
		assert.ErrorAs(t, err, &nrerr)
	})

	t.Run("fewer samples than minimal subset", func(t *testing.T) {
		samples, err := robust.NewSampleSet(1)
		require.NoError(t, err)
		engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
			robust.WithSamples(samples), robust.WithThreshold(0.5))
		require.NoError(t, err)
		assert.False(t, engine.IsReady())

		_, err = engine.Estimate()
		var nrerr *numerrors.NotReadyError
		assert.ErrorAs(t, err, &nrerr)
	})

	t.Run("progressive variant without quality after SetSamples", func(t *testing.T) {
		engine, err := robust.NewEngine(robust.PROSAC, fitter, fitter, robust.WithThreshold(0.5))
		require.NoError(t, err)
		samples, err := robust.NewSampleSet(10)
		require.NoError(t, err)
		require.NoError(t, engine.SetSamples(samples))
		assert.False(t, engine.IsReady())

		_, err = engine.Estimate()
		var nrerr *numerrors.NotReadyError
		assert.ErrorAs(t, err, &nrerr)
	})
}

func TestEstimateCleanData(t *testing.T) {
	for _, variant := range []robust.Variant{robust.RANSAC, robust.MSAC, robust.LMedS} {
		t.Run(variant.String(), func(t *testing.T) {
			engine, _ := newLineEngine(t, variant, 100, 100, robust.WithThreshold(1e-6))

			result, err := engine.Estimate()
			require.NoError(t, err)

			// Perfect consensus collapses the budget to a single iteration.
			assert.Equal(t, 1, result.Iterations)
			assert.Equal(t, 100, result.NumInliers)

			intercept, slope := modelCoeffs(t, result.Model)
			assert.InDelta(t, trueIntercept, intercept, 1e-9)
			assert.InDelta(t, trueSlope, slope, 1e-9)
		})
	}
}

func TestEstimateWithOutliers(t *testing.T) {
	for _, variant := range []robust.Variant{robust.RANSAC, robust.MSAC} {
		t.Run(variant.String(), func(t *testing.T) {
			const runs = 100
			recovered := 0
			for seed := 0; seed < runs; seed++ {
				engine, _ := newLineEngine(t, variant, 100, 60,
					robust.WithThreshold(0.5),
					robust.WithRandomSeed(int64(seed)),
				)
				result, err := engine.Estimate()
				if err != nil {
					continue
				}
				intercept, slope := modelCoeffs(t, result.Model)
				if math.Abs(intercept-trueIntercept) < 0.1 && math.Abs(slope-trueSlope) < 0.1 {
					recovered++
				}
			}
			assert.GreaterOrEqual(t, recovered, 95,
				"%s should recover the true line in at least 95%% of runs", variant)
		})
	}
}

func TestEstimateLMedSWithOutliers(t *testing.T) {
	engine, _ := newLineEngine(t, robust.LMedS, 100, 70)

	result, err := engine.Estimate()
	require.NoError(t, err)

	intercept, slope := modelCoeffs(t, result.Model)
	assert.InDelta(t, trueIntercept, intercept, 0.1)
	assert.InDelta(t, trueSlope, slope, 0.1)
	assert.GreaterOrEqual(t, result.NumInliers, 70)
}

func TestEstimateIdempotentForFixedSeed(t *testing.T) {
	engine, _ := newLineEngine(t, robust.RANSAC, 100, 60,
		robust.WithThreshold(0.5),
		robust.WithRandomSeed(99),
	)

	first, err := engine.Estimate()
	require.NoError(t, err)
	second, err := engine.Estimate()
	require.NoError(t, err)

	i1, s1 := modelCoeffs(t, first.Model)
	i2, s2 := modelCoeffs(t, second.Model)
	assert.Equal(t, i1, i2, "intercepts must be bit-identical")
	assert.Equal(t, s1, s2, "slopes must be bit-identical")
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.NumInliers, second.NumInliers)
}

func TestPROSACConvergesFasterThanRANSAC(t *testing.T) {
	// Half the samples are outliers, and quality scores rank the true
	// inliers first. Progressive sampling must exploit that ordering.
	ransac, _ := newLineEngine(t, robust.RANSAC, 100, 50,
		robust.WithThreshold(0.5))
	prosac, _ := newLineEngine(t, robust.PROSAC, 100, 50,
		robust.WithThreshold(0.5))

	ransacResult, err := ransac.Estimate()
	require.NoError(t, err)
	prosacResult, err := prosac.Estimate()
	require.NoError(t, err)

	i, s := modelCoeffs(t, prosacResult.Model)
	assert.InDelta(t, trueIntercept, i, 0.1)
	assert.InDelta(t, trueSlope, s, 0.1)
	assert.Less(t, prosacResult.Iterations, ransacResult.Iterations)
}

func TestPROMedSRecoversLine(t *testing.T) {
	engine, _ := newLineEngine(t, robust.PROMedS, 100, 70)

	result, err := engine.Estimate()
	require.NoError(t, err)

	intercept, slope := modelCoeffs(t, result.Model)
	assert.InDelta(t, trueIntercept, intercept, 0.1)
	assert.InDelta(t, trueSlope, slope, 0.1)
}

func TestEstimateRefinementRoundTrip(t *testing.T) {
	plain, _ := newLineEngine(t, robust.RANSAC, 100, 100, robust.WithThreshold(1e-6))
	refined, _ := newLineEngine(t, robust.RANSAC, 100, 100,
		robust.WithThreshold(1e-6),
		robust.WithRefinement(true),
	)

	plainResult, err := plain.Estimate()
	require.NoError(t, err)
	refinedResult, err := refined.Estimate()
	require.NoError(t, err)

	assert.True(t, refinedResult.Refined)
	assert.False(t, plainResult.Refined)

	// On a noiseless inlier set the least-squares refit reproduces the
	// winning candidate.
	pi, ps := modelCoeffs(t, plainResult.Model)
	ri, rs := modelCoeffs(t, refinedResult.Model)
	assert.InDelta(t, pi, ri, 1e-9)
	assert.InDelta(t, ps, rs, 1e-9)
}

// stubFitter produces no candidates and serves the failure-path tests.
type stubFitter struct {
	minSamples int
	fitErr     error
	calls      int
}

func (s *stubFitter) MinSamples() int { return s.minSamples }

func (s *stubFitter) Fit(indices []int) ([]robust.Model, error) {
	s.calls++
	return nil, s.fitErr
}

func (s *stubFitter) Residual(m robust.Model, sample int) (float64, error) {
	return 0, nil
}

func TestEstimateFailsWithoutConsensus(t *testing.T) {
	fitter := &stubFitter{minSamples: 2}
	samples, err := robust.NewSampleSet(20)
	require.NoError(t, err)

	engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
		robust.WithSamples(samples),
		robust.WithThreshold(0.5),
		robust.WithMaxIterations(50),
	)
	require.NoError(t, err)

	_, err = engine.Estimate()
	var eerr *numerrors.EstimationError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, 50, eerr.Iterations)
	assert.Equal(t, 50, fitter.calls, "every degenerate subset still spends budget")
}

func TestCollaboratorErrorPropagatesUnchanged(t *testing.T) {
	sentinel := numerrors.New("fitter exploded")
	fitter := &stubFitter{minSamples: 2, fitErr: sentinel}
	samples, err := robust.NewSampleSet(20)
	require.NoError(t, err)

	engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
		robust.WithSamples(samples),
		robust.WithThreshold(0.5),
	)
	require.NoError(t, err)

	_, err = engine.Estimate()
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, fitter.calls)
}

func TestSettersRejectBadValues(t *testing.T) {
	engine, _ := newLineEngine(t, robust.RANSAC, 10, 10, robust.WithThreshold(0.5))

	var verr *numerrors.ValidationError
	assert.ErrorAs(t, engine.SetThreshold(-1), &verr)
	assert.ErrorAs(t, engine.SetConfidence(2), &verr)
	assert.ErrorAs(t, engine.SetMaxIterations(0), &verr)
	assert.ErrorAs(t, engine.SetSamples(nil), &verr)

	assert.NoError(t, engine.SetThreshold(0.25))
	assert.NoError(t, engine.SetConfidence(0.95))
	assert.NoError(t, engine.SetMaxIterations(100))
}

func TestSetQualityScoresLengthInvariant(t *testing.T) {
	engine, _ := newLineEngine(t, robust.RANSAC, 10, 10, robust.WithThreshold(0.5))

	var derr *numerrors.DimensionError
	assert.ErrorAs(t, engine.SetQualityScores(make([]float64, 4)), &derr)
	assert.NoError(t, engine.SetQualityScores(descendingQuality(10)))
}

// geometricStub records the forwarded geometric-distance flag.
type geometricStub struct {
	stubFitter
	geometric bool
	set       bool
}

func (g *geometricStub) UseGeometricDistance(use bool) {
	g.geometric = use
	g.set = true
}

func TestGeometricDistanceFlagForwarded(t *testing.T) {
	stub := &geometricStub{stubFitter: stubFitter{minSamples: 2}}
	_, err := robust.NewEngine(robust.RANSAC, stub, stub,
		robust.WithThreshold(0.5),
		robust.WithGeometricDistance(true),
	)
	require.NoError(t, err)
	assert.True(t, stub.set, "flag must be forwarded to the evaluator")
	assert.True(t, stub.geometric)
}

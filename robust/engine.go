package robust

import (
	"fmt"
	"math/rand"

	"github.com/YuminosukeSato/numgo/pkg/errors"
	"github.com/YuminosukeSato/numgo/pkg/log"
)

// Result is the outcome of a successful estimation: the winning model, its
// consensus, and how many iterations the loop ran. When RefineResult is
// configured the model is the non-robust refit over all inliers and the
// consensus fields describe that refined model.
type Result struct {
	Model      Model
	Inliers    []bool
	NumInliers int
	Fitness    float64
	Iterations int
	Refined    bool
}

// hypothesis is the best candidate seen so far. It is internal to one
// Estimate call and never exposed until the loop terminates.
type hypothesis struct {
	model      Model
	fitness    float64
	inliers    []bool
	numInliers int
	iteration  int
	residuals  []float64
	median     float64
}

// Engine is a robust model-estimation engine. One engine type serves all
// five variants; the Variant given at construction selects the sampling and
// scoring policy.
//
// An Engine is not safe for concurrent use. Estimate runs synchronously on
// the calling goroutine and rejects re-entrant mutation through the locked
// flag.
type Engine struct {
	cfg      Config
	fitter   ModelFitter
	eval     ResidualEvaluator
	listener ProgressListener
	samples  *SampleSet

	seed         int64
	geometric    bool
	geometricSet bool
	locked       bool

	logger log.Logger
}

// NewEngine creates an engine for the given variant and collaborators.
// Configuration errors, including a missing positive threshold for the
// threshold-based variants and missing quality scores for the progressive
// ones, are reported here, before any sampling occurs.
func NewEngine(variant Variant, fitter ModelFitter, eval ResidualEvaluator, opts ...Option) (*Engine, error) {
	if fitter == nil {
		return nil, errors.NewValidationError("fitter", "must not be nil", nil)
	}
	if eval == nil {
		return nil, errors.NewValidationError("evaluator", "must not be nil", nil)
	}

	e := &Engine{
		cfg:    defaultConfig(variant),
		fitter: fitter,
		eval:   eval,
		seed:   DefaultRandomSeed,
		logger: log.GetLoggerWithName("robust.engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	if fitter.MinSamples() < 1 {
		return nil, errors.NewValidationError("fitter", "minimal subset size must be at least 1", fitter.MinSamples())
	}
	if err := e.cfg.validate(); err != nil {
		return nil, err
	}
	if e.samples != nil && e.cfg.Variant.progressive() && !e.samples.HasQuality() {
		return nil, errors.NewValidationError("samples", fmt.Sprintf("%s requires quality scores", e.cfg.Variant), nil)
	}

	if e.geometricSet {
		if gd, ok := eval.(GeometricDistancer); ok {
			gd.UseGeometricDistance(e.geometric)
		}
	}
	return e, nil
}

// Variant returns the configured estimation variant.
func (e *Engine) Variant() Variant {
	return e.cfg.Variant
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// MinSamples returns the minimal subset size of the fitter.
func (e *Engine) MinSamples() int {
	return e.fitter.MinSamples()
}

// NumSamples returns the sample count, or 0 when no samples are set.
func (e *Engine) NumSamples() int {
	if e.samples == nil {
		return 0
	}
	return e.samples.Len()
}

// IsLocked reports whether an estimation is currently in flight.
func (e *Engine) IsLocked() bool {
	return e.locked
}

// IsReady reports whether Estimate can run: samples are set, there are at
// least MinSamples of them, and the progressive variants have quality
// scores.
func (e *Engine) IsReady() bool {
	if e.samples == nil || e.samples.Len() < e.fitter.MinSamples() {
		return false
	}
	if e.cfg.Variant.progressive() && !e.samples.HasQuality() {
		return false
	}
	return true
}

// SetSamples replaces the sample set. Fails with a LockedError while an
// estimation is running.
func (e *Engine) SetSamples(s *SampleSet) error {
	if e.locked {
		return errors.NewLockedError("Engine.SetSamples")
	}
	if s == nil {
		return errors.NewValidationError("samples", "must not be nil", nil)
	}
	e.samples = s
	return nil
}

// SetQualityScores attaches quality scores to the current sample set. The
// score count must equal the sample count.
func (e *Engine) SetQualityScores(scores []float64) error {
	if e.locked {
		return errors.NewLockedError("Engine.SetQualityScores")
	}
	if e.samples == nil {
		return errors.NewNotReadyError("Engine.SetQualityScores", "sample data")
	}
	ss, err := NewScoredSampleSet(e.samples.Len(), scores)
	if err != nil {
		return err
	}
	e.samples = ss
	return nil
}

// SetThreshold replaces the inlier residual threshold.
func (e *Engine) SetThreshold(t float64) error {
	if e.locked {
		return errors.NewLockedError("Engine.SetThreshold")
	}
	cfg := e.cfg
	cfg.Threshold = t
	if err := cfg.validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// SetConfidence replaces the target confidence.
func (e *Engine) SetConfidence(p float64) error {
	if e.locked {
		return errors.NewLockedError("Engine.SetConfidence")
	}
	cfg := e.cfg
	cfg.Confidence = p
	if err := cfg.validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// SetMaxIterations replaces the iteration cap.
func (e *Engine) SetMaxIterations(n int) error {
	if e.locked {
		return errors.NewLockedError("Engine.SetMaxIterations")
	}
	cfg := e.cfg
	cfg.MaxIterations = n
	if err := cfg.validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// Estimate runs the robust estimation loop and returns the winning model.
//
// The loop draws a subset, fits candidates, scores each against all samples
// and keeps the best hypothesis; after every improvement the remaining
// iteration budget shrinks according to the confidence bound. It terminates
// when the budget is spent or, for the progressive variants, when the best
// hypothesis satisfies the non-randomness bound. On equal fitness the
// earlier candidate is kept, so a fixed seed yields bit-identical results.
//
// Failure modes are distinguishable by error type: NotReadyError before any
// iteration when inputs are missing, LockedError on re-entrant calls,
// EstimationError when the budget is exhausted without any valid hypothesis,
// and collaborator errors, which abort the loop and propagate unchanged.
func (e *Engine) Estimate() (*Result, error) {
	const op = "Engine.Estimate"
	if e.locked {
		return nil, errors.NewLockedError(op)
	}
	if e.samples == nil {
		return nil, errors.NewNotReadyError(op, "sample data")
	}
	size := e.fitter.MinSamples()
	n := e.samples.Len()
	if n < size {
		return nil, errors.NewNotReadyError(op, fmt.Sprintf("at least %d samples", size))
	}
	if e.cfg.Variant.progressive() && !e.samples.HasQuality() {
		return nil, errors.NewNotReadyError(op, "quality scores")
	}

	e.locked = true
	defer func() { e.locked = false }()

	rng := rand.New(rand.NewSource(e.seed))
	var sampler subsetSampler
	var prog *progressiveSampler
	if e.cfg.Variant.progressive() {
		prog = newProgressiveSampler(rng, e.samples.ranksByQuality(), size, e.cfg.MaxIterations)
		sampler = prog
	} else {
		sampler = newUniformSampler(rng, n)
	}
	scorer := e.newScorer()
	bound := newNonRandomnessBound()

	e.logger.Debug("estimation started",
		log.OperationKey, log.OperationEstimate,
		log.AlgorithmKey, e.cfg.Variant.String(),
		log.SamplesKey, n,
		log.SubsetSizeKey, size,
		log.ConfidenceKey, e.cfg.Confidence,
		log.RandomSeedKey, e.seed,
	)
	if e.listener != nil {
		e.listener.OnEstimateStart(e)
		defer e.listener.OnEstimateEnd(e)
	}

	subset := make([]int, size)
	residuals := make([]float64, n)
	budget := e.cfg.MaxIterations
	lastProgress := 0.0
	completed := 0
	var best *hypothesis

	for iter := 0; iter < budget; iter++ {
		completed = iter + 1
		sampler.next(subset)

		// A degenerate subset yields no candidates; it is skipped but
		// still spends one iteration of the budget.
		models, err := e.fitter.Fit(subset)
		if err != nil {
			return nil, err
		}

		for _, m := range models {
			if err := e.residualsFor(m, residuals); err != nil {
				return nil, err
			}
			var c consensus
			scorer.score(residuals, &c)
			if best != nil && c.fitness <= best.fitness {
				continue
			}

			best = e.accept(m, &c, residuals, iter)
			if nb := requiredIterations(e.cfg.Confidence, size, best.numInliers, n, e.cfg.MaxIterations); nb < budget {
				budget = nb
			}
			if e.listener != nil {
				e.listener.OnEstimateNextIteration(e, iter)
			}
			e.logger.Debug("best hypothesis improved",
				log.IterationKey, iter,
				log.InliersKey, best.numInliers,
				log.FitnessKey, best.fitness,
				log.BudgetKey, budget,
			)
		}

		progress := float64(completed) / float64(budget)
		if progress > 1 {
			progress = 1
		}
		if e.listener != nil && progress-lastProgress >= e.cfg.ProgressDelta {
			lastProgress = progress
			e.listener.OnEstimateProgressChange(e, progress)
		}

		if prog != nil && best != nil && e.nonRandom(best, prog, bound) {
			e.logger.Debug("non-randomness bound satisfied",
				log.IterationKey, iter,
				log.InliersKey, best.numInliers,
			)
			break
		}
	}

	if best == nil {
		return nil, errors.NewEstimationError(op, completed, "no candidate model reached consensus")
	}

	result := &Result{
		Model:      best.model,
		Inliers:    best.inliers,
		NumInliers: best.numInliers,
		Fitness:    best.fitness,
		Iterations: completed,
	}
	if e.cfg.RefineResult {
		if err := e.refine(result, scorer, residuals); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("estimation finished",
		log.IterationKey, completed,
		log.InliersKey, result.NumInliers,
		log.FitnessKey, result.Fitness,
	)
	return result, nil
}

// accept captures a new best hypothesis. The residual vector and inlier mask
// are copied because the scorer reuses its buffers between candidates. For
// the median-based variants the inlier mask is derived here, from the robust
// scale estimate of the accepted candidate.
func (e *Engine) accept(m Model, c *consensus, residuals []float64, iter int) *hypothesis {
	h := &hypothesis{
		model:     m,
		fitness:   c.fitness,
		iteration: iter,
		median:    c.median,
		residuals: append([]float64(nil), residuals...),
	}
	if e.cfg.Variant.medianBased() {
		h.inliers, h.numInliers = robustInlierMask(h.residuals, c.median)
	} else {
		h.inliers = append([]bool(nil), c.inliers...)
		h.numInliers = c.numInliers
	}
	return h
}

// nonRandom reports whether the best hypothesis's inlier count within the
// current sampling pool satisfies the non-randomness bound.
func (e *Engine) nonRandom(best *hypothesis, prog *progressiveSampler, bound nonRandomnessBound) bool {
	pool := prog.poolSize()
	if pool <= e.fitter.MinSamples() {
		// Any hypothesis trivially explains its own minimal subset; the
		// bound is meaningless until the pool has free points.
		return false
	}
	count := 0
	for _, s := range prog.order[:pool] {
		if best.inliers[s] {
			count++
		}
	}
	return count >= bound.minInliers(pool, e.fitter.MinSamples())
}

// refine performs the optional final refit: one plain ModelFitter call over
// every inlier of the winning hypothesis, rescored so the Result describes
// the returned model. When the refit yields no model the unrefined winner is
// kept.
func (e *Engine) refine(res *Result, scorer consensusScorer, residuals []float64) error {
	size := e.fitter.MinSamples()
	idx := make([]int, 0, res.NumInliers)
	for i, in := range res.Inliers {
		if in {
			idx = append(idx, i)
		}
	}
	if len(idx) < size {
		return nil
	}

	models, err := e.fitter.Fit(idx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return nil
	}

	m := models[0]
	if err := e.residualsFor(m, residuals); err != nil {
		return err
	}
	var c consensus
	scorer.score(residuals, &c)

	res.Model = m
	res.Fitness = c.fitness
	if e.cfg.Variant.medianBased() {
		res.Inliers, res.NumInliers = robustInlierMask(residuals, c.median)
	} else {
		res.Inliers = append([]bool(nil), c.inliers...)
		res.NumInliers = c.numInliers
	}
	res.Refined = true
	return nil
}

func (e *Engine) newScorer() consensusScorer {
	switch e.cfg.Variant {
	case MSAC:
		return &msacScorer{threshold: e.cfg.Threshold}
	case LMedS, PROMedS:
		return &lmedsScorer{}
	default:
		return &ransacScorer{threshold: e.cfg.Threshold}
	}
}

func (e *Engine) residualsFor(m Model, dst []float64) error {
	for i := range dst {
		r, err := e.eval.Residual(m, i)
		if err != nil {
			return err
		}
		dst[i] = r
	}
	return nil
}

// Package robust implements a robust model-estimation engine of the RANSAC
// family: RANSAC, LMedS, MSAC, PROSAC and PROMedS.
//
// The engine repeatedly draws minimal subsets of sample indices, asks a
// caller-supplied ModelFitter for candidate models, scores each candidate
// against all samples through a caller-supplied ResidualEvaluator, and keeps
// the hypothesis with the best consensus. After every improvement the
// remaining iteration budget is re-estimated from the current inlier ratio
// and the target confidence, so clean data terminates in a handful of
// iterations while contaminated data runs until the confidence bound or the
// configured maximum is reached.
//
// One engine type serves all five variants; a Variant value selects the
// sampling policy (uniform or quality-ordered progressive) and the consensus
// scoring policy (inlier counting, truncated quadratic gain, or negative
// median). The engine never fits models or computes residual geometry
// itself.
//
// Estimation is single-threaded and synchronous: Estimate runs its full loop
// on the calling goroutine. A locked flag rejects mutating calls while an
// estimation is in flight; listener callbacks run on the engine's goroutine
// and must not call back into mutating methods.
//
//	fitter, err := polyfit.New(1, xs, ys)
//	if err != nil {
//	    // invalid data
//	}
//	engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
//	    robust.WithSamples(samples),
//	    robust.WithThreshold(0.1),
//	)
//	if err != nil {
//	    // configuration error
//	}
//	result, err := engine.Estimate()
package robust

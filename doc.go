// Package numgo provides numerical methods for Go: robust model estimation,
// polynomial least squares, scalar optimization, finite-difference
// derivatives and maximum-likelihood estimators.
//
// The centerpiece is the robust package, an outlier-tolerant estimation
// engine in the RANSAC family. It separates the estimation loop from the
// model being estimated, so the same engine fits lines, polynomials or any
// user-defined model through two small interfaces.
//
// # Installation
//
// Install NumGo using go get:
//
//	go get github.com/YuminosukeSato/numgo
//
// # Quick Start
//
// Fitting a line through data with 40% gross outliers:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/numgo/poly"
//	    "github.com/YuminosukeSato/numgo/polyfit"
//	    "github.com/YuminosukeSato/numgo/robust"
//	)
//
//	func main() {
//	    fitter, err := polyfit.New(1, xs, ys)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    samples, err := robust.NewSampleSet(len(xs))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    engine, err := robust.NewEngine(robust.RANSAC, fitter, fitter,
//	        robust.WithSamples(samples),
//	        robust.WithThreshold(0.1),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    result, err := engine.Estimate()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    line := result.Model.(poly.Polynomial)
//	    fmt.Printf("y = %.3f*x + %.3f (%d inliers)\n",
//	        line.Coeff(1), line.Coeff(0), result.NumInliers)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - robust: robust estimation engine (RANSAC, LMedS, MSAC, PROSAC, PROMedS)
//   - polyfit: polynomial least-squares fitting, pluggable into robust
//   - poly: polynomial and Padé rational evaluators
//   - optimize: scalar minimization and root finding
//   - numdiff: finite-difference derivatives, gradients and Jacobians
//   - mle: maximum-likelihood estimators
//   - metrics: goodness-of-fit measures (MSE, RMSE, MAE, R²)
//   - pkg/errors: structured error types with stack traces
//   - pkg/log: structured logging facade
//
// # License
//
// NumGo is released under the MIT License.
package numgo

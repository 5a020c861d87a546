// Standard attribute keys for numerical operations.
//
// Using these keys keeps log output consistent across the solver and
// estimator packages and enables structured filtering. Keys follow a
// hierarchical naming convention ("estimation.iteration", "data.samples").

package log

// Operation context.
const (
	// ComponentKey identifies which package or component emits the record.
	// Examples: "robust.engine", "optimize.golden", "mle"
	ComponentKey = "component"

	// OperationKey specifies the numerical operation being performed.
	// Standard values: "estimate", "minimize", "root", "fit", "refine"
	OperationKey = "op"

	// AlgorithmKey names the concrete algorithm or variant in use.
	// Examples: "RANSAC", "PROSAC", "golden_section", "ridder"
	AlgorithmKey = "algorithm"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples in the dataset.
	SamplesKey = "data.samples"

	// SubsetSizeKey indicates the minimal subset size drawn per hypothesis.
	SubsetSizeKey = "data.subset_size"
)

// Estimation progress.
const (
	// IterationKey records the current iteration of an iterative process.
	IterationKey = "estimation.iteration"

	// BudgetKey records the remaining iteration budget.
	BudgetKey = "estimation.budget"

	// InliersKey records the inlier count of the best hypothesis.
	InliersKey = "estimation.inliers"

	// FitnessKey records the fitness score of the best hypothesis.
	FitnessKey = "estimation.fitness"

	// ProgressKey records the running progress fraction in [0,1].
	ProgressKey = "estimation.progress"

	// ConfidenceKey records the configured target confidence.
	ConfidenceKey = "config.confidence"

	// ThresholdKey records the configured inlier threshold.
	ThresholdKey = "config.threshold"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Solver context.
const (
	// ToleranceKey records the convergence tolerance of a solver.
	ToleranceKey = "solver.tolerance"

	// ResidualKey records the final residual or function value.
	ResidualKey = "solver.residual"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Standard operation value constants.
const (
	OperationEstimate = "estimate"
	OperationMinimize = "minimize"
	OperationRoot     = "root"
	OperationFit      = "fit"
	OperationRefine   = "refine"
)

package robust

// Variant selects the sampling and consensus-scoring policy of the engine.
type Variant int

const (
	// RANSAC draws uniform subsets and scores candidates by raw inlier
	// count under a fixed residual threshold.
	RANSAC Variant = iota
	// LMedS draws uniform subsets and scores candidates by the negative
	// median of all residuals; no threshold is required.
	LMedS
	// MSAC draws uniform subsets and scores candidates by the truncated
	// quadratic gain sum(threshold² − r²) over inliers.
	MSAC
	// PROSAC draws quality-ordered progressive subsets with RANSAC scoring
	// and a non-randomness early-termination bound.
	PROSAC
	// PROMedS draws quality-ordered progressive subsets with LMedS scoring
	// and the same non-randomness bound.
	PROMedS
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case RANSAC:
		return "RANSAC"
	case LMedS:
		return "LMedS"
	case MSAC:
		return "MSAC"
	case PROSAC:
		return "PROSAC"
	case PROMedS:
		return "PROMedS"
	default:
		return "Unknown"
	}
}

// valid reports whether v names one of the five variants.
func (v Variant) valid() bool {
	return v >= RANSAC && v <= PROMedS
}

// progressive reports whether the variant uses quality-ordered progressive
// sampling and therefore requires quality scores.
func (v Variant) progressive() bool {
	return v == PROSAC || v == PROMedS
}

// medianBased reports whether the variant scores by the negative residual
// median instead of a fixed threshold.
func (v Variant) medianBased() bool {
	return v == LMedS || v == PROMedS
}

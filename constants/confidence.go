package constants

// Classifier waterfall thresholds. These are calibration parameters tuned
// empirically; keep them in sync with the stage early-exit logic.
const (
	ConfidenceHigh   = 0.85
	ConfidenceMedium = 0.60
	ConfidenceLow    = 0.40
)

// IsConfidenceAcceptable reports whether a classification is trustworthy
// enough to act on without review.
func IsConfidenceAcceptable(confidence float64) bool {
	return confidence >= ConfidenceMedium
}

package constants

// Action is the downstream disposition suggested for an extracted document.
type Action string

// Stable values (store these exact strings in DB).
const (
	ActionAccept      Action = "accept"
	ActionReview      Action = "review"
	ActionManualEntry Action = "manual_entry"
)

// RecommendedAction maps a classifier confidence onto the three-tier
// disposition used across the app: auto-accept, needs review, manual entry.
func RecommendedAction(confidence float64) Action {
	switch {
	case confidence >= ConfidenceHigh:
		return ActionAccept
	case confidence >= ConfidenceMedium:
		return ActionReview
	default:
		return ActionManualEntry
	}
}

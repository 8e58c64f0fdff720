package extract

import (
	"fmt"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
)

// highValueThreshold flags implausibly large totals for human review.
const highValueThreshold = 10_000_000

// Validate inspects an extracted contract for missing mandatory fields and
// suspicious values, and suggests a downstream action. Deficiencies are
// data, not errors: the caller decides what to do with the verdict.
func Validate(c *entity.ExtractedContract) entity.ContractValidationResult {
	missing := []string{}
	warnings := []string{}

	if c.ContractType == nil {
		missing = append(missing, "contract_type")
	}
	if c.TotalValue == nil {
		missing = append(missing, "total_value")
	}
	if len(c.Parties) == 0 {
		missing = append(missing, "parties")
	}
	if len(c.KeyDates) == 0 {
		warnings = append(warnings, "no key dates extracted")
	}
	if c.TotalValue != nil && c.TotalValue.Value > highValueThreshold {
		warnings = append(warnings, fmt.Sprintf("total value %.2f exceeds %d; verify before accepting", c.TotalValue.Value, highValueThreshold))
	}

	var action constants.Action
	switch {
	case len(missing) > 2:
		action = constants.ActionManualEntry
	case len(missing) > 0 || len(warnings) > 0:
		action = constants.ActionReview
	default:
		action = constants.ActionAccept
	}

	// is_valid can coexist with a review action; it is a graded signal,
	// not a contradiction.
	return entity.ContractValidationResult{
		IsValid:         len(missing) <= 2,
		MissingFields:   missing,
		Warnings:        warnings,
		SuggestedAction: action,
	}
}

// Package extract turns raw document text into a confidence-scored
// ExtractedContract. Every extractor is a pure function over the input text
// and the shared pattern tables; missing data is omitted, never an error.
package extract

import (
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// Per-field base confidences. Empirically tuned calibration constants.
const (
	confContractType  = 0.85
	confNumber        = 0.80
	confLabelledValue = 0.80
	confLargestValue  = 0.60
	confParty         = 0.75
	confKeyDate       = 0.75
	confClause        = 0.75
	confAsset         = 0.70

	abnBonus          = 0.10
	acnBonus          = 0.05
	effectiveLifeBump = 0.10
)

// ContractType returns the first matching document-type phrase, or nil when
// no pattern matches (absence, not zero confidence).
func ContractType(text string) *entity.Field[string] {
	for _, tp := range patterns.ContractTypes {
		if tp.Re.MatchString(text) {
			return entity.NewField(tp.Label, confContractType, "type_pattern")
		}
	}
	return nil
}

// ContractNumber tries the labelled reference patterns in order, then the
// bare structured-code shape. First match wins.
func ContractNumber(text string) *entity.Field[string] {
	for _, re := range patterns.ContractNumberLabels {
		if m := re.FindStringSubmatch(text); m != nil {
			num := strings.ToUpper(strings.TrimSpace(m[1]))
			if num != "" && len(num) < 50 {
				return entity.NewField(num, confNumber, "number_label")
			}
		}
	}
	if m := patterns.BareReference.FindStringSubmatch(text); m != nil {
		return entity.NewField(m[1], confNumber, "bare_reference")
	}
	return nil
}

// TotalValue tries labelled total-value patterns first; failing that it
// falls back to the largest currency-like amount anywhere in the document.
// Nil only when no currency token exists at all.
func TotalValue(text string) *entity.Field[float64] {
	for _, re := range patterns.TotalValueLabels {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := patterns.ParseAmount(m[1]); ok {
				return entity.NewField(v, confLabelledValue, "value_label")
			}
		}
	}

	var largest float64
	found := false
	for _, m := range patterns.CurrencyAmount.FindAllStringSubmatch(text, -1) {
		if v, ok := patterns.ParseAmount(m[1]); ok {
			if !found || v > largest {
				largest = v
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	return entity.NewField(largest, confLargestValue, "Largest amount found")
}

// documentDate pulls the optional header-level dates: the first "dated"
// style date as the contract date, and start/end derived from key dates by
// the parser.
func documentDate(text string) *entity.Field[string] {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(strings.ToLower(line), "date") {
			continue
		}
		if d, ok := patterns.FindDate(line); ok {
			return entity.NewField(d, confKeyDate, "document_date")
		}
	}
	return nil
}

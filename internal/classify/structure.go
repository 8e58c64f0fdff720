package classify

import (
	"regexp"
	"strings"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// Structure stage confidence shaping.
const (
	structureOffset = 0.2
	structureCap    = 0.90
)

// minTableRows is how many column-aligned lines make the text "tabular".
const minTableRows = 3

var reTableRow = regexp.MustCompile(`\S\s{2,}\S+\s{2,}\S|\t`)

// signals are the boolean layout features the structure stage scores on.
// They are derived from the raw text, before whitespace collapsing, so
// column alignment is still visible.
type signals struct {
	hasAmounts bool
	hasDates   bool
	hasTables  bool
	hasABN     bool
}

func deriveSignals(raw string) signals {
	tableRows := 0
	for _, line := range strings.Split(raw, "\n") {
		if reTableRow.MatchString(line) {
			tableRows++
		}
	}
	_, hasDate := patterns.FindDate(raw)
	return signals{
		hasAmounts: patterns.CurrencyAmount.MatchString(raw),
		hasDates:   hasDate,
		hasTables:  tableRows >= minTableRows,
		hasABN:     patterns.ABNShape.MatchString(raw),
	}
}

// structureRule contributes a weighted score to one type when its condition
// holds. The rules are a table so new types slot in without new control flow.
type structureRule struct {
	docType constants.DocumentType
	score   float64
	match   func(sig signals, norm string) bool
}

var structureRules = []structureRule{
	{constants.DocTypeBankStatement, 4, func(s signals, n string) bool {
		return s.hasTables && strings.Contains(n, "balance")
	}},
	{constants.DocTypeBankStatement, 2, func(s signals, n string) bool {
		return s.hasTables && s.hasDates && s.hasAmounts
	}},
	{constants.DocTypeDividendStatement, 5, func(s signals, n string) bool {
		return strings.Contains(n, "franked") || strings.Contains(n, "franking")
	}},
	{constants.DocTypeDividendStatement, 2, func(s signals, n string) bool {
		return s.hasAmounts && strings.Contains(n, "share")
	}},
	{constants.DocTypeReceipt, 3, func(s signals, n string) bool {
		return s.hasAmounts && strings.Contains(n, "change")
	}},
	{constants.DocTypeReceipt, 2, func(s signals, n string) bool {
		return s.hasAmounts && !s.hasTables && strings.Contains(n, "total")
	}},
	{constants.DocTypeInvoice, 3, func(s signals, n string) bool {
		return s.hasABN && s.hasAmounts
	}},
	{constants.DocTypeInvoice, 2, func(s signals, n string) bool {
		return s.hasAmounts && s.hasDates && strings.Contains(n, "due")
	}},
	{constants.DocTypeContract, 3, func(s signals, n string) bool {
		return strings.Contains(n, "agreement") || strings.Contains(n, "clause")
	}},
	{constants.DocTypeContract, 2, func(s signals, n string) bool {
		return s.hasDates && !s.hasTables && len(n) > 1500
	}},
}

// structureStage scores layout-derived signals with type-specific weights.
func structureStage(raw, norm string, format constants.DocumentFormat) stageOutcome {
	sig := deriveSignals(raw)

	scores := make(map[constants.DocumentType]float64)
	var total float64
	for _, rule := range structureRules {
		if rule.match(sig, norm) {
			scores[rule.docType] += rule.score
			total += rule.score
		}
	}

	metadata := entity.DocumentMetadata{
		DetectedKeywords: []string{},
		HasTables:        sig.hasTables,
		HasAmounts:       sig.hasAmounts,
		HasDates:         sig.hasDates,
		HasABN:           sig.hasABN,
		Format:           format,
	}

	if total == 0 {
		return stageOutcome{
			result: entity.DocumentTypeResult{
				Type:     constants.DocTypeUnknown,
				Method:   constants.MethodStructure,
				Metadata: metadata,
			},
			perType: map[constants.DocumentType]float64{},
		}
	}

	best := constants.DocTypeUnknown
	var bestScore float64
	perType := make(map[constants.DocumentType]float64, len(scores))
	for _, t := range constants.KnownDocumentTypes {
		s := scores[t]
		if s > 0 {
			perType[t] = capConfidence(s/total+structureOffset, structureCap)
		}
		if s > bestScore {
			best, bestScore = t, s
		}
	}

	return stageOutcome{
		result: entity.DocumentTypeResult{
			Type:       best,
			Confidence: perType[best],
			Method:     constants.MethodStructure,
			Metadata:   metadata,
		},
		perType: perType,
	}
}

package classify

import (
	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// Keyword stage confidence shaping: best/total plus a fixed offset, capped.
const (
	keywordOffset = 0.3
	keywordCap    = 0.95
)

// stageOutcome is what each scoring stage hands to the waterfall: its best
// result plus the per-type confidences the combination stage reuses.
type stageOutcome struct {
	result  entity.DocumentTypeResult
	perType map[constants.DocumentType]float64
}

// keywordStage scores each document type by keyword occurrence counts, with
// the unique-identifier bonus, over normalized text.
func keywordStage(norm string, format constants.DocumentFormat) stageOutcome {
	scores := make(map[constants.DocumentType]int)
	detected := make(map[constants.DocumentType][]string)
	total := 0

	for _, profile := range patterns.DocTypeProfiles {
		score := 0
		for _, kw := range profile.Keywords {
			n := patterns.CountOccurrences(norm, kw)
			if n > 0 {
				score += n
				detected[profile.Type] = append(detected[profile.Type], kw)
			}
		}
		for _, unique := range profile.Uniques {
			n := patterns.CountOccurrences(norm, unique)
			if n > 0 {
				score += n * patterns.UniqueBonus
				detected[profile.Type] = append(detected[profile.Type], unique)
			}
		}
		scores[profile.Type] = score
		total += score
	}

	if total == 0 {
		return stageOutcome{
			result: entity.DocumentTypeResult{
				Type:     constants.DocTypeUnknown,
				Method:   constants.MethodKeyword,
				Metadata: entity.DocumentMetadata{DetectedKeywords: []string{}, Format: format},
			},
			perType: map[constants.DocumentType]float64{},
		}
	}

	best := constants.DocTypeUnknown
	bestScore := 0
	perType := make(map[constants.DocumentType]float64, len(scores))
	for _, t := range constants.KnownDocumentTypes {
		s := scores[t]
		if s > 0 {
			perType[t] = capConfidence(float64(s)/float64(total)+keywordOffset, keywordCap)
		}
		if s > bestScore {
			best, bestScore = t, s
		}
	}

	return stageOutcome{
		result: entity.DocumentTypeResult{
			Type:       best,
			Confidence: perType[best],
			Method:     constants.MethodKeyword,
			Metadata: entity.DocumentMetadata{
				DetectedKeywords: detected[best],
				Format:           format,
			},
		},
		perType: perType,
	}
}

func capConfidence(c, cap float64) float64 {
	if c > cap {
		return cap
	}
	return c
}

// Package classify assigns a document type and confidence to raw extracted
// text via a short-circuiting four-stage waterfall: keyword scoring,
// structure scoring, weighted combination, and a certain-non-answer
// fallback. All stages are pure functions over the input text and the
// shared pattern tables.
package classify

import (
	"log/slog"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
)

// combinedCap bounds the combination stage; keyword evidence carries more
// weight than layout evidence.
const (
	combinedKeywordWeight   = 0.6
	combinedStructureWeight = 0.4
	combinedCap             = 0.98
)

// Classifier is stateless and safe for concurrent use.
type Classifier struct {
	logger *slog.Logger
}

func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// waterfall indexes the stages for the early-exit loop.
type stage int

const (
	stageKeyword stage = iota
	stageStructure
	stageCombined
	stageFallback
)

// Detect classifies one document. Each stage is attempted only if no
// earlier stage cleared its threshold: keyword and structure exit at
// ConfidenceHigh, the combination at ConfidenceMedium, and the better of
// the first two stages is accepted at ConfidenceLow before falling back.
func (c *Classifier) Detect(text, path string) entity.DocumentTypeResult {
	format := formatFromPath(path)
	norm := normalize(text)

	var kw, st stageOutcome
	for s := stageKeyword; ; s++ {
		switch s {
		case stageKeyword:
			kw = keywordStage(norm, format)
			if kw.result.Confidence >= constants.ConfidenceHigh {
				return kw.result
			}
		case stageStructure:
			st = structureStage(text, norm, format)
			if st.result.Confidence >= constants.ConfidenceHigh {
				return st.result
			}
		case stageCombined:
			if combined, ok := combineStages(kw, st, format); ok && combined.Confidence >= constants.ConfidenceMedium {
				return combined
			}
		case stageFallback:
			if best := betterOf(kw.result, st.result); best.Confidence >= constants.ConfidenceLow {
				return best
			}
			c.logger.Debug("classifier.fallback", "path", path, "keyword_conf", kw.result.Confidence, "structure_conf", st.result.Confidence)
			// Maximally confident non-answer: the document could not be
			// classified, and that in itself is certain.
			return entity.DocumentTypeResult{
				Type:       constants.DocTypeUnknown,
				Confidence: 1.0,
				Method:     constants.MethodFallback,
				Metadata:   st.result.Metadata,
			}
		}
	}
}

// combineStages blends the per-type confidences of both scoring stages.
// It only applies when both stages produced a non-unknown type.
func combineStages(kw, st stageOutcome, format constants.DocumentFormat) (entity.DocumentTypeResult, bool) {
	if kw.result.Type == constants.DocTypeUnknown || st.result.Type == constants.DocTypeUnknown {
		return entity.DocumentTypeResult{}, false
	}

	best := constants.DocTypeUnknown
	var bestConf float64
	for _, t := range constants.KnownDocumentTypes {
		combined := kw.perType[t]*combinedKeywordWeight + st.perType[t]*combinedStructureWeight
		if combined > bestConf {
			best, bestConf = t, combined
		}
	}
	if best == constants.DocTypeUnknown {
		return entity.DocumentTypeResult{}, false
	}

	metadata := st.result.Metadata
	metadata.DetectedKeywords = kw.result.Metadata.DetectedKeywords
	return entity.DocumentTypeResult{
		Type:       best,
		Confidence: capConfidence(bestConf, combinedCap),
		Method:     constants.MethodML,
		Metadata:   metadata,
	}, true
}

func betterOf(a, b entity.DocumentTypeResult) entity.DocumentTypeResult {
	if b.Confidence > a.Confidence {
		return b
	}
	return a
}

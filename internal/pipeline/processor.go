// Package pipeline sequences the intake stages for one document: upstream
// text extraction, type classification, and — when the type warrants it —
// structured field extraction, validation, and persistence.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/classify"
	"github.com/tallydesk/docintake/internal/common"
	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/extract"
	"github.com/tallydesk/docintake/internal/repository"
	"github.com/tallydesk/docintake/internal/source"
)

// Outcome is everything one document produced on its way through intake.
// Contract and Validation are nil unless the document was routed to the
// field extractor.
type Outcome struct {
	Path       string
	TypeResult entity.DocumentTypeResult
	Contract   *entity.ExtractedContract
	Validation *entity.ContractValidationResult
}

// Processor coordinates text extraction, classification, and parsing.
type Processor struct {
	logger     *slog.Logger
	texts      source.TextExtractor
	classifier *classify.Classifier
	parser     *extract.Parser
	store      repository.ContractRepository // optional
}

func NewProcessor(logger *slog.Logger, texts source.TextExtractor, classifier *classify.Classifier, parser *extract.Parser, store repository.ContractRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, texts: texts, classifier: classifier, parser: parser, store: store}
}

// ProcessFile runs the intake pipeline for one document path. The upstream
// text extraction is the only stage allowed to fail hard; classification
// and extraction degrade to low-confidence results instead.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Outcome, error) {
	logger := p.logger
	if traceID := common.TraceIDFromContext(ctx); traceID != "" {
		logger = logger.With("trace_id", traceID)
	}
	if requestID := common.RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With("request_id", requestID)
	}

	text, err := p.texts.ExtractText(ctx, path)
	if err != nil {
		logger.Error("processor.extract_text.failed", "path", path, "err", err)
		return nil, err
	}

	out := &Outcome{Path: path}
	out.TypeResult = p.classifier.Detect(text, path)
	logger.Debug("processor classify stage success",
		"path", path,
		"type", out.TypeResult.Type,
		"method", out.TypeResult.Method,
		"confidence", out.TypeResult.Confidence,
	)

	if out.TypeResult.Type == constants.DocTypeContract || out.TypeResult.Type == constants.DocTypeInvoice {
		contract := p.parser.ParseText(text, sourceTypeFor(out.TypeResult.Metadata.Format))
		validation := extract.Validate(contract)
		out.Contract = contract
		out.Validation = &validation

		if p.store != nil {
			rec := &repository.ContractRecord{
				SourcePath:   path,
				DocumentType: out.TypeResult.Type,
				Contract:     *contract,
				Validation:   validation,
			}
			if err := p.store.SaveContract(ctx, rec); err != nil {
				logger.Error("processor.store.failed", "path", path, "err", err)
				return out, common.WrapError(err, "store contract")
			}
		}
	}
	return out, nil
}

// Process adapts ProcessFile for queue workers that only care about the error.
func (p *Processor) Process(ctx context.Context, path string) error {
	_, err := p.ProcessFile(ctx, path)
	return err
}

func sourceTypeFor(format constants.DocumentFormat) entity.SourceType {
	switch format {
	case constants.FormatPDF:
		return entity.SourcePDF
	case constants.FormatImage:
		return entity.SourceImage
	default:
		return entity.SourceUnknown
	}
}

package extract

import (
	"log/slog"

	"github.com/tallydesk/docintake/internal/entity"
)

// defaultConfidence is what an empty extraction reports: plausible but
// unverified, rather than verified absent.
const defaultConfidence = 0.3

// Parser orchestrates the field extractors over one document.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseText runs every extractor unconditionally over the same text and
// assembles the aggregate. It never fails: malformed or empty input yields
// an empty contract at the default confidence.
func (p *Parser) ParseText(text string, source entity.SourceType) *entity.ExtractedContract {
	c := &entity.ExtractedContract{
		RawText:      text,
		DocumentType: source,
	}

	c.ContractType = ContractType(text)
	c.ContractNumber = ContractNumber(text)
	c.ContractDate = documentDate(text)
	c.TotalValue = TotalValue(text)
	c.Parties = Parties(text)
	c.KeyDates = KeyDates(text)
	c.PaymentSchedules = PaymentSchedules(text)
	c.DepreciationAssets = DepreciationAssets(text)
	c.Clauses = Clauses(text)

	// Start and end dates fall out of the key-date scan.
	for _, kd := range c.KeyDates {
		switch kd.DateType {
		case entity.DateCommencement:
			if c.StartDate == nil {
				c.StartDate = entity.NewField(kd.Date, kd.Confidence, "key_dates")
			}
		case entity.DateCompletion, entity.DateTermination:
			if c.EndDate == nil {
				c.EndDate = entity.NewField(kd.Date, kd.Confidence, "key_dates")
			}
		}
	}

	// Sequence fields serialize as arrays, never null.
	if c.Parties == nil {
		c.Parties = []entity.ContractParty{}
	}
	if c.KeyDates == nil {
		c.KeyDates = []entity.KeyDate{}
	}
	if c.PaymentSchedules == nil {
		c.PaymentSchedules = []entity.PaymentSchedule{}
	}
	if c.DepreciationAssets == nil {
		c.DepreciationAssets = []entity.DepreciationInfo{}
	}
	if c.Clauses == nil {
		c.Clauses = []entity.ContractClause{}
	}

	c.OverallConfidence = overallConfidence(c)

	p.logger.Debug("parse complete",
		"contract_type", c.ContractType != nil,
		"parties", len(c.Parties),
		"key_dates", len(c.KeyDates),
		"payments", len(c.PaymentSchedules),
		"assets", len(c.DepreciationAssets),
		"clauses", len(c.Clauses),
		"overall_confidence", c.OverallConfidence,
	)
	return c
}

// overallConfidence is the arithmetic mean of every confidence produced
// across contract type, total value, parties, key dates, and payment
// schedules; each list element contributes one sample.
func overallConfidence(c *entity.ExtractedContract) float64 {
	var sum float64
	var n int
	if c.ContractType != nil {
		sum += c.ContractType.Confidence
		n++
	}
	if c.TotalValue != nil {
		sum += c.TotalValue.Confidence
		n++
	}
	for _, p := range c.Parties {
		sum += p.Confidence
		n++
	}
	for _, d := range c.KeyDates {
		sum += d.Confidence
		n++
	}
	for _, s := range c.PaymentSchedules {
		sum += s.Confidence
		n++
	}
	if n == 0 {
		return defaultConfidence
	}
	return sum / float64(n)
}

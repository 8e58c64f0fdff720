package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
)

const dividendText = `DIVIDEND STATEMENT
Fully franked dividend
Franking credits: $30.00
Dividend per share: 0.70`

func TestDetectDividendStatementByKeywords(t *testing.T) {
	c := NewClassifier(nil)
	res := c.Detect(dividendText, "statement.pdf")

	assert.Equal(t, constants.DocTypeDividendStatement, res.Type)
	assert.Equal(t, constants.MethodKeyword, res.Method)
	assert.Equal(t, 0.95, res.Confidence)
	assert.GreaterOrEqual(t, res.Confidence, constants.ConfidenceLow)
	assert.Contains(t, res.Metadata.DetectedKeywords, "franking credits")
	assert.Equal(t, constants.FormatPDF, res.Metadata.Format)
}

func TestDetectBankStatementByStructure(t *testing.T) {
	text := `date        description        amount
01/02/2024  balance            $500.00
02/02/2024  invoice            $100.00
03/02/2024  fees               $20.00
abn 51 824 753 556`

	c := NewClassifier(nil)
	res := c.Detect(text, "statement.txt")

	assert.Equal(t, constants.DocTypeBankStatement, res.Type)
	assert.Equal(t, constants.MethodStructure, res.Method)
	assert.InDelta(t, 6.0/9.0+structureOffset, res.Confidence, 1e-9)
	assert.True(t, res.Metadata.HasTables)
	assert.True(t, res.Metadata.HasAmounts)
	assert.True(t, res.Metadata.HasDates)
	assert.True(t, res.Metadata.HasABN)
	assert.Equal(t, constants.FormatText, res.Metadata.Format)
}

func TestDetectLowConfidenceKeywordAccepted(t *testing.T) {
	// Mixed keywords across types, no layout signals: the keyword stage
	// stays under the high threshold and the structure stage sees nothing,
	// so the waterfall accepts the keyword verdict at the low threshold.
	text := `invoice for the purchase of each item
statement with interest and a deposit
witness the terms`

	c := NewClassifier(nil)
	res := c.Detect(text, "")

	assert.Equal(t, constants.DocTypeBankStatement, res.Type)
	assert.Equal(t, constants.MethodKeyword, res.Method)
	assert.InDelta(t, 3.0/8.0+keywordOffset, res.Confidence, 1e-9)
	assert.GreaterOrEqual(t, res.Confidence, constants.ConfidenceLow)
	assert.Less(t, res.Confidence, constants.ConfidenceHigh)
}

func TestDetectFallback(t *testing.T) {
	c := NewClassifier(nil)
	for _, text := range []string{"", "zzz qqq xyzzy", "\n\n\n"} {
		res := c.Detect(text, "scan.jpg")
		assert.Equal(t, constants.DocTypeUnknown, res.Type, "%q", text)
		assert.Equal(t, 1.0, res.Confidence)
		assert.Equal(t, constants.MethodFallback, res.Method)
		assert.Equal(t, constants.FormatImage, res.Metadata.Format)
	}
}

func TestDetectConfidenceBounds(t *testing.T) {
	c := NewClassifier(nil)
	texts := []string{
		dividendText,
		"invoice",
		"this agreement is made between the parties",
		"receipt total change cash",
		"nothing classifiable at all",
	}
	for _, text := range texts {
		res := c.Detect(text, "")
		assert.GreaterOrEqual(t, res.Confidence, 0.0, text)
		assert.LessOrEqual(t, res.Confidence, 1.0, text)
	}
}

func TestCombineStages(t *testing.T) {
	kw := stageOutcome{
		result: entity.DocumentTypeResult{
			Type:       constants.DocTypeInvoice,
			Confidence: 0.70,
			Method:     constants.MethodKeyword,
			Metadata:   entity.DocumentMetadata{DetectedKeywords: []string{"invoice"}},
		},
		perType: map[constants.DocumentType]float64{
			constants.DocTypeInvoice: 0.70,
			constants.DocTypeReceipt: 0.50,
		},
	}
	st := stageOutcome{
		result: entity.DocumentTypeResult{
			Type:       constants.DocTypeInvoice,
			Confidence: 0.60,
			Method:     constants.MethodStructure,
			Metadata:   entity.DocumentMetadata{HasAmounts: true, HasABN: true},
		},
		perType: map[constants.DocumentType]float64{
			constants.DocTypeInvoice: 0.60,
		},
	}

	combined, ok := combineStages(kw, st, constants.FormatText)
	assert.True(t, ok)
	assert.Equal(t, constants.DocTypeInvoice, combined.Type)
	assert.InDelta(t, 0.70*combinedKeywordWeight+0.60*combinedStructureWeight, combined.Confidence, 1e-9)
	assert.Equal(t, constants.MethodML, combined.Method)
	assert.True(t, combined.Metadata.HasAmounts)
	assert.Equal(t, []string{"invoice"}, combined.Metadata.DetectedKeywords)
}

func TestCombineStagesRequiresBothStages(t *testing.T) {
	known := stageOutcome{
		result:  entity.DocumentTypeResult{Type: constants.DocTypeInvoice, Confidence: 0.7},
		perType: map[constants.DocumentType]float64{constants.DocTypeInvoice: 0.7},
	}
	unknown := stageOutcome{
		result:  entity.DocumentTypeResult{Type: constants.DocTypeUnknown},
		perType: map[constants.DocumentType]float64{},
	}

	_, ok := combineStages(known, unknown, constants.FormatText)
	assert.False(t, ok)
	_, ok = combineStages(unknown, known, constants.FormatText)
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "invoice 123\ntotal $45.00", normalize("Invoice #123!\nTotal:  $45.00"))
	assert.Equal(t, "", normalize("   \t  "))
	assert.Equal(t, "abn 51 824 753 556", normalize("ABN: 51 824 753 556"))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, constants.FormatPDF, formatFromPath("docs/contract.PDF"))
	assert.Equal(t, constants.FormatImage, formatFromPath("scan.jpeg"))
	assert.Equal(t, constants.FormatText, formatFromPath("notes.txt"))
	assert.Equal(t, constants.FormatText, formatFromPath(""))
}

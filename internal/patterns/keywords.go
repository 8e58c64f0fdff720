package patterns

import (
	"regexp"

	"github.com/tallydesk/docintake/constants"
)

// DocTypeProfile holds the keyword evidence for one document type. Keywords
// count once per occurrence; Uniques are near-definitive phrases that earn
// the UniqueBonus per occurrence.
type DocTypeProfile struct {
	Type     constants.DocumentType
	Keywords []string
	Uniques  []string
}

// UniqueBonus is the per-occurrence score for a unique identifier phrase.
// Empirically tuned; do not re-derive.
const UniqueBonus = 5

// DocTypeProfiles drives the classifier's keyword stage. Adding a document
// type means adding a row here, not touching the stage logic.
var DocTypeProfiles = []DocTypeProfile{
	{
		Type: constants.DocTypeReceipt,
		Keywords: []string{
			"receipt", "cash", "eftpos", "change", "subtotal",
			"merchant", "store", "purchase", "qty", "item",
		},
		Uniques: []string{"cash tendered", "change due", "approval code"},
	},
	{
		Type: constants.DocTypeBankStatement,
		Keywords: []string{
			"statement", "account", "balance", "deposit", "withdrawal",
			"transaction", "debit", "credit", "interest",
		},
		Uniques: []string{"bsb", "opening balance", "closing balance", "statement period"},
	},
	{
		Type: constants.DocTypeDividendStatement,
		Keywords: []string{
			"dividend", "shares", "shareholder", "franked", "unfranked",
			"holding", "payment date", "record date",
		},
		Uniques: []string{"franking credits", "fully franked", "dividend per share"},
	},
	{
		Type: constants.DocTypeInvoice,
		Keywords: []string{
			"invoice", "amount due", "due date", "bill", "gst",
			"payment terms", "remittance", "purchase order",
		},
		Uniques: []string{"tax invoice", "invoice number"},
	},
	{
		Type: constants.DocTypeContract,
		Keywords: []string{
			"agreement", "contract", "party", "parties", "terms",
			"conditions", "clause", "whereas", "executed", "witness",
		},
		Uniques: []string{"in witness whereof", "hereinafter referred"},
	},
}

// wordBoundary caches a compiled word-boundary matcher per phrase. Built at
// init from the tables above, so lookups at classify time never compile.
var wordBoundary = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	add := func(phrase string) {
		if _, ok := m[phrase]; !ok {
			m[phrase] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
		}
	}
	for _, p := range DocTypeProfiles {
		for _, k := range p.Keywords {
			add(k)
		}
		for _, u := range p.Uniques {
			add(u)
		}
	}
	return m
}()

// CountOccurrences counts word-boundary occurrences of phrase in normalized
// text. Phrases outside the classifier tables always count zero.
func CountOccurrences(text, phrase string) int {
	re, ok := wordBoundary[phrase]
	if !ok {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// Package patterns is the declarative pattern library shared by the field
// extractors and the document type classifier. Everything here is data:
// ordered regex tables and keyword lists, no control flow. New document
// types and field rules are added by extending a table.
package patterns

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
)

// TypePattern maps a document phrase onto a canonical contract type label.
type TypePattern struct {
	Label string
	Re    *regexp.Regexp
}

// ContractTypes is an ordered table; the first matching pattern wins.
var ContractTypes = []TypePattern{
	{"Service Agreement", regexp.MustCompile(`(?i)\bservices?\s+agreement\b`)},
	{"Consulting Agreement", regexp.MustCompile(`(?i)\bconsult(?:ing|ancy)\s+agreement\b`)},
	{"Employment Contract", regexp.MustCompile(`(?i)\bemployment\s+(?:contract|agreement)\b`)},
	{"Lease Agreement", regexp.MustCompile(`(?i)\blease\s+agreement\b`)},
	{"Supply Agreement", regexp.MustCompile(`(?i)\bsupply\s+agreement\b`)},
	{"Purchase Agreement", regexp.MustCompile(`(?i)\bpurchase\s+(?:contract|agreement)\b`)},
	{"Construction Contract", regexp.MustCompile(`(?i)\bconstruction\s+contract\b`)},
	{"Subcontractor Agreement", regexp.MustCompile(`(?i)\bsub-?contract(?:or)?\s+agreement\b`)},
	{"Licence Agreement", regexp.MustCompile(`(?i)\blicen[cs]e\s+agreement\b`)},
	{"Tax Invoice", regexp.MustCompile(`(?i)\btax\s+invoice\b`)},
	{"Invoice", regexp.MustCompile(`(?i)\binvoice\b`)},
	{"Contract", regexp.MustCompile(`(?i)\bcontract\b`)},
	{"Agreement", regexp.MustCompile(`(?i)\bagreement\b`)},
}

// ContractNumberLabels is the ordered list of labelled reference-number
// patterns; BareReference is the last-resort structured-code pattern.
var ContractNumberLabels = []*regexp.Regexp{
	regexp.MustCompile(`(?i)contract\s*(?:no\.?|number|#)[:\s#]*([A-Za-z0-9][\w\-/]*)`),
	regexp.MustCompile(`(?i)agreement\s*(?:no\.?|number|#)[:\s#]*([A-Za-z0-9][\w\-/]*)`),
	regexp.MustCompile(`(?i)(?:reference|ref)\s*(?:no\.?|number|#)?[:\s#]*([A-Za-z0-9][\w\-/]*)`),
}

// BareReference matches structured codes like SA-2024-001 with no label.
var BareReference = regexp.MustCompile(`\b([A-Z]{2,5}-\d{4}-\d{2,5})\b`)

// TotalValueLabels is the ordered list of labelled total-value patterns.
var TotalValueLabels = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s+contract\s+value[:\s]*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)contract\s+(?:value|sum|price)[:\s]*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)(?:total|aggregate)\s+value[:\s]*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)total\s+(?:amount|price|fee)[:\s]*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
}

// CurrencyAmount matches any currency-like token in running text.
var CurrencyAmount = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{1,2})?)`)

// ParseAmount converts a captured currency group to a number. Returns false
// for anything unparseable; no amount is ever negative.
func ParseAmount(capture string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(capture, ",", ""), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Percentage matches figures like "25%" or "12.5 %".
var Percentage = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)

// Supported date token shapes, tried in order.
var (
	DateDMY  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	DateISO  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	DateText = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{4})\b`)
)

// monthNumbers maps a lowercase month-name prefix to its two-digit number.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// FindDate returns the first date token in s, normalized to YYYY-MM-DD.
func FindDate(s string) (string, bool) {
	if m := DateDMY.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1]), true
	}
	if m := DateISO.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], true
	}
	if m := DateText.FindStringSubmatch(s); m != nil {
		prefix := strings.ToLower(m[2])
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		month, ok := monthNumbers[prefix]
		if !ok {
			return "", false
		}
		return m[3] + "-" + month + "-" + pad2(m[1]), true
	}
	return "", false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// RoleKeyword maps a line-leading label onto a party role.
type RoleKeyword struct {
	Keyword string
	Role    entity.PartyRole
}

// RoleKeywords is ordered; the first keyword matching a line wins.
var RoleKeywords = []RoleKeyword{
	{"client", entity.RoleClient},
	{"customer", entity.RoleClient},
	{"principal", entity.RoleClient},
	{"contractor", entity.RoleContractor},
	{"consultant", entity.RoleContractor},
	{"service provider", entity.RoleContractor},
	{"vendor", entity.RoleVendor},
	{"seller", entity.RoleVendor},
	{"supplier", entity.RoleSupplier},
	{"landlord", entity.RoleOther},
	{"tenant", entity.RoleOther},
	{"party", entity.RoleOther},
}

// PartyLine matches "<role keyword>: <name>" at the start of a line.
var PartyLine = func() *regexp.Regexp {
	keys := make([]string, len(RoleKeywords))
	for i, rk := range RoleKeywords {
		keys[i] = strings.ReplaceAll(regexp.QuoteMeta(rk.Keyword), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)^\s*(?:the\s+)?(` + strings.Join(keys, "|") + `)\s*:\s*(\S.*)$`)
}()

// RoleForKeyword resolves a matched keyword to its role.
func RoleForKeyword(keyword string) entity.PartyRole {
	k := strings.ToLower(strings.Join(strings.Fields(keyword), " "))
	for _, rk := range RoleKeywords {
		if rk.Keyword == k {
			return rk.Role
		}
	}
	return entity.RoleOther
}

// Identifier shapes searched near party lines. Checksum validation is the
// caller's job; these only bound the digit shape.
var (
	ABNToken = regexp.MustCompile(`(?i)\ba\.?b\.?n\.?[:\s]*(\d{2}[\s]?\d{3}[\s]?\d{3}[\s]?\d{3}|\d{11})\b`)
	ACNToken = regexp.MustCompile(`(?i)\ba\.?c\.?n\.?[:\s]*(\d{3}[\s]?\d{3}[\s]?\d{3}|\d{9})\b`)
	// ABNShape matches an 11-digit grouping anywhere, label or not.
	ABNShape = regexp.MustCompile(`\b\d{2}\s\d{3}\s\d{3}\s\d{3}\b|\b\d{11}\b`)
)

// DateKeyword maps a line keyword onto a key-date type.
type DateKeyword struct {
	Keyword  string
	DateType entity.DateType
}

// DateKeywords is ordered; a line yields at most one date per matched keyword.
var DateKeywords = []DateKeyword{
	{"commencement", entity.DateCommencement},
	{"commencing", entity.DateCommencement},
	{"start date", entity.DateCommencement},
	{"completion", entity.DateCompletion},
	{"practical completion", entity.DateCompletion},
	{"end date", entity.DateCompletion},
	{"milestone", entity.DateMilestone},
	{"review", entity.DateReview},
	{"termination", entity.DateTermination},
	{"expiry", entity.DateTermination},
	{"expires", entity.DateTermination},
	{"dated", entity.DateOther},
}

// Payment schedule line signals.
var (
	PaymentLine      = regexp.MustCompile(`(?i)\b(payment|milestone|installment|instalment|deposit|balance)\b`)
	MilestoneSignal  = regexp.MustCompile(`(?i)\b(milestone|stage|phase)\b`)
	DepreciationLine = regexp.MustCompile(`(?i)\b(equipment|machinery|furniture|computer|laptop|vehicle|tools|plant|asset)s?\b|depreciat|effective\s+life|prime\s+cost|diminishing\s+value`)
	EffectiveLife    = regexp.MustCompile(`(?i)effective\s+life(?:\s+of)?[:\s]*(\d{1,2})\s*(?:years?|yrs?)?|(\d{1,2})\s*(?:years?|yrs?)\s+effective\s+life`)
	PrimeCost        = regexp.MustCompile(`(?i)prime\s+cost`)
	DiminishingValue = regexp.MustCompile(`(?i)diminishing\s+value`)
)

// Clause header markers, tried in order: x.y, (a), bare integer, "clause".
var ClauseMarkers = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(\d+\.\d+)\s+(\S.*)$`),
	regexp.MustCompile(`^\s*\(([a-z])\)\s+(\S.*)$`),
	regexp.MustCompile(`^\s*(\d+)\.?\s+(\S.*)$`),
	regexp.MustCompile(`(?i)^\s*clause\s+([\w.]+)[:.\s]\s*(\S.*)$`),
}

// ClauseCategoryKeyword buckets a clause title by subject matter.
type ClauseCategoryKeyword struct {
	Keyword  string
	Category entity.ClauseCategory
}

// ClauseCategoryKeywords is ordered; the first keyword found in the title wins.
var ClauseCategoryKeywords = []ClauseCategoryKeyword{
	{"payment", entity.ClausePayment},
	{"fee", entity.ClausePayment},
	{"invoice", entity.ClausePayment},
	{"remuneration", entity.ClausePayment},
	{"termination", entity.ClauseTermination},
	{"terminate", entity.ClauseTermination},
	{"expiry", entity.ClauseTermination},
	{"liability", entity.ClauseLiability},
	{"indemn", entity.ClauseLiability},
	{"insurance", entity.ClauseLiability},
	{"intellectual property", entity.ClauseIP},
	{"copyright", entity.ClauseIP},
	{"trademark", entity.ClauseIP},
	{"patent", entity.ClauseIP},
}

// CategorizeClause maps a clause title onto its category.
func CategorizeClause(title string) entity.ClauseCategory {
	t := strings.ToLower(title)
	for _, ck := range ClauseCategoryKeywords {
		if strings.Contains(t, ck.Keyword) {
			return ck.Category
		}
	}
	return entity.ClauseOther
}

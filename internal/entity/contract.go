package entity

import "github.com/tallydesk/docintake/constants"

// Field is a single extracted datum with provenance. Confidence is a
// heuristic weight in [0,1], not a statistical probability.
type Field[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// NewField builds an immutable scored field.
func NewField[T any](value T, confidence float64, source string) *Field[T] {
	return &Field[T]{Value: value, Confidence: confidence, Source: source}
}

// PartyRole classifies a contract party by its function in the agreement.
type PartyRole string

const (
	RoleClient     PartyRole = "client"
	RoleContractor PartyRole = "contractor"
	RoleVendor     PartyRole = "vendor"
	RoleSupplier   PartyRole = "supplier"
	RoleOther      PartyRole = "other"
)

// ContractParty is one named party to the agreement. Multiple parties may
// share a name; no uniqueness is enforced.
type ContractParty struct {
	Name       string    `json:"name"`
	ABN        string    `json:"abn,omitempty"`
	ACN        string    `json:"acn,omitempty"`
	Role       PartyRole `json:"role"`
	Address    string    `json:"address,omitempty"`
	Contact    string    `json:"contact,omitempty"`
	Confidence float64   `json:"confidence"`
}

// DateType classifies a key contract date.
type DateType string

const (
	DateCommencement DateType = "commencement"
	DateCompletion   DateType = "completion"
	DateMilestone    DateType = "milestone"
	DateReview       DateType = "review"
	DateTermination  DateType = "termination"
	DateOther        DateType = "other"
)

// KeyDate is a dated obligation or event. Date is always an ISO-8601
// calendar date (YYYY-MM-DD).
type KeyDate struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	DateType    DateType `json:"date_type"`
	Confidence  float64  `json:"confidence"`
}

// PaymentSchedule is one payment obligation found in the document.
type PaymentSchedule struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	DueDate     string   `json:"due_date,omitempty"`
	Percentage  *float64 `json:"percentage,omitempty"`
	IsMilestone bool     `json:"is_milestone"`
	Confidence  float64  `json:"confidence"`
}

// DepreciationMethod is the ATO depreciation method for an asset.
type DepreciationMethod string

const (
	MethodPrimeCost        DepreciationMethod = "prime_cost"
	MethodDiminishingValue DepreciationMethod = "diminishing_value"
)

// Asset value bands for depreciation treatment, in dollars.
const (
	ImmediateDeductionCap = 300
	LowValuePoolCap       = 1000
)

// DepreciationInfo describes a depreciable asset mentioned in the document.
// IsImmediateDeduction and IsLowValuePool are derived solely from AssetValue
// and are mutually exclusive.
type DepreciationInfo struct {
	AssetDescription     string             `json:"asset_description"`
	AssetValue           float64            `json:"asset_value"`
	EffectiveLifeYears   *int               `json:"effective_life_years,omitempty"`
	DepreciationMethod   DepreciationMethod `json:"depreciation_method,omitempty"`
	IsImmediateDeduction bool               `json:"is_immediate_deduction"`
	IsLowValuePool       bool               `json:"is_low_value_pool"`
	Confidence           float64            `json:"confidence"`
}

// AssetValueBands returns the deduction flags implied by an asset value.
func AssetValueBands(value float64) (immediateDeduction, lowValuePool bool) {
	switch {
	case value <= ImmediateDeductionCap:
		return true, false
	case value <= LowValuePoolCap:
		return false, true
	default:
		return false, false
	}
}

// ClauseCategory buckets a clause by subject matter.
type ClauseCategory string

const (
	ClausePayment     ClauseCategory = "payment"
	ClauseTermination ClauseCategory = "termination"
	ClauseLiability   ClauseCategory = "liability"
	ClauseIP          ClauseCategory = "intellectual_property"
	ClauseOther       ClauseCategory = "other"
)

// ContractClause is one numbered or titled clause header.
type ContractClause struct {
	ClauseNumber string         `json:"clause_number,omitempty"`
	Title        string         `json:"title,omitempty"`
	Text         string         `json:"text"`
	Category     ClauseCategory `json:"category"`
	Confidence   float64        `json:"confidence"`
}

// SourceType records what kind of upstream document the text came from.
type SourceType string

const (
	SourceUnknown SourceType = "unknown"
	SourcePDF     SourceType = "pdf"
	SourceImage   SourceType = "image"
)

// ExtractedContract is the aggregate produced by one parse call. It is
// constructed fresh per invocation and never mutated afterward; callers
// re-parse to obtain a new one.
type ExtractedContract struct {
	ContractType       *Field[string]     `json:"contract_type,omitempty"`
	ContractNumber     *Field[string]     `json:"contract_number,omitempty"`
	ContractDate       *Field[string]     `json:"contract_date,omitempty"`
	StartDate          *Field[string]     `json:"start_date,omitempty"`
	EndDate            *Field[string]     `json:"end_date,omitempty"`
	TotalValue         *Field[float64]    `json:"total_value,omitempty"`
	Parties            []ContractParty    `json:"parties"`
	KeyDates           []KeyDate          `json:"key_dates"`
	PaymentSchedules   []PaymentSchedule  `json:"payment_schedules"`
	DepreciationAssets []DepreciationInfo `json:"depreciation_assets"`
	Clauses            []ContractClause   `json:"clauses"`
	RawText            string             `json:"raw_text"`
	OverallConfidence  float64            `json:"overall_confidence"`
	DocumentType       SourceType         `json:"document_type"`
}

// ContractValidationResult is derived from an ExtractedContract on demand;
// it is never stored alongside the aggregate.
type ContractValidationResult struct {
	IsValid         bool             `json:"is_valid"`
	MissingFields   []string         `json:"missing_fields"`
	Warnings        []string         `json:"warnings"`
	SuggestedAction constants.Action `json:"suggested_action"`
}

package entity

import "github.com/tallydesk/docintake/constants"

// DocumentMetadata carries the signals the classifier observed while
// deciding a document's type.
type DocumentMetadata struct {
	DetectedKeywords []string                 `json:"detected_keywords"`
	HasTables        bool                     `json:"has_tables,omitempty"`
	HasAmounts       bool                     `json:"has_amounts,omitempty"`
	HasDates         bool                     `json:"has_dates,omitempty"`
	HasABN           bool                     `json:"has_abn,omitempty"`
	Format           constants.DocumentFormat `json:"format"`
}

// DocumentTypeResult is the classifier's verdict for one document.
type DocumentTypeResult struct {
	Type       constants.DocumentType    `json:"type"`
	Confidence float64                   `json:"confidence"`
	Method     constants.DetectionMethod `json:"method"`
	Metadata   DocumentMetadata          `json:"metadata"`
}

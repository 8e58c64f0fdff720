package constants

// DocumentType is the canonical label a classified document is routed by.
type DocumentType string

// Stable values (store these exact strings in DB and exports).
const (
	DocTypeReceipt           DocumentType = "receipt"
	DocTypeBankStatement     DocumentType = "bank_statement"
	DocTypeDividendStatement DocumentType = "dividend_statement"
	DocTypeInvoice           DocumentType = "invoice"
	DocTypeContract          DocumentType = "contract"
	DocTypeUnknown           DocumentType = "unknown"
)

// KnownDocumentTypes lists every type the classifier can assign, in scoring order.
var KnownDocumentTypes = []DocumentType{
	DocTypeReceipt,
	DocTypeBankStatement,
	DocTypeDividendStatement,
	DocTypeInvoice,
	DocTypeContract,
}

// DetectionMethod records which classifier stage produced a result.
type DetectionMethod string

const (
	MethodKeyword   DetectionMethod = "keyword"
	MethodStructure DetectionMethod = "structure"
	MethodML        DetectionMethod = "ml"
	MethodFallback  DetectionMethod = "fallback"
)

// DocumentFormat describes the physical source of the text.
type DocumentFormat string

const (
	FormatPDF   DocumentFormat = "pdf"
	FormatImage DocumentFormat = "image"
	FormatText  DocumentFormat = "text"
)

var docTypeLabels = map[DocumentType]string{
	DocTypeReceipt:           "Receipt",
	DocTypeBankStatement:     "Bank Statement",
	DocTypeDividendStatement: "Dividend Statement",
	DocTypeInvoice:           "Invoice",
	DocTypeContract:          "Contract",
	DocTypeUnknown:           "Unknown Document",
}

var docTypeIcons = map[DocumentType]string{
	DocTypeReceipt:           "🧾",
	DocTypeBankStatement:     "🏦",
	DocTypeDividendStatement: "📈",
	DocTypeInvoice:           "📄",
	DocTypeContract:          "📝",
	DocTypeUnknown:           "❓",
}

// DocumentTypeLabel returns a human-readable label for a document type.
func DocumentTypeLabel(t DocumentType) string {
	if l, ok := docTypeLabels[t]; ok {
		return l
	}
	return docTypeLabels[DocTypeUnknown]
}

// DocumentTypeIcon returns a display icon for a document type.
func DocumentTypeIcon(t DocumentType) string {
	if i, ok := docTypeIcons[t]; ok {
		return i
	}
	return docTypeIcons[DocTypeUnknown]
}

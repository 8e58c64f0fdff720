package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendedAction(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Action
	}{
		{0.95, ActionAccept},
		{0.85, ActionAccept},
		{0.84, ActionReview},
		{0.60, ActionReview},
		{0.59, ActionManualEntry},
		{0.0, ActionManualEntry},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecommendedAction(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestIsConfidenceAcceptable(t *testing.T) {
	assert.True(t, IsConfidenceAcceptable(ConfidenceMedium))
	assert.True(t, IsConfidenceAcceptable(0.9))
	assert.False(t, IsConfidenceAcceptable(0.59))
}

func TestDocumentTypeLabel(t *testing.T) {
	assert.Equal(t, "Bank Statement", DocumentTypeLabel(DocTypeBankStatement))
	assert.Equal(t, "Unknown Document", DocumentTypeLabel(DocumentType("garbage")))
	assert.NotEmpty(t, DocumentTypeIcon(DocTypeReceipt))
	assert.Equal(t, DocumentTypeIcon(DocTypeUnknown), DocumentTypeIcon(DocumentType("garbage")))
}

package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateABN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "51824753556", true},
		{"valid with spaces", "51 824 753 556", true},
		{"bad checksum", "12345678901", false},
		{"too short", "1234567890", false},
		{"too long", "123456789012", false},
		{"letters", "abcdefghijk", false},
		{"empty", "", false},
		{"digit plus letter", "5182475355x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateABN(tt.input))
		})
	}
}

func TestValidateABNDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.True(t, ValidateABN("51824753556"))
		assert.False(t, ValidateABN("12345678901"))
	}
}

func TestValidateACN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "005749986", true},
		{"valid with spaces", "005 749 986", true},
		{"bad checksum", "123456789", false},
		{"too short", "00574998", false},
		{"too long", "0057499860", false},
		{"letters", "abcdefghi", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateACN(tt.input))
		})
	}
}

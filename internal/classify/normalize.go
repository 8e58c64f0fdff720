package classify

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tallydesk/docintake/constants"
)

var (
	reStripChars = regexp.MustCompile(`[^\w\s$.%,\-/]`)
	reSpaces     = regexp.MustCompile(`[ \t]+`)
)

// normalize lowercases, strips characters outside the scoring alphabet, and
// collapses runs of spaces. Newlines survive so the structure stage can
// still see line layout.
func normalize(text string) string {
	t := strings.ToLower(text)
	t = reStripChars.ReplaceAllString(t, "")
	t = reSpaces.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// formatFromPath derives the physical document format from an optional
// file path; bare text input reports as text.
func formatFromPath(path string) constants.DocumentFormat {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "pdf":
		return constants.FormatPDF
	case "jpg", "jpeg", "png", "heic", "tiff", "bmp":
		return constants.FormatImage
	default:
		return constants.FormatText
	}
}

package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallydesk/docintake/internal/common"
)

// FileSource reads already-extracted plain text from disk. It stands in for
// the OCR/PDF backend in the CLI and in tests; binary formats are refused
// rather than guessed at.
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

var textExtensions = map[string]struct{}{
	"txt":  {},
	"text": {},
	"md":   {},
}

func (s *FileSource) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", common.WrapSourceError(err, path)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := textExtensions[ext]; !ok {
		return "", common.WrapSourceError(common.ErrUnsupportedFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", common.WrapSourceError(common.WrapError(err, common.ErrTextExtraction.Error()), path)
	}
	return string(data), nil
}

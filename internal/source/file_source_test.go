package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallydesk/docintake/internal/common"
)

func TestFileSourceReadsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello intake"), 0o644))

	text, err := NewFileSource().ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello intake", text)
}

func TestFileSourceRefusesBinaryFormats(t *testing.T) {
	s := NewFileSource()
	for _, name := range []string{"scan.pdf", "photo.jpg", "doc.docx", "noext"} {
		_, err := s.ExtractText(context.Background(), name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, common.ErrUnsupportedFormat, name)
		assert.Contains(t, err.Error(), name)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource().ExtractText(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource().ExtractText(ctx, "doc.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

// Package source is the seam to the upstream text-extraction collaborator.
// OCR and PDF-to-text run out of process; the core only ever sees the
// resulting string, and this is the one boundary that fails hard.
package source

import "context"

// TextExtractor yields the plain text of a source document. Implementations
// are I/O-bound and may be slow; callers own any timeout policy via ctx.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

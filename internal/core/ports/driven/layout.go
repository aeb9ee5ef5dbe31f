package driven

import (
	"context"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// LayoutReader decodes a document file into styled page layout.
// Implementations must preserve the intrinsic reading order of the source.
type LayoutReader interface {
	// Read decodes the file at path. Decoding failures wrap domain.ErrExtractionFailed.
	Read(ctx context.Context, path string) (*domain.Document, error)

	// Extensions returns the lower-case file extensions handled, including the dot.
	Extensions() []string
}

// DocumentValidator performs a structural check of a document file before decoding.
type DocumentValidator interface {
	// Validate returns an error wrapping domain.ErrExtractionFailed for corrupt files.
	Validate(ctx context.Context, path string) error

	// Extensions returns the lower-case file extensions checked, including the dot.
	Extensions() []string
}

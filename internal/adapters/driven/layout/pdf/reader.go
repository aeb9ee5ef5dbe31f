// Package pdf reads the styled text layer of PDF files into page layouts.
//
// Decoding uses github.com/ledongthuc/pdf, which exposes each glyph run with its
// font, size and position. Runs are grouped into spans, lines and blocks by
// groupGlyphs. Scanned (image-only) pages yield empty pages.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
	"github.com/custodia-labs/pdfrank/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.LayoutReader = (*Reader)(nil)

// Reader decodes PDF files.
type Reader struct {
	config GroupConfig
}

// NewReader creates a reader with the default grouping configuration.
func NewReader() *Reader {
	return &Reader{config: DefaultGroupConfig()}
}

// NewReaderWithConfig creates a reader with custom grouping thresholds.
func NewReaderWithConfig(config GroupConfig) *Reader {
	return &Reader{config: config}
}

// Extensions returns the file extensions handled by this reader.
func (r *Reader) Extensions() []string {
	return []string{".pdf"}
}

// Read decodes every page of the PDF at path.
// The decoder panics on some malformed streams; those are reported as extraction failures.
func (r *Reader) Read(ctx context.Context, path string) (doc *domain.Document, err error) {
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}

	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, path, rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrExtractionFailed, path, err)
	}
	defer func() { _ = f.Close() }()

	numPages := reader.NumPage()
	doc = &domain.Document{
		Name:  filepath.Base(path),
		Pages: make([]domain.Page, 0, numPages),
	}

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := reader.Page(i)
		if p.V.IsNull() {
			logger.Debug("%s: page %d has no content", doc.Name, i)
			doc.Pages = append(doc.Pages, domain.Page{Blocks: []domain.Block{}})
			continue
		}

		doc.Pages = append(doc.Pages, groupGlyphs(pageGlyphs(p), r.config))
	}

	logger.Debug("Read %s: %d pages", doc.Name, len(doc.Pages))
	return doc, nil
}

// pageGlyphs converts the page's text runs, applying NFKC so ligatures and
// compatibility forms compare as plain text.
func pageGlyphs(p pdf.Page) []glyph {
	texts := p.Content().Text
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		glyphs = append(glyphs, glyph{
			Text: norm.NFKC.String(t.S),
			Font: t.Font,
			Size: t.FontSize,
			X:    t.X,
			Y:    t.Y,
			W:    t.W,
		})
	}
	return glyphs
}

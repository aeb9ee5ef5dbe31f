package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driving"
	"github.com/custodia-labs/pdfrank/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driving.ExtractionService = (*Extractor)(nil)

// pendingSection is the section currently accumulating block text.
type pendingSection struct {
	section domain.Section
	content strings.Builder
}

func (p *pendingSection) close() domain.Section {
	s := p.section
	s.Content = p.content.String()
	return s
}

// extraction is the state threaded through the fold over a document's blocks.
type extraction struct {
	document string
	sections []domain.Section
	open     *pendingSection
}

// step folds one block into the state.
func (e *extraction) step(block domain.Block, pageNumber int, dominant domain.DominantStyle) {
	if ok, title := IsTitle(block, dominant); ok {
		if e.open != nil {
			e.sections = append(e.sections, e.open.close())
		}
		e.open = &pendingSection{section: domain.Section{
			Title:      title,
			PageNumber: pageNumber,
			Document:   e.document,
		}}
		return
	}

	// Text before the first title has no section to belong to.
	if e.open == nil {
		return
	}
	e.open.content.WriteString(block.Text())
	e.open.content.WriteString(" ")
}

// finish closes the open section and normalises every section's content.
func (e *extraction) finish() []domain.Section {
	if e.open != nil {
		last := e.open.close()
		if !containsSection(e.sections, last) {
			e.sections = append(e.sections, last)
		}
		e.open = nil
	}

	for i := range e.sections {
		e.sections[i].Content = domain.NormalizeWhitespace(e.sections[i].Content)
	}
	return e.sections
}

func containsSection(sections []domain.Section, s domain.Section) bool {
	for _, existing := range sections {
		if existing == s {
			return true
		}
	}
	return false
}

// ExtractSections splits a document into titled sections in document order.
// Each page's blocks are classified against that page's dominant style.
// A document without any title yields no sections.
func ExtractSections(doc *domain.Document) []domain.Section {
	if doc == nil {
		return []domain.Section{}
	}

	state := &extraction{document: doc.Name, sections: []domain.Section{}}
	for i, page := range doc.Pages {
		dominant := DominantStyle(page)
		for _, block := range page.Blocks {
			state.step(block, i+1, dominant)
		}
	}
	return state.finish()
}

// Extractor reads document files through layout readers and extracts their sections.
type Extractor struct {
	readers    map[string]driven.LayoutReader
	validators map[string]driven.DocumentValidator
}

// NewExtractor creates an extractor dispatching on file extension.
// When two readers claim an extension the later one wins.
func NewExtractor(readers ...driven.LayoutReader) *Extractor {
	e := &Extractor{
		readers:    make(map[string]driven.LayoutReader),
		validators: make(map[string]driven.DocumentValidator),
	}
	for _, r := range readers {
		for _, ext := range r.Extensions() {
			e.readers[strings.ToLower(ext)] = r
		}
	}
	return e
}

// SetValidator registers a structural check run before decoding files it handles.
func (e *Extractor) SetValidator(v driven.DocumentValidator) {
	for _, ext := range v.Extensions() {
		e.validators[strings.ToLower(ext)] = v
	}
}

// Supports reports whether a reader is registered for the file's extension.
func (e *Extractor) Supports(path string) bool {
	_, ok := e.readers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ExtractFile decodes the file at path and returns its sections.
// A file that does not exist wraps domain.ErrInputNotFound whatever its extension.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]domain.Section, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := e.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no layout reader for %q", domain.ErrUnsupportedType, ext)
	}

	if v, ok := e.validators[ext]; ok {
		if err := v.Validate(ctx, path); err != nil {
			return nil, err
		}
	}

	doc, err := reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	sections := ExtractSections(doc)
	logger.Debug("Extracted %d sections from %s (%d pages)", len(sections), doc.Name, len(doc.Pages))
	return sections, nil
}

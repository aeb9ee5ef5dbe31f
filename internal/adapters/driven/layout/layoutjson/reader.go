// Package layoutjson reads pre-extracted page layouts from JSON files.
//
// The format mirrors the block/line/span dictionaries produced by common PDF
// layout tools, so layouts captured elsewhere can be ranked without the
// original PDF:
//
//	{"pages": [{"blocks": [{"lines": [{"spans": [{"text": "...", "size": 12, "font": "Arial"}]}]}]}]}
package layoutjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.LayoutReader = (*Reader)(nil)

// dump is the on-disk layout document.
type dump struct {
	Pages []domain.Page `json:"pages"`
}

// Reader decodes layout dumps.
type Reader struct{}

// NewReader creates a layout dump reader.
func NewReader() *Reader {
	return &Reader{}
}

// Extensions returns the file extensions handled by this reader.
func (r *Reader) Extensions() []string {
	return []string{".json"}
}

// Read decodes the layout dump at path. The document is named after the
// file with its .json suffix removed, so "guide.pdf.json" reads as "guide.pdf".
func (r *Reader) Read(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrExtractionFailed, path, err)
	}

	var d dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrExtractionFailed, path, err)
	}

	name := filepath.Base(path)
	if trimmed := strings.TrimSuffix(name, filepath.Ext(name)); filepath.Ext(trimmed) != "" {
		name = trimmed
	}

	return &domain.Document{Name: name, Pages: d.Pages}, nil
}

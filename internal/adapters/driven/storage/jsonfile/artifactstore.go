package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// artifactIndent is the indentation of written output artifacts.
const artifactIndent = "    "

// ArtifactStore reads and writes run artifacts as JSON files.
type ArtifactStore struct{}

// NewArtifactStore creates a new JSON artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// LoadRequest reads an input artifact.
func (s *ArtifactStore) LoadRequest(path string) (*domain.AnalysisRequest, error) {
	var req domain.AnalysisRequest
	if err := readJSON(path, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadResult reads a previously written output artifact.
func (s *ArtifactStore) LoadResult(path string) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	if err := readJSON(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveResult writes an output artifact with four-space indentation.
// Non-ASCII text and HTML characters are written unescaped.
func (s *ArtifactStore) SaveResult(path string, result *domain.AnalysisResult) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", artifactIndent)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %w", domain.ErrMalformedInput, path, err)
	}
	return nil
}

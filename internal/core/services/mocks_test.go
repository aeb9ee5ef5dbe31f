package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// --- Layout builders ---

func span(text string, size float64, font string) domain.TextSpan {
	return domain.TextSpan{Text: text, Size: size, Font: font}
}

func line(spans ...domain.TextSpan) domain.Line {
	return domain.Line{Spans: spans}
}

func block(lines ...domain.Line) domain.Block {
	return domain.Block{Lines: lines}
}

// heading is a one-line block in 16pt bold.
func heading(text string) domain.Block {
	return block(line(span(text, 16, "Helvetica-Bold")))
}

// body is a one-line block in 10pt regular.
func body(text string) domain.Block {
	return block(line(span(text, 10, "Helvetica")))
}

// touchDocs creates empty files under a temporary directory and returns the directory.
// Their contents come from mockLayoutReader, so only their existence matters.
func touchDocs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}
	return dir
}

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Texts found in vectors get that vector; everything else gets fallback.
type mockEmbeddingService struct {
	mu        sync.Mutex
	vectors   map[string][]float32
	fallback  []float32
	embedErr  error
	batchErr  error
	dropLast  bool
	calls     int
	batchSize int
}

func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	if m.fallback != nil {
		return m.fallback
	}
	return []float32{0, 0, 1}
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.batchSize = len(texts)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		out = append(out, m.vectorFor(t))
	}
	if m.dropLast && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return 3 }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error { return nil }

// mockPreparingEmbedder records the corpus it was prepared with.
type mockPreparingEmbedder struct {
	mockEmbeddingService
	corpus     []string
	prepareErr error
}

func (m *mockPreparingEmbedder) Prepare(_ context.Context, corpus []string) error {
	m.corpus = corpus
	return m.prepareErr
}

// mockLayoutReader implements driven.LayoutReader for testing.
// Documents are keyed by base file name.
type mockLayoutReader struct {
	docs    map[string]*domain.Document
	readErr map[string]error
}

func (m *mockLayoutReader) Read(_ context.Context, path string) (*domain.Document, error) {
	name := filepath.Base(path)
	if err, ok := m.readErr[name]; ok {
		return nil, err
	}
	doc, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}
	return doc, nil
}

func (m *mockLayoutReader) Extensions() []string {
	return []string{".pdf"}
}

// mockValidator implements driven.DocumentValidator for testing.
type mockValidator struct {
	err     error
	checked []string
}

func (m *mockValidator) Validate(_ context.Context, path string) error {
	m.checked = append(m.checked, path)
	return m.err
}

func (m *mockValidator) Extensions() []string {
	return []string{".pdf"}
}

// mockArtifactStore implements driven.ArtifactStore for testing.
type mockArtifactStore struct {
	request *domain.AnalysisRequest
	loadErr error
	saveErr error
	saved   map[string]*domain.AnalysisResult
}

func (m *mockArtifactStore) LoadRequest(_ string) (*domain.AnalysisRequest, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.request, nil
}

func (m *mockArtifactStore) SaveResult(path string, result *domain.AnalysisResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.saved == nil {
		m.saved = make(map[string]*domain.AnalysisResult)
	}
	m.saved[path] = result
	return nil
}

func (m *mockArtifactStore) LoadResult(path string) (*domain.AnalysisResult, error) {
	r, ok := m.saved[path]
	if !ok {
		return nil, errors.New("not saved")
	}
	return r, nil
}

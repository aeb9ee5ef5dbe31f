package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

var fixedNow = time.Date(2025, 7, 21, 10, 4, 5, 123456000, time.UTC)

func newTestAnalysisService(reader *mockLayoutReader, artifacts *mockArtifactStore) *AnalysisService {
	svc := NewAnalysisService(NewExtractor(reader), NewRelevanceRanker(&mockEmbeddingService{}), artifacts)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func tripRequest(files ...string) domain.AnalysisRequest {
	docs := make([]domain.DocumentRef, 0, len(files))
	for _, f := range files {
		docs = append(docs, domain.DocumentRef{Filename: f})
	}
	return domain.AnalysisRequest{Documents: docs, Persona: planner, JobToBeDone: tripJob}
}

func docWithSections(name string, titles ...string) *domain.Document {
	blocks := make([]domain.Block, 0, 2*len(titles))
	for _, title := range titles {
		blocks = append(blocks, heading(title), body("body text for "+title+" with enough characters"))
	}
	return &domain.Document{Name: name, Pages: []domain.Page{page(blocks...)}}
}

func TestAnalysisService_Analyze_NoDocuments(t *testing.T) {
	svc := newTestAnalysisService(&mockLayoutReader{}, nil)

	result, err := svc.Analyze(context.Background(), tripRequest(), "/docs", 5)

	require.NoError(t, err)
	assert.Empty(t, result.ExtractedSections)
	assert.NotNil(t, result.ExtractedSections)
	assert.Empty(t, result.SubsectionAnalysis)
	assert.NotNil(t, result.SubsectionAnalysis)
	assert.Equal(t, []string{}, result.Metadata.InputDocuments)
	assert.Equal(t, "2025-07-21T10:04:05.123456", result.Metadata.ProcessingTimestamp)
}

func TestAnalysisService_Analyze_ConcatenatesInInputOrder(t *testing.T) {
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "A1", "A2"),
		"b.pdf": docWithSections("b.pdf", "B1"),
		"c.pdf": docWithSections("c.pdf", "C1", "C2", "C3"),
	}}
	svc := newTestAnalysisService(reader, nil)
	svc.SetWorkers(3)

	// Every section scores the same, so rank order is extraction order.
	dir := touchDocs(t, "a.pdf", "b.pdf", "c.pdf")
	result, err := svc.Analyze(context.Background(), tripRequest("a.pdf", "b.pdf", "c.pdf"), dir, 10)

	require.NoError(t, err)
	titles := make([]string, 0, len(result.ExtractedSections))
	for _, s := range result.ExtractedSections {
		titles = append(titles, s.SectionTitle)
	}
	assert.Equal(t, []string{"A1", "A2", "B1", "C1", "C2", "C3"}, titles)
	assert.Equal(t, "b.pdf", result.ExtractedSections[2].Document)
	assert.Equal(t, 3, result.ExtractedSections[2].ImportanceRank)
}

func TestAnalysisService_Analyze_TopK(t *testing.T) {
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "1", "2", "3", "4", "5", "6", "7"),
	}}
	svc := newTestAnalysisService(reader, nil)

	result, err := svc.Analyze(context.Background(), tripRequest("a.pdf"), touchDocs(t, "a.pdf"), 0)

	require.NoError(t, err)
	assert.Len(t, result.ExtractedSections, domain.DefaultTopK)
	assert.Len(t, result.SubsectionAnalysis, domain.DefaultTopK)
	assert.Equal(t, "body text for 1 with enough characters", result.SubsectionAnalysis[0].RefinedText)
}

func TestAnalysisService_Analyze_SkipsMissingDocuments(t *testing.T) {
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "Intro"),
	}}
	svc := newTestAnalysisService(reader, nil)

	result, err := svc.Analyze(context.Background(), tripRequest("missing.pdf", "a.pdf"), touchDocs(t, "a.pdf"), 5)

	require.NoError(t, err)
	require.Len(t, result.ExtractedSections, 1)
	assert.Equal(t, "a.pdf", result.ExtractedSections[0].Document)
	assert.Equal(t, []string{"missing.pdf", "a.pdf"}, result.Metadata.InputDocuments)
}

func TestAnalysisService_Analyze_SkipsMissingUnsupportedDocuments(t *testing.T) {
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "Intro"),
	}}
	svc := newTestAnalysisService(reader, nil)

	result, err := svc.Analyze(context.Background(), tripRequest("notes.docx", "a.pdf"), touchDocs(t, "a.pdf"), 5)

	require.NoError(t, err)
	require.Len(t, result.ExtractedSections, 1)
	assert.Equal(t, []string{"notes.docx", "a.pdf"}, result.Metadata.InputDocuments)
}

func TestAnalysisService_Analyze_PresentUnsupportedDocumentIsFatal(t *testing.T) {
	svc := newTestAnalysisService(&mockLayoutReader{}, nil)

	_, err := svc.Analyze(context.Background(), tripRequest("notes.docx"), touchDocs(t, "notes.docx"), 5)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestAnalysisService_Analyze_DocumentKeepsReferencedFilename(t *testing.T) {
	// The reader names documents by base name; sections report the request's filename.
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"guide.pdf": docWithSections("guide.pdf", "Intro"),
	}}
	svc := newTestAnalysisService(reader, nil)
	dir := touchDocs(t, "sub/guide.pdf")

	result, err := svc.Analyze(context.Background(), tripRequest("sub/guide.pdf"), dir, 5)

	require.NoError(t, err)
	require.Len(t, result.ExtractedSections, 1)
	assert.Equal(t, "sub/guide.pdf", result.ExtractedSections[0].Document)
	assert.Equal(t, "sub/guide.pdf", result.SubsectionAnalysis[0].Document)
}

func TestAnalysisService_Analyze_ExtractionFailureIsFatal(t *testing.T) {
	reader := &mockLayoutReader{
		docs:    map[string]*domain.Document{"a.pdf": docWithSections("a.pdf", "Intro")},
		readErr: map[string]error{"bad.pdf": domain.ErrExtractionFailed},
	}
	svc := newTestAnalysisService(reader, nil)

	dir := touchDocs(t, "a.pdf", "bad.pdf")
	_, err := svc.Analyze(context.Background(), tripRequest("a.pdf", "bad.pdf"), dir, 5)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "bad.pdf")
}

func TestAnalysisService_Analyze_MalformedInputIsFatal(t *testing.T) {
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "Intro"),
	}}
	svc := newTestAnalysisService(reader, nil)
	req := tripRequest("a.pdf")
	req.Persona = domain.Persona{}

	_, err := svc.Analyze(context.Background(), req, touchDocs(t, "a.pdf"), 5)

	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestAnalysisService_Analyze_Cancelled(t *testing.T) {
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "Intro"),
	}}
	svc := newTestAnalysisService(reader, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, tripRequest("a.pdf"), touchDocs(t, "a.pdf"), 5)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalysisService_Run(t *testing.T) {
	req := tripRequest("a.pdf")
	artifacts := &mockArtifactStore{request: &req}
	reader := &mockLayoutReader{docs: map[string]*domain.Document{
		"a.pdf": docWithSections("a.pdf", "Intro"),
	}}
	svc := newTestAnalysisService(reader, artifacts)

	dir := touchDocs(t, "PDFs/a.pdf")
	cfg := domain.RunConfig{
		RunID:       "test",
		InputPath:   filepath.Join(dir, "challenge1b_input.json"),
		DocumentDir: filepath.Join(dir, "PDFs"),
		OutputPath:  filepath.Join(dir, "challenge1b_output.json"),
		TopK:        5,
	}
	result, err := svc.Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Same(t, result, artifacts.saved[cfg.OutputPath])
	assert.Equal(t, "Travel Planner", result.Metadata.Persona)
	assert.Equal(t, "Plan a trip", result.Metadata.JobToBeDone)
}

func TestAnalysisService_Run_Errors(t *testing.T) {
	req := tripRequest()
	saveErr := errors.New("disk full")

	tests := []struct {
		name      string
		artifacts *mockArtifactStore
		wantErr   error
	}{
		{"no artifact store", nil, domain.ErrInvalidInput},
		{"missing input artifact", &mockArtifactStore{loadErr: domain.ErrInputNotFound}, domain.ErrInputNotFound},
		{"save fails", &mockArtifactStore{request: &req, saveErr: saveErr}, saveErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *AnalysisService
			if tt.artifacts == nil {
				svc = NewAnalysisService(NewExtractor(), NewRelevanceRanker(nil), nil)
			} else {
				svc = newTestAnalysisService(&mockLayoutReader{}, tt.artifacts)
			}

			_, err := svc.Run(context.Background(), domain.RunConfig{OutputPath: "out.json"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

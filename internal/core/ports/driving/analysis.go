package driving

import (
	"context"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// AnalysisService runs the extract-filter-rank pipeline over a document collection.
type AnalysisService interface {
	// Run loads the input artifact named by cfg, analyses it and writes the output artifact.
	Run(ctx context.Context, cfg domain.RunConfig) (*domain.AnalysisResult, error)

	// Analyze extracts sections from the request's documents found in documentDir,
	// ranks them and projects the top results.
	Analyze(ctx context.Context, req domain.AnalysisRequest, documentDir string, topK int) (*domain.AnalysisResult, error)
}

// ExtractionService exposes section extraction for a single file.
type ExtractionService interface {
	// ExtractFile returns the sections of the document at path, in document order.
	ExtractFile(ctx context.Context, path string) ([]domain.Section, error)
}

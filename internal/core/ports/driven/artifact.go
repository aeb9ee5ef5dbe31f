package driven

import "github.com/custodia-labs/pdfrank/internal/core/domain"

// ArtifactStore reads and writes the JSON artifacts of a run.
type ArtifactStore interface {
	// LoadRequest reads an input artifact.
	// A missing file wraps domain.ErrInputNotFound; unparsable JSON wraps domain.ErrMalformedInput.
	LoadRequest(path string) (*domain.AnalysisRequest, error)

	// SaveResult writes an output artifact, replacing any existing file.
	SaveResult(path string, result *domain.AnalysisResult) error

	// LoadResult reads a previously written output artifact.
	LoadResult(path string) (*domain.AnalysisResult, error)
}

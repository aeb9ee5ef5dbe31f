package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driving"
	"github.com/custodia-labs/pdfrank/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// defaultWorkers bounds concurrent document extraction when none is configured.
const defaultWorkers = 4

// AnalysisService runs the extract, filter and rank pipeline over a collection.
type AnalysisService struct {
	extractor driving.ExtractionService
	ranker    *RelevanceRanker
	artifacts driven.ArtifactStore
	workers   int
	now       func() time.Time
}

// NewAnalysisService creates a new analysis service.
// The artifacts parameter is only required by Run.
func NewAnalysisService(
	extractor driving.ExtractionService,
	ranker *RelevanceRanker,
	artifacts driven.ArtifactStore,
) *AnalysisService {
	return &AnalysisService{
		extractor: extractor,
		ranker:    ranker,
		artifacts: artifacts,
		workers:   defaultWorkers,
		now:       time.Now,
	}
}

// SetWorkers sets how many documents are extracted concurrently.
// Values below one are ignored.
func (s *AnalysisService) SetWorkers(n int) {
	if n >= 1 {
		s.workers = n
	}
}

// SetClock replaces the clock used for the processing timestamp.
func (s *AnalysisService) SetClock(now func() time.Time) {
	s.now = now
}

// Run loads the input artifact, analyses the collection and writes the output artifact.
// A missing or unparsable input artifact aborts the run.
func (s *AnalysisService) Run(ctx context.Context, cfg domain.RunConfig) (*domain.AnalysisResult, error) {
	if s.artifacts == nil {
		return nil, fmt.Errorf("%w: no artifact store configured", domain.ErrInvalidInput)
	}

	logger.Section("Run " + cfg.RunID)
	logger.Debug("Input: %s", cfg.InputPath)
	logger.Debug("Documents: %s", cfg.DocumentDir)

	started := time.Now()

	req, err := s.artifacts.LoadRequest(cfg.InputPath)
	if err != nil {
		return nil, err
	}

	result, err := s.Analyze(ctx, *req, cfg.DocumentDir, cfg.TopK)
	if err != nil {
		return nil, err
	}

	if cfg.OutputPath != "" {
		if err := s.artifacts.SaveResult(cfg.OutputPath, result); err != nil {
			return nil, err
		}
		logger.Success("Wrote %s in %s", cfg.OutputPath, time.Since(started).Round(time.Millisecond))
	}
	return result, nil
}

// Analyze extracts the sections of every referenced document, ranks them against
// the request's persona and task, and projects the top topK.
// Documents missing from documentDir are skipped with a warning; any other
// extraction or ranking error aborts the analysis.
func (s *AnalysisService) Analyze(
	ctx context.Context, req domain.AnalysisRequest, documentDir string, topK int,
) (*domain.AnalysisResult, error) {
	logger.Section("Extraction")
	logger.Progress("Extracting sections from %d documents", len(req.Documents))

	sections, err := s.extractAll(ctx, req.Documents, documentDir)
	if err != nil {
		return nil, err
	}
	logger.Progress("Extracted %d sections", len(sections))

	logger.Section("Ranking")
	ranked, err := s.ranker.Rank(ctx, sections, req.Persona, req.JobToBeDone)
	if err != nil {
		return nil, err
	}
	logger.Progress("Ranked %d compliant sections", len(ranked))

	return domain.NewAnalysisResult(req, ranked, topK, s.now()), nil
}

// extractAll extracts documents concurrently and concatenates their sections in input order.
func (s *AnalysisService) extractAll(
	ctx context.Context, docs []domain.DocumentRef, documentDir string,
) ([]domain.Section, error) {
	perDoc := make([][]domain.Section, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, ref := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(documentDir, ref.Filename)
			sections, err := s.extractor.ExtractFile(gctx, path)
			if errors.Is(err, domain.ErrInputNotFound) {
				logger.Warn("%s not found, skipping", path)
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", ref.Filename, err)
			}

			// Sections carry the filename as referenced by the request.
			for j := range sections {
				sections[j].Document = ref.Filename
			}
			logger.Debug("%s: %d sections", ref.Filename, len(sections))
			perDoc[i] = sections
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]domain.Section, 0)
	for _, sections := range perDoc {
		all = append(all, sections...)
	}
	return all, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
	"github.com/custodia-labs/pdfrank/internal/logger"
)

// RelevanceRanker orders sections by semantic similarity to a persona/task query.
type RelevanceRanker struct {
	embedder driven.EmbeddingService
}

// NewRelevanceRanker creates a ranker backed by embedder.
func NewRelevanceRanker(embedder driven.EmbeddingService) *RelevanceRanker {
	return &RelevanceRanker{embedder: embedder}
}

// Rank filters sections by the job's constraints, scores the survivors against
// the query "{role}: {task}" and returns them by descending score with dense
// 1-based ranks. Equal scores keep their input order.
func (r *RelevanceRanker) Rank(
	ctx context.Context, sections []domain.Section, persona domain.Persona, job domain.JobToBeDone,
) ([]domain.RankedSection, error) {
	if len(sections) == 0 {
		return []domain.RankedSection{}, nil
	}

	compliant := NewConstraintFilter(job.EffectiveConstraints()).Filter(sections)
	logger.Debug("Constraint filter kept %d of %d sections", len(compliant), len(sections))
	if len(compliant) == 0 {
		return []domain.RankedSection{}, nil
	}

	if err := domain.ValidateQuery(persona, job); err != nil {
		return nil, err
	}
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	query := domain.Query(persona, job)
	texts := make([]string, len(compliant))
	for i, s := range compliant {
		texts[i] = s.Title + ". " + s.Content
	}

	if p, ok := r.embedder.(driven.CorpusPreparer); ok {
		corpus := append([]string{query}, texts...)
		if err := p.Prepare(ctx, corpus); err != nil {
			return nil, embeddingError("prepare corpus", err)
		}
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, embeddingError("embed query", err)
	}

	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, embeddingError("embed sections", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d sections",
			domain.ErrEmbeddingFailed, len(vectors), len(texts))
	}

	ranked := make([]domain.RankedSection, len(compliant))
	for i, s := range compliant {
		if len(vectors[i]) != len(queryVec) {
			return nil, fmt.Errorf("%w: section vector has %d dimensions, query has %d",
				domain.ErrEmbeddingFailed, len(vectors[i]), len(queryVec))
		}
		ranked[i] = domain.RankedSection{
			Section: s,
			Score:   domain.CosineSimilarity(queryVec, vectors[i]),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].ImportanceRank = i + 1
	}

	logger.Debug("Ranked %d sections with %s", len(ranked), r.embedder.ModelName())
	return ranked, nil
}

func embeddingError(op string, err error) error {
	if errors.Is(err, domain.ErrEmbeddingFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrEmbeddingFailed, op, err)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

var (
	planner = domain.Persona{Role: "Travel Planner"}
	tripJob = domain.JobToBeDone{Task: "Plan a trip"}
	query   = "Travel Planner: Plan a trip"
)

func sectionText(s domain.Section) string {
	return s.Title + ". " + s.Content
}

func TestRelevanceRanker_OrdersByDescendingScore(t *testing.T) {
	low := domain.Section{Title: "Appendix", Content: "tables", Document: "a.pdf", PageNumber: 9}
	high := domain.Section{Title: "Itinerary", Content: "day by day", Document: "a.pdf", PageNumber: 2}
	mid := domain.Section{Title: "Hotels", Content: "where to stay", Document: "b.pdf", PageNumber: 1}

	embedder := &mockEmbeddingService{vectors: map[string][]float32{
		query:             {1, 0, 0},
		sectionText(low):  {0, 1, 0},
		sectionText(high): {1, 0.1, 0},
		sectionText(mid):  {1, 1, 0},
	}}

	ranked, err := NewRelevanceRanker(embedder).Rank(context.Background(),
		[]domain.Section{low, high, mid}, planner, tripJob)

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, high, ranked[0].Section)
	assert.Equal(t, mid, ranked[1].Section)
	assert.Equal(t, low, ranked[2].Section)
	assert.InDelta(t, 0.0, ranked[2].Score, 1e-9)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, 3, embedder.batchSize)
}

func TestRelevanceRanker_DenseRanks(t *testing.T) {
	sections := make([]domain.Section, 7)
	for i := range sections {
		sections[i] = domain.Section{Title: string(rune('A' + i)), PageNumber: i + 1}
	}

	ranked, err := NewRelevanceRanker(&mockEmbeddingService{}).Rank(context.Background(), sections, planner, tripJob)

	require.NoError(t, err)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.ImportanceRank)
	}
}

func TestRelevanceRanker_EqualScoresKeepInputOrder(t *testing.T) {
	sections := []domain.Section{
		{Title: "first", PageNumber: 1},
		{Title: "second", PageNumber: 2},
		{Title: "third", PageNumber: 3},
		{Title: "fourth", PageNumber: 4},
	}
	embedder := &mockEmbeddingService{vectors: map[string][]float32{
		query:                     {1, 0, 0},
		sectionText(sections[2]): {1, 0, 0},
	}, fallback: []float32{1, 1, 0}}

	ranked, err := NewRelevanceRanker(embedder).Rank(context.Background(), sections, planner, tripJob)

	require.NoError(t, err)
	titles := make([]string, 0, len(ranked))
	for _, r := range ranked {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"third", "first", "second", "fourth"}, titles)
}

func TestRelevanceRanker_ExcludedSectionNeverRanked(t *testing.T) {
	budget := domain.Section{Title: "Finances", Content: "project budget overview"}
	other := domain.Section{Title: "Venue", Content: "a hall"}
	job := domain.JobToBeDone{
		Task:        "Plan a trip",
		Constraints: &domain.Constraints{ExcludeKeywords: []string{"budget"}},
	}
	embedder := &mockEmbeddingService{vectors: map[string][]float32{
		query:               {1, 0, 0},
		sectionText(budget): {1, 0, 0},
		sectionText(other):  {0, 1, 0},
	}}

	ranked, err := NewRelevanceRanker(embedder).Rank(context.Background(),
		[]domain.Section{budget, other}, planner, job)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, other, ranked[0].Section)
	assert.Equal(t, 1, ranked[0].ImportanceRank)
}

func TestRelevanceRanker_EmptyInputs(t *testing.T) {
	embedder := &mockEmbeddingService{}
	r := NewRelevanceRanker(embedder)

	ranked, err := r.Rank(context.Background(), nil, planner, tripJob)
	require.NoError(t, err)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)

	job := domain.JobToBeDone{Task: "x", Constraints: &domain.Constraints{IncludeKeywords: []string{"absent"}}}
	ranked, err = r.Rank(context.Background(), []domain.Section{{Title: "t"}}, planner, job)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	assert.Zero(t, embedder.calls)
}

func TestRelevanceRanker_MalformedQuery(t *testing.T) {
	sections := []domain.Section{{Title: "t"}}

	tests := []struct {
		name    string
		persona domain.Persona
		job     domain.JobToBeDone
	}{
		{"missing role", domain.Persona{}, tripJob},
		{"missing task", planner, domain.JobToBeDone{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder := &mockEmbeddingService{}
			_, err := NewRelevanceRanker(embedder).Rank(context.Background(), sections, tt.persona, tt.job)

			assert.ErrorIs(t, err, domain.ErrMalformedInput)
			assert.Zero(t, embedder.calls)
		})
	}
}

func TestRelevanceRanker_EmbeddingErrors(t *testing.T) {
	sections := []domain.Section{{Title: "t"}, {Title: "u"}}
	boom := errors.New("connection refused")

	tests := []struct {
		name     string
		embedder *mockEmbeddingService
	}{
		{"query embedding fails", &mockEmbeddingService{embedErr: boom}},
		{"batch embedding fails", &mockEmbeddingService{batchErr: boom}},
		{"batch returns too few vectors", &mockEmbeddingService{dropLast: true}},
		{"dimension mismatch", &mockEmbeddingService{vectors: map[string][]float32{query: {1, 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRelevanceRanker(tt.embedder).Rank(context.Background(), sections, planner, tripJob)
			assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
		})
	}
}

func TestRelevanceRanker_NilEmbedder(t *testing.T) {
	_, err := NewRelevanceRanker(nil).Rank(context.Background(), []domain.Section{{Title: "t"}}, planner, tripJob)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestRelevanceRanker_PreparesCorpus(t *testing.T) {
	sections := []domain.Section{{Title: "A", Content: "alpha"}, {Title: "B", Content: "beta"}}
	embedder := &mockPreparingEmbedder{}

	_, err := NewRelevanceRanker(embedder).Rank(context.Background(), sections, planner, tripJob)

	require.NoError(t, err)
	assert.Equal(t, []string{query, "A. alpha", "B. beta"}, embedder.corpus)
}

func TestRelevanceRanker_PrepareError(t *testing.T) {
	embedder := &mockPreparingEmbedder{prepareErr: errors.New("empty vocabulary")}

	_, err := NewRelevanceRanker(embedder).Rank(context.Background(), []domain.Section{{Title: "A"}}, planner, tripJob)

	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}

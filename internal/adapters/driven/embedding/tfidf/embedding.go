// Package tfidf provides an offline embedding service based on TF-IDF.
//
// The vector space is built from the texts being compared, so Prepare must be
// called with the query and every candidate before embedding. No network access
// is needed, which makes this the default provider.
package tfidf

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interfaces.
var (
	_ driven.EmbeddingService = (*EmbeddingService)(nil)
	_ driven.CorpusPreparer   = (*EmbeddingService)(nil)
)

// ModelName is reported for this provider.
const ModelName = "tfidf"

// ErrNotPrepared is returned when embedding before Prepare.
var ErrNotPrepared = errors.New("tfidf: vocabulary not prepared")

// EmbeddingService computes L2-normalised TF-IDF vectors with smoothed IDF.
type EmbeddingService struct {
	mu         sync.RWMutex
	vocabulary map[string]int
	idf        []float64
	tokens     *regexp.Regexp
	stopwords  map[string]struct{}
}

// NewEmbeddingService creates an unprepared TF-IDF embedding service.
func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{
		tokens:    regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
		stopwords: stopwords(),
	}
}

// Prepare builds the vocabulary and IDF weights from corpus, replacing any previous vocabulary.
func (s *EmbeddingService) Prepare(_ context.Context, corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("tfidf: empty corpus")
	}

	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range s.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return errors.New("tfidf: no tokens found in corpus")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary = vocabulary
	s.idf = idf
	return nil
}

// Embed computes the TF-IDF vector of text. Out-of-vocabulary text yields a zero vector.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embed(text)
}

// EmbedBatch computes the vectors of texts against the same vocabulary.
func (s *EmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := s.embed(text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

// embed computes one vector. Callers hold s.mu.
func (s *EmbeddingService) embed(text string) ([]float32, error) {
	if s.vocabulary == nil {
		return nil, ErrNotPrepared
	}

	counts := make(map[int]int)
	total := 0
	for _, tok := range s.tokenize(text) {
		if idx, ok := s.vocabulary[tok]; ok {
			counts[idx]++
			total++
		}
	}

	vec := make([]float32, len(s.idf))
	if total == 0 {
		return vec, nil
	}

	weights := make([]float64, len(s.idf))
	var sumSquares float64
	for idx, count := range counts {
		w := float64(count) / float64(total) * s.idf[idx]
		weights[idx] = w
		sumSquares += w * w
	}
	norm := math.Sqrt(sumSquares)
	for idx := range counts {
		vec[idx] = float32(weights[idx] / norm)
	}
	return vec, nil
}

func (s *EmbeddingService) tokenize(text string) []string {
	raw := s.tokens.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := s.stopwords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

// Dimensions returns the vocabulary size, or zero before Prepare.
func (s *EmbeddingService) Dimensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.idf)
}

// ModelName returns "tfidf".
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; the service is local.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

func stopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on",
		"at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this",
		"that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than",
		"so", "such", "into", "about", "between", "through", "during", "before", "after", "above",
		"below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

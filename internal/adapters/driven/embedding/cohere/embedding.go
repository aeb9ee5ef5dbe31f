// Package cohere provides an embedding service adapter for the Cohere v2 embed API.
package cohere

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	coherecore "github.com/cohere-ai/cohere-go/v2/core"
	"github.com/cohere-ai/cohere-go/v2/option"

	"github.com/custodia-labs/pdfrank/internal/adapters/driven/embedding/ratelimit"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "embed-multilingual-v3.0"
	DefaultTimeout    = 60 * time.Second
	DefaultDimensions = 1024

	// MaxTexts is the most texts the embed endpoint accepts per request.
	MaxTexts = 96
)

// embedClient is the subset of the Cohere v2 client used here.
type embedClient interface {
	Embed(ctx context.Context, request *cohere.V2EmbedRequest, opts ...option.RequestOption) (*cohere.EmbedByTypeResponse, error)
}

// Config holds configuration for the Cohere embedding service.
type Config struct {
	// APIKey is the Cohere API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model is the embedding model to use (default: embed-multilingual-v3.0).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Dimensions is the embedding vector size (model-dependent).
	Dimensions int

	// RequestsPerMinute paces requests; zero disables pacing.
	RequestsPerMinute int
}

// EmbeddingService generates embeddings using Cohere.
// Embed uses the search_query input type and EmbedBatch uses search_document.
type EmbeddingService struct {
	client     embedClient
	model      string
	dimensions int
	limiter    *ratelimit.Limiter
}

// NewEmbeddingService creates a new Cohere embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("cohere: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}

	opts := []option.RequestOption{
		cohereclient.WithToken(cfg.APIKey),
		cohereclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, cohereclient.WithBaseURL(cfg.BaseURL))
	}
	c := cohereclient.NewClient(opts...)

	return newEmbeddingService(c.V2, cfg), nil
}

func newEmbeddingService(client embedClient, cfg Config) *EmbeddingService {
	return &EmbeddingService{
		client:     client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		limiter:    ratelimit.New(cfg.RequestsPerMinute),
	}
}

// Embed generates a query embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.embed(ctx, []string{text}, cohere.EmbedInputTypeSearchQuery)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates document embeddings, MaxTexts texts per request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += MaxTexts {
		end := min(start+MaxTexts, len(texts))
		vectors, err := s.embed(ctx, texts[start:end], cohere.EmbedInputTypeSearchDocument)
		if err != nil {
			return nil, fmt.Errorf("embed texts %d-%d: %w", start, end-1, err)
		}
		embeddings = append(embeddings, vectors...)
	}
	return embeddings, nil
}

func (s *EmbeddingService) embed(ctx context.Context, texts []string, inputType cohere.EmbedInputType) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.client.Embed(ctx, &cohere.V2EmbedRequest{
		Texts:          texts,
		Model:          s.model,
		InputType:      inputType,
		EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
	})
	if err != nil {
		var apiErr *coherecore.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			s.limiter.RecordRateLimitError(0)
		}
		return nil, fmt.Errorf("cohere: embed request failed: %w", err)
	}
	if resp.Embeddings == nil || len(resp.Embeddings.Float) != len(texts) {
		return nil, fmt.Errorf("cohere: expected %d float embeddings", len(texts))
	}

	vectors := make([][]float32, 0, len(texts))
	for _, e := range resp.Embeddings.Float {
		v := make([]float32, 0, len(e))
		for _, f := range e {
			v = append(v, float32(f))
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the API key by embedding a single short query.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("cohere: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

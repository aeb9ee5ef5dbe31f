// Package ai provides factory functions for creating embedding service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	cohereembed "github.com/custodia-labs/pdfrank/internal/adapters/driven/embedding/cohere"
	geminiembed "github.com/custodia-labs/pdfrank/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/custodia-labs/pdfrank/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/pdfrank/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/pdfrank/internal/adapters/driven/embedding/tfidf"
	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// The offline TF-IDF provider is not pinged.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(
	ctx context.Context, settings *domain.EmbeddingSettings,
) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'pdfrank settings show' to check the configuration",
			domain.ErrEmbeddingUnavailable, err)
	}

	if settings.Provider == domain.AIProviderTFIDF {
		return svc, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'pdfrank settings show' to check the configuration",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(ctx context.Context, settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(pingCtx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
func CreateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no embedding settings", domain.ErrInvalidInput)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%s requires an API key (set %s)",
			settings.Provider.Description(), settings.Provider.APIKeyEnv())
	}

	switch settings.Provider {
	case domain.AIProviderTFIDF:
		return tfidf.NewEmbeddingService(), nil

	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.AIProviderCohere:
		return createCohereEmbedding(settings)

	case domain.AIProviderGemini:
		return createGeminiEmbedding(ctx, settings)

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// modelDimensions returns the configured override or the known size of the model.
func modelDimensions(settings *domain.EmbeddingSettings) int {
	if settings.Dimensions > 0 {
		return settings.Dimensions
	}
	return domain.EmbeddingDimensions()[settings.Model]
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := modelDimensions(settings)
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
		BatchSize:  settings.BatchSize,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
// Only an explicit dimensions override is sent to the API.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:            settings.APIKey,
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		Dimensions:        settings.Dimensions,
		BatchSize:         settings.BatchSize,
		RequestsPerMinute: settings.RequestsPerMinute,
	})
}

// createCohereEmbedding creates a Cohere embedding service.
func createCohereEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return cohereembed.NewEmbeddingService(cohereembed.Config{
		APIKey:            settings.APIKey,
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		Dimensions:        modelDimensions(settings),
		RequestsPerMinute: settings.RequestsPerMinute,
	})
}

// createGeminiEmbedding creates a Gemini embedding service.
func createGeminiEmbedding(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
		APIKey:            settings.APIKey,
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		Dimensions:        modelDimensions(settings),
		BatchSize:         settings.BatchSize,
		RequestsPerMinute: settings.RequestsPerMinute,
	})
}

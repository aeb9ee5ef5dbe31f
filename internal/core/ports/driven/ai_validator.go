package driven

import (
	"context"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// AIConfigValidator validates embedding provider configurations by testing connectivity.
type AIConfigValidator interface {
	// ValidateEmbedding creates the configured service and pings it.
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error
}

package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateEmbedding(t *testing.T) {
	validator := NewConfigValidator()

	tests := []struct {
		name    string
		config  *domain.EmbeddingSettings
		wantErr bool
	}{
		{"nil config", nil, true},
		{"unknown provider", &domain.EmbeddingSettings{Provider: "x"}, true},
		{"missing api key", &domain.EmbeddingSettings{Provider: domain.AIProviderGemini}, true},
		{"offline provider", &domain.EmbeddingSettings{Provider: domain.AIProviderTFIDF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmbedding(context.Background(), tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

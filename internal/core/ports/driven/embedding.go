// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - TF-IDF (offline, corpus-prepared)
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Cohere, Gemini
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in the same vector space.
	// The result is index-aligned with texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify connectivity before a run commits to the provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CorpusPreparer is implemented by embedding services whose vector space
// is derived from the texts being compared. Prepare must be called before
// Embed or EmbedBatch.
type CorpusPreparer interface {
	Prepare(ctx context.Context, corpus []string) error
}

package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderTFIDF is the built-in offline TF-IDF vectoriser.
	AIProviderTFIDF AIProvider = "tfidf"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderCohere is Cohere cloud API.
	AIProviderCohere AIProvider = "cohere"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderTFIDF, AIProviderOllama, AIProviderOpenAI, AIProviderCohere, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderCohere || p == AIProviderGemini
}

// IsLocal returns true if this provider runs without network access to a cloud API.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderTFIDF || p == AIProviderOllama
}

// APIKeyEnv returns the environment variable holding this provider's API key.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderCohere:
		return "COHERE_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderTFIDF:
		return "TF-IDF (offline)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderCohere:
		return "Cohere (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string `toml:"base_url"`

	// APIKey is the API key for cloud providers.
	APIKey string `toml:"api_key"`

	// Dimensions overrides the model's default vector size where the provider allows it.
	Dimensions int `toml:"dimensions"`

	// BatchSize caps the number of texts per provider request.
	BatchSize int `toml:"batch_size"`

	// RequestsPerMinute paces provider requests. Zero disables pacing.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// RunSettings holds the collection layout and pipeline knobs of a run.
type RunSettings struct {
	// TopK is the number of ranked sections written to the output.
	TopK int `toml:"top_k"`

	// Workers bounds the number of documents extracted concurrently.
	Workers int `toml:"workers"`

	// InputFile is the input artifact name inside a collection directory.
	InputFile string `toml:"input_file"`

	// PDFDir is the documents directory name inside a collection directory.
	PDFDir string `toml:"pdf_dir"`

	// OutputFile is the output artifact name inside a collection directory.
	OutputFile string `toml:"output_file"`

	// ValidatePDF enables structural validation before decoding.
	ValidatePDF bool `toml:"validate_pdf"`
}

// Settings holds all application settings.
type Settings struct {
	Embedding EmbeddingSettings `toml:"embedding"`
	Run       RunSettings       `toml:"run"`
}

// DefaultSettings returns settings that work offline out of the box.
func DefaultSettings() Settings {
	return Settings{
		Embedding: EmbeddingSettings{
			Provider:  AIProviderTFIDF,
			BatchSize: 64,
		},
		Run: RunSettings{
			TopK:        DefaultTopK,
			Workers:     4,
			InputFile:   "challenge1b_input.json",
			PDFDir:      "PDFs",
			OutputFile:  "challenge1b_output.json",
			ValidatePDF: true,
		},
	}
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: embedding provider %q", ErrUnsupportedType, s.Embedding.Provider)
	}
	if s.Run.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, s.Run.TopK)
	}
	if s.Run.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidInput, s.Run.Workers)
	}
	return nil
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderTFIDF,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderCohere,
		AIProviderGemini,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderTFIDF:  "tfidf",
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderCohere: "embed-multilingual-v3.0",
		AIProviderGemini: "text-embedding-004",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Cohere models
		"embed-multilingual-v3.0": 1024,
		"embed-english-v3.0":      1024,
		// Gemini models
		"text-embedding-004": 768,
	}
}

package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// Environment variables overriding the settings file.
const (
	EnvProvider          = "PDFRANK_EMBEDDING_PROVIDER"
	EnvModel             = "PDFRANK_EMBEDDING_MODEL"
	EnvBaseURL           = "PDFRANK_EMBEDDING_BASE_URL"
	EnvRequestsPerMinute = "PDFRANK_EMBEDDING_RPM"
)

// DefaultConfigFile is the settings file name inside the config directory.
const DefaultConfigFile = "config.toml"

// SettingsStore is a file-based implementation of driven.SettingsStore using TOML.
// Values absent from the file keep their defaults; environment variables win over the file.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store.
// If filePath is empty, defaults to ~/.pdfrank/config.toml.
func NewSettingsStore(filePath string) (*SettingsStore, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		filePath = filepath.Join(home, ".pdfrank", DefaultConfigFile)
	}
	return &SettingsStore{filePath: filePath}, nil
}

// Load returns the effective settings.
// A missing settings file is not an error.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No settings file yet, defaults apply.
	case err != nil:
		return settings, err
	default:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidInput, s.filePath, err)
		}
	}

	if err := applyEnv(&settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// applyEnv overlays environment variables onto settings.
// The provider's API key variable is only consulted when no key is configured.
func applyEnv(settings *domain.Settings) error {
	e := &settings.Embedding

	if v, ok := os.LookupEnv(EnvProvider); ok && v != "" {
		e.Provider = domain.AIProvider(v)
	}
	if v, ok := os.LookupEnv(EnvModel); ok && v != "" {
		e.Model = v
	}
	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		e.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvRequestsPerMinute); ok && v != "" {
		rpm, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", domain.ErrInvalidInput, EnvRequestsPerMinute, v)
		}
		e.RequestsPerMinute = rpm
	}
	if e.APIKey == "" {
		if env := e.Provider.APIKeyEnv(); env != "" {
			e.APIKey = os.Getenv(env)
		}
	}
	return nil
}

// Save persists settings to the TOML file with restricted permissions.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// LoadDotEnv loads variables from .env files into the process environment
// without overriding variables that are already set. Missing files are ignored.
// With no arguments, ./.env is loaded.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

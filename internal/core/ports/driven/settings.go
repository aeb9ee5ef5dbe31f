package driven

import "github.com/custodia-labs/pdfrank/internal/core/domain"

// SettingsStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and environment overrides.
type SettingsStore interface {
	// Load returns the effective settings: defaults overlaid by the stored file and the environment.
	Load() (domain.Settings, error)

	// Save persists settings to storage.
	Save(settings domain.Settings) error

	// Path returns the configuration file path.
	Path() string
}

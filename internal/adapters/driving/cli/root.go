// Package cli provides the cobra command tree for pdfrank.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driving"
	"github.com/custodia-labs/pdfrank/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Dependencies holds the constructors the commands use to reach the core.
type Dependencies struct {
	// NewSettingsStore opens the settings store at path. An empty path selects the default location.
	NewSettingsStore func(path string) (driven.SettingsStore, error)

	// NewAnalysisService builds the pipeline for the effective settings.
	NewAnalysisService func(ctx context.Context, settings domain.Settings) (driving.AnalysisService, error)

	// NewExtractionService builds a single-document extractor for the effective settings.
	NewExtractionService func(settings domain.Settings) driving.ExtractionService

	// Artifacts reads output artifacts for browsing.
	Artifacts driven.ArtifactStore

	// Validator checks embedding provider connectivity.
	Validator driven.AIConfigValidator
}

// deps holds the current dependencies.
var deps *Dependencies

// errNotConfigured is returned when a command runs before SetDependencies.
var errNotConfigured = errors.New("cli dependencies not configured")

var rootCmd = &cobra.Command{
	Use:   "pdfrank",
	Short: "Rank document sections for a persona and a task",
	Long: `pdfrank extracts titled sections from a collection of PDFs and ranks them
by semantic relevance to a persona and the job they need to get done.

Run 'pdfrank run <collection-dir>' on a directory holding challenge1b_input.json
and a PDFs/ folder to produce challenge1b_output.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.pdfrank/config.toml)")
}

// SetDependencies sets the constructors used by all commands.
func SetDependencies(d *Dependencies) {
	deps = d
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings opens the settings store selected by --config and returns its effective settings.
func loadSettings() (driven.SettingsStore, domain.Settings, error) {
	if deps == nil || deps.NewSettingsStore == nil {
		return nil, domain.Settings{}, errNotConfigured
	}
	store, err := deps.NewSettingsStore(configPath)
	if err != nil {
		return nil, domain.Settings{}, fmt.Errorf("failed to open settings: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return nil, domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return store, settings, nil
}

// Command pdfrank ranks the sections of a PDF collection for a persona and a task.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/pdfrank/internal/adapters/driven/ai"
	"github.com/custodia-labs/pdfrank/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfrank/internal/adapters/driven/layout/layoutjson"
	"github.com/custodia-labs/pdfrank/internal/adapters/driven/layout/pdf"
	"github.com/custodia-labs/pdfrank/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/pdfrank/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driving"
	"github.com/custodia-labs/pdfrank/internal/core/services"
	"github.com/custodia-labs/pdfrank/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := file.LoadDotEnv(); err != nil {
		logger.Warn("%v", err)
	}

	artifacts := jsonfile.NewArtifactStore()
	var closers []func() error
	defer func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Debug("close: %v", err)
			}
		}
	}()

	cli.SetVersion(version)
	cli.SetDependencies(&cli.Dependencies{
		NewSettingsStore: func(path string) (driven.SettingsStore, error) {
			return file.NewSettingsStore(path)
		},
		NewAnalysisService: func(ctx context.Context, settings domain.Settings) (driving.AnalysisService, error) {
			embedder, err := ai.CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
			if err != nil {
				return nil, err
			}
			closers = append(closers, embedder.Close)

			svc := services.NewAnalysisService(newExtractor(settings), services.NewRelevanceRanker(embedder), artifacts)
			svc.SetWorkers(settings.Run.Workers)
			return svc, nil
		},
		NewExtractionService: func(settings domain.Settings) driving.ExtractionService {
			return newExtractor(settings)
		},
		Artifacts: artifacts,
		Validator: ai.NewConfigValidator(),
	})

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

// newExtractor registers the PDF and layout-dump readers.
func newExtractor(settings domain.Settings) *services.Extractor {
	extractor := services.NewExtractor(pdf.NewReader(), layoutjson.NewReader())
	if settings.Run.ValidatePDF {
		extractor.SetValidator(pdf.NewValidator())
	}
	return extractor
}

package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

var (
	runTopK       int
	runWorkers    int
	runProvider   string
	runModel      string
	runInput      string
	runPDFDir     string
	runOutput     string
	runNoValidate bool
	runNoWrite    bool
)

var runCmd = &cobra.Command{
	Use:   "run <collection-dir>",
	Short: "Rank the sections of a document collection",
	Long: `Reads the input artifact of a collection, extracts titled sections from every
referenced PDF, drops sections that violate the job's keyword constraints and ranks
the rest by semantic similarity to "<persona role>: <task>".

The collection directory holds challenge1b_input.json and a PDFs/ folder; the
result is written to challenge1b_output.json. Each name can be overridden.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runTopK, "top-k", "k", 0, "number of ranked sections to output (default from settings)")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "documents extracted concurrently (default from settings)")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "embedding provider (tfidf, ollama, openai, cohere, gemini)")
	runCmd.Flags().StringVar(&runModel, "model", "", "embedding model name")
	runCmd.Flags().StringVar(&runInput, "input", "", "input artifact name inside the collection")
	runCmd.Flags().StringVar(&runPDFDir, "pdf-dir", "", "documents directory name inside the collection")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output artifact name inside the collection")
	runCmd.Flags().BoolVar(&runNoValidate, "no-validate", false, "skip structural PDF validation")
	runCmd.Flags().BoolVar(&runNoWrite, "no-write", false, "print the ranking without writing the output artifact")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, &settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if deps.NewAnalysisService == nil {
		return errNotConfigured
	}

	ctx := cmd.Context()
	svc, err := deps.NewAnalysisService(ctx, settings)
	if err != nil {
		return err
	}

	cfg := domain.NewRunConfig(args[0], settings.Run)
	cfg.RunID = uuid.NewString()
	if runNoWrite {
		cfg.OutputPath = ""
	}

	result, err := svc.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printRunSummary(cmd, cfg, result)
	return nil
}

// applyRunFlags overlays explicitly set flags on the loaded settings.
func applyRunFlags(cmd *cobra.Command, settings *domain.Settings) {
	flags := cmd.Flags()
	if flags.Changed("top-k") {
		settings.Run.TopK = runTopK
	}
	if flags.Changed("workers") {
		settings.Run.Workers = runWorkers
	}
	if flags.Changed("provider") {
		settings.Embedding.Provider = domain.AIProvider(runProvider)
		if !flags.Changed("model") {
			settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
		}
	}
	if flags.Changed("model") {
		settings.Embedding.Model = runModel
	}
	if flags.Changed("input") {
		settings.Run.InputFile = runInput
	}
	if flags.Changed("pdf-dir") {
		settings.Run.PDFDir = runPDFDir
	}
	if flags.Changed("output") {
		settings.Run.OutputFile = runOutput
	}
	if runNoValidate {
		settings.Run.ValidatePDF = false
	}
}

func printRunSummary(cmd *cobra.Command, cfg domain.RunConfig, result *domain.AnalysisResult) {
	cmd.Printf("Persona: %s\n", result.Metadata.Persona)
	cmd.Printf("Job: %s\n", result.Metadata.JobToBeDone)
	cmd.Printf("Documents: %d\n", len(result.Metadata.InputDocuments))
	cmd.Println()

	if len(result.ExtractedSections) == 0 {
		cmd.Println("No compliant sections found.")
	} else {
		cmd.Println("Ranked sections:")
		for _, s := range result.ExtractedSections {
			cmd.Printf("  [%d] %s (%s, page %d)\n", s.ImportanceRank, s.SectionTitle, s.Document, s.PageNumber)
		}
	}

	if cfg.OutputPath != "" {
		cmd.Println()
		cmd.Printf("Output: %s\n", cfg.OutputPath)
	}
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

var (
	extractJSON       bool
	extractNoValidate bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the sections of one document",
	Long: `Extracts titled sections from a single PDF or layout dump (.json) and prints
them in document order. Useful for checking how headings are detected before a run.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output sections as JSON")
	extractCmd.Flags().BoolVar(&extractNoValidate, "no-validate", false, "skip structural PDF validation")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings()
	if err != nil {
		return err
	}
	if deps.NewExtractionService == nil {
		return errNotConfigured
	}
	if extractNoValidate {
		settings.Run.ValidatePDF = false
	}

	sections, err := deps.NewExtractionService(settings).ExtractFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractJSON {
		return outputSectionsJSON(cmd, sections)
	}
	outputSectionsTable(cmd, sections)
	return nil
}

func outputSectionsJSON(cmd *cobra.Command, sections []domain.Section) error {
	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSectionsTable(cmd *cobra.Command, sections []domain.Section) {
	if len(sections) == 0 {
		cmd.Println("No sections found.")
		return
	}

	cmd.Printf("Sections (%d):\n\n", len(sections))
	for i, s := range sections {
		cmd.Printf("[%d] %s (page %d)\n", i+1, s.Title, s.PageNumber)
		if preview := s.RefinedText(); preview != "" {
			cmd.Printf("    %s\n", truncate(preview, 100))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

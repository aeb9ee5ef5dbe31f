package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <output.json>",
	Short: "Browse a ranking in the terminal UI",
	Long: `Opens an output artifact produced by 'pdfrank run' in an interactive viewer.

Controls:
  ↑/k, ↓/j - Navigate sections
  g, G     - First / last section
  Enter    - Show refined text
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if deps == nil || deps.Artifacts == nil {
		return errNotConfigured
	}

	result, err := deps.Artifacts.LoadResult(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	app, err := tui.NewApp(result)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Package logger provides console logging for pdfrank.
// Progress, success, warning and error messages are always printed to stderr.
// Debug, info and section messages are only printed when verbose mode is enabled
// via the --verbose flag, to help users follow the extraction and ranking pipeline.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	styled            = isTerminal(os.Stderr)
)

var (
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true)
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
// Prefixes are colourised only when w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	styled = isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// write prints one prefixed line. Callers hold mu so concurrent lines do not interleave.
func write(style lipgloss.Style, prefix, format string, args ...any) {
	if styled {
		prefix = style.Render(prefix)
	}
	fmt.Fprintf(output, prefix+" "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	header := fmt.Sprintf("=== %s ===", name)
	if styled {
		header = sectionStyle.Render(header)
	}
	fmt.Fprintf(output, "\n%s\n", header)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
	}
}

// Progress prints a pipeline progress message.
func Progress(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(progressStyle, "[..]", format, args...)
}

// Success prints a completion message.
func Success(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(successStyle, "[OK]", format, args...)
}

// Warn prints a warning message for a recoverable condition.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(warnStyle, "[WARN]", format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(errorStyle, "[ERROR]", format, args...)
}

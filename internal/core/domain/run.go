package domain

import "path/filepath"

// RunConfig names the artifacts of one pipeline invocation.
type RunConfig struct {
	// RunID identifies the invocation in logs.
	RunID string

	// InputPath is the input artifact.
	InputPath string

	// DocumentDir is where referenced documents are resolved.
	DocumentDir string

	// OutputPath is where the output artifact is written. Empty skips writing.
	OutputPath string

	// TopK is the number of ranked sections projected into the output.
	TopK int
}

// NewRunConfig lays out a collection directory using the names in run.
func NewRunConfig(collectionDir string, run RunSettings) RunConfig {
	return RunConfig{
		InputPath:   filepath.Join(collectionDir, run.InputFile),
		DocumentDir: filepath.Join(collectionDir, run.PDFDir),
		OutputPath:  filepath.Join(collectionDir, run.OutputFile),
		TopK:        run.TopK,
	}
}

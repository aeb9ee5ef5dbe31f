// Package domain defines the core entities for pdfrank.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document, Page, Block, Line, TextSpan: styled page layout supplied by a layout reader
//   - DominantStyle: the body-text style of a page
//   - Section, RankedSection: titled content extracted from a document
//   - AnalysisRequest, AnalysisResult: the input and output artifacts of a run
//   - Settings: embedding provider and run configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

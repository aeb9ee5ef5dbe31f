// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Section extraction is built from three pure functions:
//
//   - DominantStyle: the majority font style of a page
//   - IsTitle: whether a block is a section title given that style
//   - ExtractSections: a fold over every block of a document
//
// Ranking applies a ConstraintFilter and then scores the survivors
// with an EmbeddingService (RelevanceRanker).
//
// Services are pure Go with no CGO; golang.org/x/sync is the only
// module used beyond the standard library.
package services

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LayoutReader: Decodes a document file into styled page layout (PDF, layout dumps)
//   - EmbeddingService: Turns text into fixed-length vectors
//   - ArtifactStore: Reads the input artifact and writes the output artifact
//   - SettingsStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentValidator: Structural check before decoding. Without it, corrupt files fail during decoding.
//   - CorpusPreparer: Implemented by embedding services that must see the corpus first (TF-IDF).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or document kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is misconfigured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Run Errors.

	// ErrInputNotFound indicates the input artifact or a referenced document does not exist.
	// A missing document is recovered by skipping it; a missing input artifact aborts the run.
	ErrInputNotFound = errors.New("input not found")

	// ErrMalformedInput indicates required persona or job fields are absent,
	// or the input artifact cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrExtractionFailed indicates a document could not be decoded.
	// There is no partial-document recovery.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrEmbeddingFailed indicates the embedding collaborator returned an error
	// or an unusable vector. There is no fallback scoring.
	ErrEmbeddingFailed = errors.New("embedding failed")
)

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown normaliser, chunker or backend type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates text could not be extracted from a file.
	// The file is skipped and ingestion continues.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrIndexUnavailable indicates the term index could not be loaded or built.
	// Retrieval degrades to keyword-only scoring.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Use-cases are generated from templates instead.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrGenerationFailed indicates the LLM delegate failed to produce
	// a usable answer (transport error, non-2xx status or bad payload).
	ErrGenerationFailed = errors.New("generation failed")

	// ErrNoJSON indicates a response contained no balanced JSON value.
	ErrNoJSON = errors.New("no JSON value in response")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")

	// ErrRateLimited indicates the delegate rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusMalformed indicates the corpus file is not well-formed
	// tabular text. Fatal at startup - no index can be produced.
	ErrCorpusMalformed = errors.New("corpus malformed")

	// ErrCorpusMissing indicates the corpus file does not exist.
	// Fatal - the system cannot operate without its knowledge source.
	ErrCorpusMissing = errors.New("corpus file missing")

	// ErrEmbeddingFailed indicates an embedding call failed, fully or
	// partially. A partially embedded batch is never persisted.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIndexStorage indicates the persisted index is missing, corrupt,
	// or could not be written.
	ErrIndexStorage = errors.New("index storage failure")

	// ErrIndexUnavailable indicates no loaded index is available.
	// Retrieval is impossible without one.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrModelCall indicates a rephrase or generate call failed or
	// timed out. Aborts only the current turn.
	ErrModelCall = errors.New("model call failed")

	// ErrLLMUnavailable indicates the chat model is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding model is not
	// configured. Indexing and retrieval are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

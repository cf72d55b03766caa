package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrEmbeddingRepositoryRequired is returned when an embedding repository is not provided.
	ErrEmbeddingRepositoryRequired = errors.New("embedding repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidChunking is returned when chunk size and overlap cannot
	// produce terminating output (overlap must be smaller than chunk size).
	ErrInvalidChunking = errors.New("overlap must be smaller than chunk size")

	// ErrVectorCountMismatch is returned when the embedding provider returns
	// a different number of vectors than chunks submitted.
	ErrVectorCountMismatch = errors.New("embedding count does not match chunk count")
)

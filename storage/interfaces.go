package storage

import (
	"context"

	"github.com/poiesic/pitchcraft/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DeckRepository provides operations for managing pitch decks.
type DeckRepository interface {
	Repository
	// AddDeck adds a deck to storage.
	// For a deck with ID=0, generates a new ID from sequence.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the deck with generated ID and timestamps populated.
	AddDeck(ctx context.Context, deck *core.Deck) (*core.Deck, error)

	// UpdateDeck updates an existing deck.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the deck doesn't exist.
	UpdateDeck(ctx context.Context, deck *core.Deck) (*core.Deck, error)

	// DeleteDeck removes a deck by ID.
	// Also removes associated indices. The caller is responsible for
	// removing dependent slides, documents, and embeddings.
	// Returns ErrNotFound if the deck doesn't exist.
	DeleteDeck(ctx context.Context, id core.ID) error

	// GetDeck retrieves a single deck by ID.
	// Returns ErrNotFound if the deck doesn't exist.
	GetDeck(ctx context.Context, id core.ID) (*core.Deck, error)

	// GetDecksByUser retrieves all decks owned by a user,
	// ordered by InsertedAt descending (newest first).
	GetDecksByUser(ctx context.Context, userID string) ([]*core.Deck, error)
}

// SlideRepository provides operations for managing slides within decks.
type SlideRepository interface {
	Repository
	// AddSlide adds a slide to storage at the end of its deck's order.
	// The slide's OrderIndex is assigned by the repository; any value
	// set by the caller is overwritten.
	// Returns the slide with generated ID, order, and timestamps populated.
	AddSlide(ctx context.Context, slide *core.Slide) (*core.Slide, error)

	// UpdateSlide updates an existing slide's content fields.
	// OrderIndex changes must go through ReorderSlides.
	// Returns ErrNotFound if the slide doesn't exist.
	UpdateSlide(ctx context.Context, slide *core.Slide) (*core.Slide, error)

	// DeleteSlide removes a slide by ID and closes the resulting gap in
	// its deck's order.
	// Returns ErrNotFound if the slide doesn't exist.
	DeleteSlide(ctx context.Context, id core.ID) error

	// GetSlide retrieves a single slide by ID.
	// Returns ErrNotFound if the slide doesn't exist.
	GetSlide(ctx context.Context, id core.ID) (*core.Slide, error)

	// GetSlidesByDeck retrieves all slides of a deck ordered by OrderIndex.
	GetSlidesByDeck(ctx context.Context, deckID core.ID) ([]*core.Slide, error)

	// ReorderSlides rewrites the order of a deck's slides to match the
	// given ID sequence. Every slide of the deck must appear exactly once.
	// Returns ErrInvalidQuery if the sequence doesn't cover the deck.
	ReorderSlides(ctx context.Context, deckID core.ID, orderedIDs []core.ID) error
}

// SectionRepository provides operations for managing canonical pitch sections.
type SectionRepository interface {
	Repository
	// AddSections adds one or more sections to storage.
	// Uses content-based IDs (IDFromContent of the section name), so
	// adding a section with an existing name overwrites it.
	// Returns the sections with IDs and timestamps populated.
	AddSections(ctx context.Context, sections ...*core.Section) ([]*core.Section, error)

	// GetSection retrieves a single section by ID.
	// Returns ErrNotFound if the section doesn't exist.
	GetSection(ctx context.Context, id core.ID) (*core.Section, error)

	// GetSectionByName finds a section by its exact name.
	// Returns ErrNotFound if no matching section exists.
	GetSectionByName(ctx context.Context, name string) (*core.Section, error)

	// GetSections retrieves all sections ordered by SuggestedOrder.
	GetSections(ctx context.Context) ([]*core.Section, error)
}

// DocumentRepository provides operations for managing uploaded documents.
type DocumentRepository interface {
	Repository
	// AddDocument adds a document to storage.
	// For a document with ID=0, generates a new ID from sequence.
	// Returns the document with generated ID and timestamp populated.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentsByDeck retrieves all documents of a deck,
	// ordered by InsertedAt ascending (upload order).
	GetDocumentsByDeck(ctx context.Context, deckID core.ID) ([]*core.Document, error)

	// DeleteDocument removes a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error
}

// EmbeddingRepository provides operations for managing embedded document chunks.
type EmbeddingRepository interface {
	Repository
	// AddEmbeddings adds one or more embedding records to storage.
	// For records with ID=0, generates new IDs from sequence.
	// Returns the records with generated IDs and timestamps populated.
	AddEmbeddings(ctx context.Context, records ...*core.EmbeddingRecord) ([]*core.EmbeddingRecord, error)

	// UpdateEmbeddings replaces existing embedding records. Used by
	// reindexing to swap vectors after an embedding model change.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateEmbeddings(ctx context.Context, records ...*core.EmbeddingRecord) ([]*core.EmbeddingRecord, error)

	// GetEmbeddingsByDeck retrieves all embedding records of a deck.
	GetEmbeddingsByDeck(ctx context.Context, deckID core.ID) ([]*core.EmbeddingRecord, error)

	// DeleteEmbeddingsByDeck removes all embedding records of a deck.
	// Removing embeddings for a deck with none is not an error.
	DeleteEmbeddingsByDeck(ctx context.Context, deckID core.ID) error

	// FindSimilar finds embedding records of a deck similar to the given vector.
	// Returns records with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, deckID core.ID, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// CheckpointRepository persists resumable progress markers for maintenance
// tasks. Unlike the other repositories it is keyed by task name rather
// than record ID.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint, overwriting any previous one
	// for the same task.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a task.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, task string) (*core.Checkpoint, error)

	// ClearCheckpoint removes the checkpoint for a task.
	// Clearing a missing checkpoint is not an error.
	ClearCheckpoint(ctx context.Context, task string) error
}

// AssetRepository provides object storage for slide assets (images, logos,
// charts). Objects are addressed by path; metadata records are maintained
// alongside the bytes.
type AssetRepository interface {
	Repository
	// PutObject stores bytes at a path, overwriting any existing object.
	// Returns the asset metadata record for the stored object.
	PutObject(ctx context.Context, path, mediaType string, data []byte) (*core.Asset, error)

	// GetObject retrieves the bytes stored at a path.
	// Returns ErrNotFound if no object exists at the path.
	GetObject(ctx context.Context, path string) ([]byte, error)

	// ListObjects retrieves metadata for all objects under a path prefix,
	// ordered by path.
	ListObjects(ctx context.Context, prefix string) ([]*core.Asset, error)

	// DeleteObject removes the object and its metadata at a path.
	// Returns ErrNotFound if no object exists at the path.
	DeleteObject(ctx context.Context, path string) error
}

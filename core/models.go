package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Sender identifies the source of a chat turn.
type Sender int

const (
	// SenderUser represents the human user.
	SenderUser Sender = iota + 1
	// SenderAssistant represents the AI assistant.
	SenderAssistant
)

// DeckStatus tracks the lifecycle of a pitch deck.
type DeckStatus string

const (
	DeckStatusDraft     DeckStatus = "draft"
	DeckStatusInReview  DeckStatus = "in_review"
	DeckStatusFinalized DeckStatus = "finalized"
)

// Deck represents a pitch deck project owned by a user.
type Deck struct {
	Id           ID
	UserId       string
	Title        string
	CompanyName  string
	Description  string
	Industry     string
	FundingStage string
	FundingGoal  string
	Status       DeckStatus
	Version      int
	KeyMetrics   map[string]string // Free-form metric name -> value pairs
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// Slide represents a single slide within a deck. Slides are ordered by
// OrderIndex, which is dense and zero-based within a deck.
type Slide struct {
	Id         ID
	DeckId     ID
	SectionId  ID // Which canonical section this slide belongs to (0 if none)
	Title      string
	Content    string
	OrderIndex int
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Section represents a canonical pitch-deck section such as "Problem" or
// "Ask". Sections are shared across decks and deduplicated by name.
type Section struct {
	Id             ID
	Name           string
	Description    string
	SuggestedOrder int
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// ContentID returns the deterministic ID for a section derived from its name.
func (s *Section) ContentID() ID {
	return IDFromContent(s.Name)
}

// Document represents an uploaded source document attached to a deck.
// FullText holds the extracted text for the whole file.
type Document struct {
	Id         ID
	DeckId     ID
	Filename   string
	MediaType  string
	FullText   string
	InsertedAt time.Time
}

// ChunkMetadata describes where an embedded chunk came from.
type ChunkMetadata struct {
	Source    string // Original filename
	Chunk     int    // 1-based chunk index within the source
	MediaType string
}

// EmbeddingRecord represents one embedded chunk of an uploaded document.
// Records are immutable after write except during reindexing, which may
// replace the Vector.
type EmbeddingRecord struct {
	Id         ID
	DeckId     ID
	Content    string
	Vector     []float32
	Metadata   ChunkMetadata
	InsertedAt time.Time
}

// Asset represents a binary object (image, logo, chart) stored for a deck.
// Assets are addressed by path; the convention is "decks/<deckID>/<filename>".
type Asset struct {
	Id         ID
	Path       string // Object path within the asset store
	Filename   string
	Type       string // Media type of the stored bytes
	SizeBytes  int64
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Checkpoint records resumable progress for long-running maintenance tasks
// such as reindexing a deck's embeddings.
type Checkpoint struct {
	Task         string // Task identifier, e.g. "reindex:42"
	LastRecordId ID     // Last record fully processed
	Processed    int
	UpdatedAt    time.Time
}

// ChatTurn is a single turn in an assistant conversation. Turns are
// ephemeral session state and are never persisted.
type ChatTurn struct {
	Sender Sender
	Text   string
}

// SearchResult represents a search result with the full record and relevance score.
type SearchResult struct {
	Record *EmbeddingRecord
	Score  float32
}

package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TextExtractor extracts plain text from uploaded file bytes.
// Implementations must be thread-safe for concurrent use.
type TextExtractor interface {
	// ExtractText extracts the readable text content from a file.
	// The media type tells the extractor how to interpret the bytes.
	// An empty string with a nil error is a legal result: the file was
	// readable but contained no text (e.g. a blank page or a decorative image).
	// Returns an error if extraction itself fails.
	ExtractText(ctx context.Context, data []byte, mediaType string) (string, error)
}

// ChatStreamer produces streamed assistant responses for a conversation history.
// Implementations must be thread-safe for concurrent use.
type ChatStreamer interface {
	// StreamChat starts generating a response to the given history and
	// returns a stream of response fragments. The final history entry is
	// the user message being answered. The returned stream must be
	// consumed until Recv reports io.EOF or an error.
	StreamChat(ctx context.Context, history []ChatMessage) (ChatStream, error)
}

// ChatStream is a pull-based stream of response fragments.
type ChatStream interface {
	// Recv returns the next fragment of the response. It returns io.EOF
	// when the response is complete, or another error if generation
	// failed partway through.
	Recv() (Fragment, error)
}

// Fragment is one piece of a streamed response.
type Fragment interface {
	// Text returns the textual content of the fragment. A fragment that
	// carries no usable text returns an error; callers should skip such
	// fragments rather than abort the stream.
	Text() (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, TextExtractor, and ChatStreamer
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// TextExtractor returns the document text extraction service.
	// The returned TextExtractor is safe for concurrent use.
	TextExtractor() TextExtractor

	// ChatStreamer returns the streaming chat service.
	// The returned ChatStreamer is safe for concurrent use.
	ChatStreamer() ChatStreamer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

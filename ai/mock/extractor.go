package mock

import (
	"context"
	"strings"
)

// MockTextExtractor is a test double for ai.TextExtractor.
// It allows custom behavior injection via function fields.
type MockTextExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, uses default behavior: decode the bytes as UTF-8 text.
	ExtractTextFunc func(ctx context.Context, data []byte, mediaType string) (string, error)

	callCount int
	lastType  string
}

// NewMockTextExtractor creates a mock text extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockTextExtractor() *MockTextExtractor {
	return &MockTextExtractor{}
}

// ExtractText extracts text from file bytes.
// Default behavior: treat the bytes as UTF-8 text regardless of media type.
// This makes any []byte("...") input usable as a test document.
func (m *MockTextExtractor) ExtractText(ctx context.Context, data []byte, mediaType string) (string, error) {
	m.callCount++
	m.lastType = mediaType

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, data, mediaType)
	}

	return strings.TrimSpace(string(data)), nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockTextExtractor) CallCount() int {
	return m.callCount
}

// LastMediaType returns the media type passed to the most recent call.
func (m *MockTextExtractor) LastMediaType() string {
	return m.lastType
}

// Reset clears the call count and custom functions.
func (m *MockTextExtractor) Reset() {
	m.callCount = 0
	m.lastType = ""
	m.ExtractTextFunc = nil
}

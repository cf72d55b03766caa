package mock

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/poiesic/pitchcraft/ai"
)

// MockChatStreamer is a test double for ai.ChatStreamer.
// It allows custom behavior injection via function fields, or scripted
// fragment sequences via Script.
type MockChatStreamer struct {
	// StreamChatFunc is called by StreamChat if set.
	// If nil, uses Script, or default behavior when Script is empty.
	StreamChatFunc func(ctx context.Context, history []ai.ChatMessage) (ai.ChatStream, error)

	// Script, when non-nil, is returned one element at a time from the
	// streams produced by StreamChat. Each call to StreamChat replays the
	// full script from the beginning.
	Script []ai.Fragment

	// StreamErr, when set, terminates scripted streams with this error
	// after all fragments have been delivered (instead of io.EOF).
	StreamErr error

	callCount   int
	lastHistory []ai.ChatMessage
}

// NewMockChatStreamer creates a mock chat streamer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockStreamer().
func NewMockChatStreamer() *MockChatStreamer {
	return &MockChatStreamer{}
}

// StreamChat returns a stream of response fragments.
// Default behavior: echo the last user message back word by word.
func (m *MockChatStreamer) StreamChat(ctx context.Context, history []ai.ChatMessage) (ai.ChatStream, error) {
	m.callCount++
	m.lastHistory = history

	if m.StreamChatFunc != nil {
		return m.StreamChatFunc(ctx, history)
	}

	if m.Script != nil {
		return &ScriptedStream{Fragments: m.Script, Err: m.StreamErr}, nil
	}

	// Default: stream the last user message back one word at a time
	var last string
	for _, msg := range history {
		if msg.Role == ai.RoleUser {
			last = msg.Content
		}
	}

	words := strings.Fields(last)
	fragments := make([]ai.Fragment, len(words))
	for i, word := range words {
		if i < len(words)-1 {
			word += " "
		}
		fragments[i] = TextFragment(word)
	}
	return &ScriptedStream{Fragments: fragments}, nil
}

// CallCount returns the number of times StreamChat was called.
func (m *MockChatStreamer) CallCount() int {
	return m.callCount
}

// LastHistory returns the history passed to the most recent call.
func (m *MockChatStreamer) LastHistory() []ai.ChatMessage {
	return m.lastHistory
}

// Reset clears the call count, script, and custom functions.
func (m *MockChatStreamer) Reset() {
	m.callCount = 0
	m.lastHistory = nil
	m.StreamChatFunc = nil
	m.Script = nil
	m.StreamErr = nil
}

// ScriptedStream is an ai.ChatStream that replays a fixed fragment sequence.
type ScriptedStream struct {
	Fragments []ai.Fragment
	// Err, when set, is returned after the fragments instead of io.EOF.
	Err error

	pos int
}

// Recv returns the next scripted fragment, then io.EOF (or Err if set).
func (s *ScriptedStream) Recv() (ai.Fragment, error) {
	if s.pos >= len(s.Fragments) {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, io.EOF
	}
	f := s.Fragments[s.pos]
	s.pos++
	return f, nil
}

// TextFragment is a well-formed fragment carrying plain text.
type TextFragment string

// Text returns the fragment content.
func (f TextFragment) Text() (string, error) {
	return string(f), nil
}

// BrokenFragment is a fragment whose Text accessor always fails.
// Accumulators are expected to skip it.
type BrokenFragment struct{}

// Text always returns an error.
func (BrokenFragment) Text() (string, error) {
	return "", errors.New("fragment has no text content")
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/core"
)

// DefaultGreeting is the assistant turn a new conversation opens with when
// greetings are enabled.
const DefaultGreeting = "Welcome! I'm here to help you build your pitch deck. What would you like to work on first?"

// emptyResponsePlaceholder replaces an assistant turn that ended the stream
// with no usable text.
const emptyResponsePlaceholder = "(No response generated)"

// state of the single in-flight send.
type state int

const (
	stateIdle state = iota
	stateSending
	stateStreaming
)

// Retriever supplies document snippets relevant to a query. A Conversation
// with a retriever injects the snippets as a system message so the model
// can ground its answers in the deck's uploaded documents.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

// Conversation owns the ordered turn list of one assistant chat session.
// Turns are append-only except for the in-place growth of the newest
// assistant turn while its stream is open. All methods are safe for
// concurrent use; at most one Send streams at a time.
type Conversation struct {
	streamer  ai.ChatStreamer
	retriever Retriever
	logger    *slog.Logger

	mu    sync.Mutex
	turns []core.ChatTurn
	state state
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithGreeting seeds the conversation with an opening assistant turn.
// An empty text uses DefaultGreeting.
func WithGreeting(text string) Option {
	return func(c *Conversation) {
		if text == "" {
			text = DefaultGreeting
		}
		c.turns = append(c.turns, core.ChatTurn{Sender: core.SenderAssistant, Text: text})
	}
}

// WithRetriever sets a snippet retriever consulted before each send.
// Retrieval failures are logged and skipped; they never block a send.
func WithRetriever(retriever Retriever) Option {
	return func(c *Conversation) {
		c.retriever = retriever
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conversation) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewConversation creates a conversation backed by the given streamer.
func NewConversation(streamer ai.ChatStreamer, opts ...Option) (*Conversation, error) {
	if streamer == nil {
		return nil, ErrStreamerRequired
	}

	c := &Conversation{
		streamer: streamer,
		logger:   slog.Default().With("component", "chat"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Turns returns a snapshot of the conversation's turns in order.
func (c *Conversation) Turns() []core.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	turns := make([]core.ChatTurn, len(c.turns))
	copy(turns, c.turns)
	return turns
}

// Sending reports whether a send is currently in flight.
func (c *Conversation) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != stateIdle
}

// Send submits a user message and consumes the streamed response into the
// turn list. It blocks until the stream completes.
//
// Send returns ErrEmptyMessage for whitespace-only input and ErrSendInFlight
// when another send is still streaming. Stream failures do not produce an
// error: they are recorded as one assistant turn reading "Error: " plus the
// failure message, and Send returns nil.
func (c *Conversation) Send(ctx context.Context, message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state != stateIdle {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.state = stateSending
	c.turns = append(c.turns, core.ChatTurn{Sender: core.SenderUser, Text: trimmed})
	history := c.buildHistory()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state = stateIdle
		c.mu.Unlock()
	}()

	if c.retriever != nil {
		history = c.withRetrievedContext(ctx, trimmed, history)
	}

	stream, err := c.streamer.StreamChat(ctx, history)
	if err != nil {
		c.logger.Error("failed to start response stream", "err", err)
		c.appendAssistant("Error: " + err.Error())
		return nil
	}

	c.mu.Lock()
	c.state = stateStreaming
	c.mu.Unlock()

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.logger.Error("response stream failed", "err", err)
			c.appendAssistant("Error: " + err.Error())
			return nil
		}

		text, err := fragment.Text()
		if err != nil {
			// Malformed fragment: skip, never abort the stream
			c.logger.Warn("skipping malformed fragment", "err", err)
			continue
		}
		if text == "" {
			continue
		}

		c.extendAssistant(text)
	}

	c.finalize()
	return nil
}

// buildHistory converts the turn list into model messages.
// Caller must hold c.mu.
func (c *Conversation) buildHistory() []ai.ChatMessage {
	history := make([]ai.ChatMessage, 0, len(c.turns))
	for _, turn := range c.turns {
		role := ai.RoleUser
		if turn.Sender == core.SenderAssistant {
			role = ai.RoleAssistant
		}
		history = append(history, ai.ChatMessage{Role: role, Content: turn.Text})
	}
	return history
}

// withRetrievedContext prepends a system message carrying document snippets
// relevant to the query. Retrieval failures leave the history unchanged.
func (c *Conversation) withRetrievedContext(ctx context.Context, query string, history []ai.ChatMessage) []ai.ChatMessage {
	snippets, err := c.retriever.Retrieve(ctx, query)
	if err != nil {
		c.logger.Warn("snippet retrieval failed", "err", err)
		return history
	}
	if len(snippets) == 0 {
		return history
	}

	var sb strings.Builder
	sb.WriteString("Relevant excerpts from the deck's uploaded documents:\n")
	for _, snippet := range snippets {
		sb.WriteString("\n- ")
		sb.WriteString(snippet)
	}

	withContext := make([]ai.ChatMessage, 0, len(history)+1)
	withContext = append(withContext, ai.ChatMessage{Role: ai.RoleSystem, Content: sb.String()})
	withContext = append(withContext, history...)
	return withContext
}

// extendAssistant grows the newest assistant turn by text, or starts a new
// assistant turn when the newest turn belongs to the user. The growth is an
// explicit replace of the last element, not a field write.
func (c *Conversation) extendAssistant(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := len(c.turns) - 1
	if last >= 0 && c.turns[last].Sender == core.SenderAssistant {
		c.turns[last] = core.ChatTurn{
			Sender: core.SenderAssistant,
			Text:   c.turns[last].Text + text,
		}
		return
	}
	c.turns = append(c.turns, core.ChatTurn{Sender: core.SenderAssistant, Text: text})
}

// appendAssistant always appends a new assistant turn.
func (c *Conversation) appendAssistant(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, core.ChatTurn{Sender: core.SenderAssistant, Text: text})
}

// finalize applies the empty-response placeholder after a stream ends
// cleanly: a whitespace-only assistant turn is rewritten, and a stream that
// produced no assistant turn at all gets a placeholder turn appended.
func (c *Conversation) finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := len(c.turns) - 1
	if last >= 0 && c.turns[last].Sender == core.SenderAssistant {
		if strings.TrimSpace(c.turns[last].Text) == "" {
			c.turns[last] = core.ChatTurn{Sender: core.SenderAssistant, Text: emptyResponsePlaceholder}
		}
		return
	}
	c.turns = append(c.turns, core.ChatTurn{Sender: core.SenderAssistant, Text: emptyResponsePlaceholder})
}

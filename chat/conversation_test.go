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
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/ai/mock"
	"github.com/poiesic/pitchcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversation_RequiresStreamer(t *testing.T) {
	_, err := NewConversation(nil)
	assert.ErrorIs(t, err, ErrStreamerRequired)
}

func TestConversation_Greeting(t *testing.T) {
	conv, err := NewConversation(mock.NewMockChatStreamer(), WithGreeting(""))
	require.NoError(t, err)

	turns := conv.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, core.SenderAssistant, turns[0].Sender)
	assert.Equal(t, DefaultGreeting, turns[0].Text)
}

func TestSend_EmptyMessage(t *testing.T) {
	conv, err := NewConversation(mock.NewMockChatStreamer())
	require.NoError(t, err)

	assert.ErrorIs(t, conv.Send(context.Background(), ""), ErrEmptyMessage)
	assert.ErrorIs(t, conv.Send(context.Background(), "   \t\n"), ErrEmptyMessage)
	assert.Empty(t, conv.Turns())
}

func TestSend_AccumulatesFragments(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	streamer.Script = []ai.Fragment{
		mock.TextFragment("Hel"),
		mock.TextFragment("lo"),
	}

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Hi there"))

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, core.SenderUser, turns[0].Sender)
	assert.Equal(t, "Hi there", turns[0].Text)
	assert.Equal(t, core.SenderAssistant, turns[1].Sender)
	assert.Equal(t, "Hello", turns[1].Text)
}

func TestSend_TrimsUserMessage(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "  question  "))

	turns := conv.Turns()
	require.NotEmpty(t, turns)
	assert.Equal(t, "question", turns[0].Text)
}

func TestSend_SkipsMalformedFragments(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	streamer.Script = []ai.Fragment{
		mock.TextFragment("Good "),
		mock.BrokenFragment{},
		mock.TextFragment("answer"),
	}

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Question?"))

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "Good answer", turns[1].Text)
}

func TestSend_EmptyStreamPlaceholder(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	streamer.Script = []ai.Fragment{}

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Anyone home?"))

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, core.SenderAssistant, turns[1].Sender)
	assert.Equal(t, "(No response generated)", turns[1].Text)
}

func TestSend_WhitespaceOnlyResponsePlaceholder(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	streamer.Script = []ai.Fragment{
		mock.TextFragment("  "),
		mock.TextFragment("\n"),
	}

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Hello?"))

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "(No response generated)", turns[1].Text)
}

func TestSend_StreamErrorBecomesTurn(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	streamer.Script = []ai.Fragment{mock.TextFragment("Partial")}
	streamer.StreamErr = errors.New("connection reset")

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Tell me more"))

	turns := conv.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "Partial", turns[1].Text)
	assert.Equal(t, core.SenderAssistant, turns[2].Sender)
	assert.Equal(t, "Error: connection reset", turns[2].Text)
}

func TestSend_StartFailureBecomesTurn(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	streamer.StreamChatFunc = func(ctx context.Context, history []ai.ChatMessage) (ai.ChatStream, error) {
		return nil, errors.New("model unavailable")
	}

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Hello"))

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "Error: model unavailable", turns[1].Text)
	assert.False(t, conv.Sending())
}

func TestSend_RejectsOverlappingSends(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	streamer := mock.NewMockChatStreamer()
	streamer.StreamChatFunc = func(ctx context.Context, history []ai.ChatMessage) (ai.ChatStream, error) {
		close(started)
		<-release
		return &mock.ScriptedStream{Fragments: []ai.Fragment{mock.TextFragment("done")}}, nil
	}

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		conv.Send(context.Background(), "first")
	}()

	<-started
	assert.True(t, conv.Sending())
	assert.ErrorIs(t, conv.Send(context.Background(), "second"), ErrSendInFlight)

	close(release)
	wg.Wait()
	assert.False(t, conv.Sending())

	// Only the first send produced turns
	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].Text)
	assert.Equal(t, "done", turns[1].Text)
}

func TestSend_NewTurnAfterPreviousResponse(t *testing.T) {
	streamer := mock.NewMockChatStreamer()

	conv, err := NewConversation(streamer)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, conv.Send(ctx, "first question"))
	require.NoError(t, conv.Send(ctx, "second question"))

	turns := conv.Turns()
	require.Len(t, turns, 4)
	assert.Equal(t, core.SenderUser, turns[0].Sender)
	assert.Equal(t, core.SenderAssistant, turns[1].Sender)
	assert.Equal(t, core.SenderUser, turns[2].Sender)
	assert.Equal(t, core.SenderAssistant, turns[3].Sender)

	// Default mock echoes the user message back
	assert.Equal(t, "second question", turns[3].Text)
}

type fakeRetriever struct {
	snippets []string
	err      error
	query    string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	f.query = query
	return f.snippets, f.err
}

func TestSend_RetrieverInjectsSystemMessage(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	retriever := &fakeRetriever{snippets: []string{"Revenue grew 3x in 2024."}}

	conv, err := NewConversation(streamer, WithRetriever(retriever))
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "How is traction?"))

	assert.Equal(t, "How is traction?", retriever.query)

	history := streamer.LastHistory()
	require.NotEmpty(t, history)
	assert.Equal(t, ai.RoleSystem, history[0].Role)
	assert.Contains(t, history[0].Content, "Revenue grew 3x in 2024.")
	assert.Equal(t, ai.RoleUser, history[len(history)-1].Role)
}

func TestSend_RetrieverFailureIsNonFatal(t *testing.T) {
	streamer := mock.NewMockChatStreamer()
	retriever := &fakeRetriever{err: errors.New("search unavailable")}

	conv, err := NewConversation(streamer, WithRetriever(retriever))
	require.NoError(t, err)

	require.NoError(t, conv.Send(context.Background(), "Hello there"))

	history := streamer.LastHistory()
	require.NotEmpty(t, history)
	assert.Equal(t, ai.RoleUser, history[0].Role)

	turns := conv.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "Hello there", turns[1].Text)
}

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


package openai

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ChatStreamer implements ai.ChatStreamer using OpenAI-compatible chat APIs.
type ChatStreamer struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// newChatStreamer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newChatStreamer(config *ai.Config) (*ChatStreamer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.AssistantHost),
		openai.WithToken("none"),
		openai.WithModel(config.AssistantModel),
	)
	if err != nil {
		return nil, err
	}

	return &ChatStreamer{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-chat"),
	}, nil
}

// NewChatStreamer creates a new chat streamer using the provided configuration.
//
// Returns ai.ChatStreamer interface to enforce abstraction.
func NewChatStreamer(config *ai.Config) (ai.ChatStreamer, error) {
	return newChatStreamer(config)
}

// StreamChat starts generating a response to the given history and returns a
// stream of response fragments. Generation runs on a background goroutine;
// the stream must be consumed until Recv reports io.EOF or an error,
// otherwise the goroutine blocks until ctx is cancelled.
func (s *ChatStreamer) StreamChat(ctx context.Context, history []ai.ChatMessage) (ai.ChatStream, error) {
	content := make([]llms.MessageContent, 0, len(history)+1)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(assistantPromptTemplate)},
	})
	for _, msg := range history {
		content = append(content, llms.MessageContent{
			Role:  toLLMRole(msg.Role),
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	stream := &chatStream{
		items: make(chan string, 16),
	}

	s.logger.Debug("starting chat stream", "turns", len(history))

	go func() {
		_, err := s.client.GenerateContent(ctx, content,
			llms.WithTemperature(s.temperature),
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				select {
				case stream.items <- string(chunk):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
		)
		if err != nil {
			s.logger.Error("chat generation failed", "err", err)
		}
		// err must be visible before the channel close signals completion
		stream.err = err
		close(stream.items)
	}()

	return stream, nil
}

// toLLMRole maps an ai.ChatRole onto the langchaingo message type.
func toLLMRole(role ai.ChatRole) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// chatStream adapts the push-based langchaingo streaming callback into the
// pull-based ai.ChatStream interface.
type chatStream struct {
	items chan string
	err   error
}

// Recv returns the next fragment, io.EOF on completion, or the generation
// error if the model failed partway through.
func (s *chatStream) Recv() (ai.Fragment, error) {
	text, ok := <-s.items
	if !ok {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	return textFragment(text), nil
}

// textFragment is a fragment backed by a plain string.
type textFragment string

// Text returns the fragment's content. A string fragment is never malformed.
func (f textFragment) Text() (string, error) {
	return string(f), nil
}

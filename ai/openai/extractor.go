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
	"log/slog"
	"strings"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TextExtractor implements ai.TextExtractor using OpenAI-compatible chat APIs
// with multimodal input. Plain-text media types are decoded locally without a
// model round trip.
type TextExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// newTextExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTextExtractor(config *ai.Config) (*TextExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for extraction
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.AssistantHost),
		openai.WithToken("none"),
		openai.WithModel(config.AssistantModel),
	)
	if err != nil {
		return nil, err
	}

	return &TextExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewTextExtractor creates a new text extractor using the provided configuration.
//
// Returns ai.TextExtractor interface to enforce abstraction.
func NewTextExtractor(config *ai.Config) (ai.TextExtractor, error) {
	return newTextExtractor(config)
}

// ExtractText extracts the readable text content from a file.
// Text-based media types are returned as-is; binary formats (PDF, office
// documents, images) go through the model. An empty result with a nil error
// means the file held no readable text.
func (e *TextExtractor) ExtractText(ctx context.Context, data []byte, mediaType string) (string, error) {
	if isPlainTextType(mediaType) {
		e.logger.Debug("decoding text media type locally", "mediaType", mediaType, "bytes", len(data))
		return strings.TrimSpace(string(data)), nil
	}

	e.logger.Debug("extracting text via model", "mediaType", mediaType, "bytes", len(data))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionPromptTemplate),
				llms.BinaryPart(mediaType, data),
			},
		},
	}

	// Temperature 0 keeps extraction deterministic
	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		e.logger.Error("failed to extract text", "mediaType", mediaType, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return "", nil
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	e.logger.Debug("extracted text", "mediaType", mediaType, "length", len(text))
	return text, nil
}

// isPlainTextType reports whether a media type can be decoded as UTF-8 text
// without model assistance.
func isPlainTextType(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	switch mediaType {
	case "application/json", "application/xml", "application/x-javascript":
		return true
	}
	return false
}

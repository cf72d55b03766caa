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


package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/pitchcraft/ai/mock"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, provider *mock.MockProvider, opts ...Option) (*Pipeline, *badger.Repositories) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	var p *Pipeline
	if provider == nil {
		p, err = NewPipeline(repos.Documents, repos.Embeddings, mock.NewMockProvider(), opts...)
	} else {
		p, err = NewPipeline(repos.Documents, repos.Embeddings, provider, opts...)
	}
	require.NoError(t, err)

	return p, repos
}

func TestNewPipeline_MissingDependencies(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewPipeline(nil, repos.Embeddings, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewPipeline(repos.Documents, nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrEmbeddingRepositoryRequired)

	_, err = NewPipeline(repos.Documents, repos.Embeddings, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestNewPipeline_InvalidChunkConfig(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewPipeline(repos.Documents, repos.Embeddings, mock.NewMockProvider(),
		WithChunkSize(100), WithOverlap(100))
	assert.ErrorIs(t, err, ErrInvalidChunking)

	_, err = NewPipeline(repos.Documents, repos.Embeddings, mock.NewMockProvider(),
		WithChunkSize(0))
	assert.ErrorIs(t, err, ErrInvalidChunking)
}

func TestProcess_SingleFile(t *testing.T) {
	p, repos := newTestPipeline(t, nil)
	ctx := context.Background()

	reports := p.Process(ctx, 1, []File{
		{Name: "notes.md", DeclaredType: "text/markdown", Data: []byte("Our product solves a real problem.")},
	})

	require.Len(t, reports, 1)
	assert.True(t, reports[0].Success)
	assert.Empty(t, reports[0].Error)

	docs, err := repos.Documents.GetDocumentsByDeck(ctx, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.md", docs[0].Filename)
	assert.Equal(t, "Our product solves a real problem.", docs[0].FullText)

	records, err := repos.Embeddings.GetEmbeddingsByDeck(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "notes.md", records[0].Metadata.Source)
	assert.Equal(t, 1, records[0].Metadata.Chunk)
	assert.Equal(t, "text/markdown", records[0].Metadata.MediaType)
	assert.NotEmpty(t, records[0].Vector)
}

func TestProcess_UnsupportedType(t *testing.T) {
	p, repos := newTestPipeline(t, nil)
	ctx := context.Background()

	reports := p.Process(ctx, 1, []File{
		{Name: "virus.bin", DeclaredType: "application/x-unknown", Data: []byte("data")},
	})

	require.Len(t, reports, 1)
	assert.False(t, reports[0].Success)
	assert.Equal(t, "File type is not supported", reports[0].Error)

	docs, err := repos.Documents.GetDocumentsByDeck(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestProcess_MarkdownExtensionFallback(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	p, _ := newTestPipeline(t, provider)

	reports := p.Process(context.Background(), 1, []File{
		{Name: "README.md", DeclaredType: "", Data: []byte("# Heading\n\nBody text.")},
	})

	require.Len(t, reports, 1)
	assert.True(t, reports[0].Success)
	assert.Equal(t, "text/markdown", provider.GetMockExtractor().LastMediaType())
}

func TestProcess_MarkdownFallbackRequiresEmptyType(t *testing.T) {
	p, _ := newTestPipeline(t, nil)

	// A declared but unsupported type is not rescued by the .md extension
	reports := p.Process(context.Background(), 1, []File{
		{Name: "notes.md", DeclaredType: "application/x-custom", Data: []byte("text")},
	})

	require.Len(t, reports, 1)
	assert.False(t, reports[0].Success)
	assert.Equal(t, "File type is not supported", reports[0].Error)
}

func TestProcess_EmptyText(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	p, repos := newTestPipeline(t, provider)
	ctx := context.Background()

	reports := p.Process(ctx, 1, []File{
		{Name: "blank.txt", DeclaredType: "text/plain", Data: []byte("   \n\t  ")},
	})

	require.Len(t, reports, 1)
	assert.True(t, reports[0].Success)
	assert.Equal(t, "No text content found", reports[0].Error)

	// No document row and no embedding calls for empty text
	docs, err := repos.Documents.GetDocumentsByDeck(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Zero(t, provider.GetMockEmbedder().CallCount())
}

func TestProcess_ExtractionFailureContinuesBatch(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockExtractor().ExtractTextFunc = func(ctx context.Context, data []byte, mediaType string) (string, error) {
		if string(data) == "bad" {
			return "", errors.New("extraction exploded")
		}
		return string(data), nil
	}
	p, _ := newTestPipeline(t, provider)

	reports := p.Process(context.Background(), 1, []File{
		{Name: "one.txt", DeclaredType: "text/plain", Data: []byte("first file text")},
		{Name: "two.txt", DeclaredType: "text/plain", Data: []byte("bad")},
		{Name: "three.txt", DeclaredType: "text/plain", Data: []byte("third file text")},
	})

	require.Len(t, reports, 3)
	assert.True(t, reports[0].Success)
	assert.False(t, reports[1].Success)
	assert.Equal(t, "extraction exploded", reports[1].Error)
	assert.True(t, reports[2].Success)

	summary := Summarize(reports)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestProcess_EmbeddingFailure(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	p, repos := newTestPipeline(t, provider)
	ctx := context.Background()

	reports := p.Process(ctx, 1, []File{
		{Name: "doc.txt", DeclaredType: "text/plain", Data: []byte("some content")},
	})

	require.Len(t, reports, 1)
	assert.False(t, reports[0].Success)
	assert.Equal(t, "embedding service down", reports[0].Error)

	// The document row is written before embedding and stays written
	docs, err := repos.Documents.GetDocumentsByDeck(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	records, err := repos.Embeddings.GetEmbeddingsByDeck(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProcess_VectorCountMismatch(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{0.1}}, nil // always one vector
	}
	p, _ := newTestPipeline(t, provider, WithChunkSize(40), WithOverlap(5))

	reports := p.Process(context.Background(), 1, []File{
		{Name: "long.txt", DeclaredType: "text/plain",
			Data: []byte("First paragraph with enough text here.\n\nSecond paragraph with enough text too.")},
	})

	require.Len(t, reports, 1)
	assert.False(t, reports[0].Success)
	assert.Contains(t, reports[0].Error, "does not match")
}

func TestProcess_ChunkMetadataSequence(t *testing.T) {
	p, repos := newTestPipeline(t, nil, WithChunkSize(30), WithOverlap(5))
	ctx := context.Background()

	reports := p.Process(ctx, 2, []File{
		{Name: "plan.md", DeclaredType: "text/markdown",
			Data: []byte("Alpha paragraph content here.\n\nBeta paragraph content here.\n\nGamma paragraph content here.")},
	})

	require.Len(t, reports, 1)
	require.True(t, reports[0].Success)

	records, err := repos.Embeddings.GetEmbeddingsByDeck(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 3)

	seen := make(map[int]bool)
	for _, record := range records {
		assert.Equal(t, core.ID(2), record.DeckId)
		assert.Equal(t, "plan.md", record.Metadata.Source)
		seen[record.Metadata.Chunk] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestProcess_Callbacks(t *testing.T) {
	var messages []string
	var completed []Report

	p, _ := newTestPipeline(t, nil,
		WithProgress(func(message string) { messages = append(messages, message) }),
		WithOnComplete(func(reports []Report) { completed = reports }),
	)

	p.Process(context.Background(), 1, []File{
		{Name: "a.txt", DeclaredType: "text/plain", Data: []byte("hello world")},
	})

	assert.NotEmpty(t, messages)
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Success)
}

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


package reindex

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/pitchcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder records embedded texts. Safe for concurrent use, unlike
// the shared mock, since the reindexer embeds batches from pool workers.
type countingEmbedder struct {
	mu     sync.Mutex
	texts  []string
	failOn string
	vector []float32
}

func (e *countingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, text := range texts {
		if e.failOn != "" && text == e.failOn {
			return nil, errors.New("embedding backend unavailable")
		}
	}

	e.texts = append(e.texts, texts...)

	vector := e.vector
	if vector == nil {
		vector = []float32{1.0, 2.0, 2.0} // magnitude = 3.0
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = vector
	}
	return result, nil
}

func (e *countingEmbedder) embedded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.texts...)
}

func testConfig(batchSize, workers int) *Config {
	return &Config{
		BatchSize:      batchSize,
		ReportInterval: 1,
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
		Workers:        workers,
	}
}

func TestNewReindexer_MissingDependencies(t *testing.T) {
	repos := newTestRepositories(t)
	var buf bytes.Buffer

	_, err := NewReindexer(nil, repos.Checkpoints, &countingEmbedder{}, nil, &buf)
	assert.ErrorIs(t, err, ErrEmbeddingRepositoryRequired)

	_, err = NewReindexer(repos.Embeddings, nil, &countingEmbedder{}, nil, &buf)
	assert.ErrorIs(t, err, ErrCheckpointRepositoryRequired)
}

func TestReindexer_EmptyDeck(t *testing.T) {
	repos := newTestRepositories(t)
	var buf bytes.Buffer

	reindexer, err := NewReindexer(repos.Embeddings, repos.Checkpoints, &countingEmbedder{}, testConfig(2, 1), &buf)
	require.NoError(t, err)
	defer reindexer.Release()

	err = reindexer.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No embedding records found")
}

func TestReindexer_Run(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	var buf bytes.Buffer

	seedEmbeddings(t, repos, 1, "problem", "solution", "market", "traction", "ask")

	embedder := &countingEmbedder{}
	reindexer, err := NewReindexer(repos.Embeddings, repos.Checkpoints, embedder, testConfig(2, 1), &buf)
	require.NoError(t, err)
	defer reindexer.Release()

	err = reindexer.Run(ctx, 1)
	require.NoError(t, err)

	// Every record reembedded with a normalized vector
	updated, err := repos.Embeddings.GetEmbeddingsByDeck(ctx, 1)
	require.NoError(t, err)
	require.Len(t, updated, 5)
	for _, record := range updated {
		assert.InDelta(t, 1.0, vectorMagnitude(record.Vector), 0.01)
	}
	assert.Len(t, embedder.embedded(), 5)

	// Checkpoint is cleared on completion
	checkpoint, err := repos.Checkpoints.LoadCheckpoint(ctx, TaskName(1))
	require.NoError(t, err)
	assert.Nil(t, checkpoint)

	assert.Contains(t, buf.String(), "Reindex complete. Processed 5 records")
}

func TestReindexer_DeckScoped(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	var buf bytes.Buffer

	seedEmbeddings(t, repos, 1, "deck one chunk")
	other := seedEmbeddings(t, repos, 2, "deck two chunk")

	reindexer, err := NewReindexer(repos.Embeddings, repos.Checkpoints, &countingEmbedder{}, testConfig(2, 1), &buf)
	require.NoError(t, err)
	defer reindexer.Release()

	require.NoError(t, reindexer.Run(ctx, 1))

	// The other deck's vector is untouched
	untouched, err := repos.Embeddings.GetEmbeddingsByDeck(ctx, 2)
	require.NoError(t, err)
	require.Len(t, untouched, 1)
	assert.Equal(t, other[0].Vector, untouched[0].Vector)
}

func TestReindexer_ResumesFromCheckpoint(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	var buf bytes.Buffer

	added := seedEmbeddings(t, repos, 1, "problem", "solution", "market", "traction")

	// A previous run got through the first two records
	err := repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Task:         TaskName(1),
		LastRecordId: added[1].Id,
		Processed:    2,
	})
	require.NoError(t, err)

	embedder := &countingEmbedder{}
	reindexer, err := NewReindexer(repos.Embeddings, repos.Checkpoints, embedder, testConfig(2, 1), &buf)
	require.NoError(t, err)
	defer reindexer.Release()

	require.NoError(t, reindexer.Run(ctx, 1))

	assert.Equal(t, []string{"market", "traction"}, embedder.embedded(),
		"should only reembed records past the checkpoint")
	assert.Contains(t, buf.String(), "Resuming from checkpoint: 2 of 4 records")

	checkpoint, err := repos.Checkpoints.LoadCheckpoint(ctx, TaskName(1))
	require.NoError(t, err)
	assert.Nil(t, checkpoint, "checkpoint should be cleared on completion")
}

func TestReindexer_FailureLeavesCheckpoint(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	var buf bytes.Buffer

	seedEmbeddings(t, repos, 1, "problem", "solution", "market")

	embedder := &countingEmbedder{failOn: "solution"}
	reindexer, err := NewReindexer(repos.Embeddings, repos.Checkpoints, embedder, testConfig(1, 1), &buf)
	require.NoError(t, err)
	defer reindexer.Release()

	err = reindexer.Run(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch")

	// The first batch completed, so its checkpoint survives for resumption
	checkpoint, err := repos.Checkpoints.LoadCheckpoint(ctx, TaskName(1))
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, 1, checkpoint.Processed)
}

func TestReindexer_ConcurrentWorkers(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	var buf bytes.Buffer

	contents := make([]string, 10)
	for i := range contents {
		contents[i] = string(rune('a' + i))
	}
	seedEmbeddings(t, repos, 1, contents...)

	embedder := &countingEmbedder{}
	reindexer, err := NewReindexer(repos.Embeddings, repos.Checkpoints, embedder, testConfig(2, 3), &buf)
	require.NoError(t, err)
	defer reindexer.Release()

	require.NoError(t, reindexer.Run(ctx, 1))

	assert.Len(t, embedder.embedded(), 10)

	updated, err := repos.Embeddings.GetEmbeddingsByDeck(ctx, 1)
	require.NoError(t, err)
	require.Len(t, updated, 10)
	for _, record := range updated {
		assert.InDelta(t, 1.0, vectorMagnitude(record.Vector), 0.01)
	}
}

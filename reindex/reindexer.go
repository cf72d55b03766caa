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
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Workers is the number of batches processed concurrently
	Workers int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		Workers:        workers,
	}
}

// Reindexer orchestrates the reembedding of all embedding records of a deck.
// Batches are dispatched to a worker pool; a checkpoint is written after
// each completed wave of batches so an interrupted run can resume.
type Reindexer struct {
	embeddings  storage.EmbeddingRepository
	checkpoints storage.CheckpointRepository
	embedder    ai.Embedder
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	pool        *ants.Pool
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(embeddings storage.EmbeddingRepository, checkpoints storage.CheckpointRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	if config == nil {
		config = DefaultConfig()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	pool, err := ants.NewPool(config.Workers)
	if err != nil {
		return nil, err
	}

	return &Reindexer{
		embeddings:  embeddings,
		checkpoints: checkpoints,
		embedder:    embedder,
		config:      config,
		progress:    progress,
		processor:   NewBatchProcessor(embeddings, embedder, config.MaxRetries, config.RetryDelay),
		pool:        pool,
	}, nil
}

// Release releases the worker pool.
// The reindexer should not be used after calling Release.
func (r *Reindexer) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// TaskName returns the checkpoint task identifier for a deck's reindex run.
func TaskName(deckID core.ID) string {
	return fmt.Sprintf("reindex:%d", deckID)
}

// Run executes the reindexing operation for a single deck.
// All embedding records of the deck are reembedded with the configured
// embedder. Progress is reported to the configured writer. If a checkpoint
// from an earlier interrupted run exists, processing resumes after the
// records it covers; the checkpoint is cleared on completion.
func (r *Reindexer) Run(ctx context.Context, deckID core.ID) error {
	records, err := r.embeddings.GetEmbeddingsByDeck(ctx, deckID)
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintf(r.progress, "No embedding records found for deck %d (0 records)\n", deckID)
		return nil
	}

	task := TaskName(deckID)
	skip := 0
	checkpoint, err := r.checkpoints.LoadCheckpoint(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if checkpoint != nil && checkpoint.Processed > 0 && checkpoint.Processed < len(records) {
		skip = checkpoint.Processed
		fmt.Fprintf(r.progress, "Resuming from checkpoint: %d of %d records already processed\n",
			skip, len(records))
	}

	pending := records[skip:]

	fmt.Fprintf(r.progress, "Starting reindex of %d records (batch size: %d, workers: %d)\n",
		len(pending), r.config.BatchSize, r.config.Workers)

	// Initialize progress tracker
	tracker := NewProgressTracker(r.progress, len(pending), r.config.ReportInterval)
	tracker.Start()

	// Slice pending records into batches
	batches := make([][]*core.EmbeddingRecord, 0, (len(pending)+r.config.BatchSize-1)/r.config.BatchSize)
	for i := 0; i < len(pending); i += r.config.BatchSize {
		end := i + r.config.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batches = append(batches, pending[i:end])
	}

	// Process batches in waves of Workers. The checkpoint only ever covers
	// fully completed waves, so resumption never skips unprocessed records.
	processed := 0
	for start := 0; start < len(batches); start += r.config.Workers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := start + r.config.Workers
		if end > len(batches) {
			end = len(batches)
		}
		wave := batches[start:end]

		var wg sync.WaitGroup
		errs := make([]error, len(wave))
		for i, batch := range wave {
			wg.Add(1)
			if submitErr := r.pool.Submit(func() {
				defer wg.Done()
				errs[i] = r.processor.Process(ctx, batch)
			}); submitErr != nil {
				wg.Done()
				errs[i] = submitErr
			}
		}
		wg.Wait()

		for _, batchErr := range errs {
			if batchErr != nil {
				return fmt.Errorf("failed to process batch: %w", batchErr)
			}
		}

		for _, batch := range wave {
			processed += len(batch)
		}
		tracker.Update(processed)

		lastBatch := wave[len(wave)-1]
		saveErr := r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
			Task:         task,
			LastRecordId: lastBatch[len(lastBatch)-1].Id,
			Processed:    skip + processed,
		})
		if saveErr != nil {
			return fmt.Errorf("failed to save checkpoint: %w", saveErr)
		}
	}

	if err := r.checkpoints.ClearCheckpoint(ctx, task); err != nil {
		return fmt.Errorf("failed to clear checkpoint: %w", err)
	}

	// Finish progress tracking
	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d records in %v (%.1f records/sec)\n",
		processed, elapsed.Round(time.Second), float64(processed)/elapsed.Seconds())

	return nil
}

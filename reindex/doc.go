// Package reindex provides functionality for regenerating the stored
// embeddings of a deck after an embedding model change.
//
// This package supports batch processing of embedding records on a worker
// pool, progress tracking, retry logic with exponential backoff, vector
// normalization, and checkpointing so an interrupted run can resume where
// it left off.
package reindex

// Package ingestion provides the document processing pipeline for pitch decks.
//
// The Pipeline type takes user-supplied files through a fixed sequence of
// steps: media-type validation, text extraction, paragraph chunking,
// embedding generation, and persistence. Files are processed strictly one
// at a time; a failure in one file is captured in its report entry and
// never aborts the rest of the batch.
package ingestion

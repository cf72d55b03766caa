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
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// Pipeline processes uploaded files into stored documents and chunk
// embeddings. Files are handled strictly one at a time: embedding calls
// are rate-sensitive and progress reporting between steps must stay
// unambiguous.
type Pipeline struct {
	documents  storage.DocumentRepository
	embeddings storage.EmbeddingRepository
	extractor  ai.TextExtractor
	embedder   ai.Embedder
	chunkSize  int
	overlap    int
	progress   func(message string)
	onComplete func(reports []Report)
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkSize sets the maximum chunk length. Default is DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidChunking
		}
		p.chunkSize = size
		return nil
	}
}

// WithOverlap sets the window overlap for oversized paragraphs.
// Default is DefaultOverlap.
func WithOverlap(overlap int) Option {
	return func(p *Pipeline) error {
		if overlap < 0 {
			return ErrInvalidChunking
		}
		p.overlap = overlap
		return nil
	}
}

// WithProgress sets a callback invoked with a status message between
// pipeline steps.
func WithProgress(fn func(message string)) Option {
	return func(p *Pipeline) error {
		p.progress = fn
		return nil
	}
}

// WithOnComplete sets a callback invoked with the full per-file report
// after every file has been processed.
func WithOnComplete(fn func(reports []Report)) Option {
	return func(p *Pipeline) error {
		p.onComplete = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documentRepository storage.DocumentRepository,
	embeddingRepository storage.EmbeddingRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if embeddingRepository == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		documents:  documentRepository,
		embeddings: embeddingRepository,
		extractor:  provider.TextExtractor(),
		embedder:   provider.Embedder(),
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		logger:     slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.overlap >= p.chunkSize {
		return nil, ErrInvalidChunking
	}

	return p, nil
}

// Process runs every file through the pipeline and returns one report entry
// per file in input order. It never returns an error: a failure in any step
// is caught at the file level, recorded in that file's entry, and the batch
// continues with the next file.
func (p *Pipeline) Process(ctx context.Context, deckID core.ID, files []File) []Report {
	reports := make([]Report, 0, len(files))

	for _, file := range files {
		reports = append(reports, p.processFile(ctx, deckID, file))
	}

	summary := Summarize(reports)
	p.report(fmt.Sprintf("Processed %d file(s): %d succeeded, %d failed",
		len(reports), summary.Succeeded, summary.Failed))
	p.logger.Info("batch complete",
		"deck", deckID, "files", len(reports),
		"succeeded", summary.Succeeded, "failed", summary.Failed)

	if p.onComplete != nil {
		p.onComplete(reports)
	}

	return reports
}

func (p *Pipeline) processFile(ctx context.Context, deckID core.ID, file File) Report {
	mediaType, ok := ResolveMediaType(file.Name, file.DeclaredType)
	if !ok {
		p.logger.Warn("unsupported file type", "file", file.Name, "type", file.DeclaredType)
		return Report{FileName: file.Name, Success: false, Error: "File type is not supported"}
	}

	p.report(fmt.Sprintf("Extracting text from %s...", file.Name))
	fullText, err := p.extractor.ExtractText(ctx, file.Data, mediaType)
	if err != nil {
		p.logger.Error("text extraction failed", "file", file.Name, "err", err)
		return Report{FileName: file.Name, Success: false, Error: err.Error()}
	}

	if strings.TrimSpace(fullText) == "" {
		return Report{FileName: file.Name, Success: true, Error: "No text content found"}
	}

	p.report(fmt.Sprintf("Saving document %s...", file.Name))
	_, err = p.documents.AddDocument(ctx, &core.Document{
		DeckId:    deckID,
		Filename:  file.Name,
		MediaType: mediaType,
		FullText:  fullText,
	})
	if err != nil {
		p.logger.Error("document persistence failed", "file", file.Name, "err", err)
		return Report{FileName: file.Name, Success: false, Error: err.Error()}
	}

	chunks, err := ChunkByParagraphs(fullText, p.chunkSize, p.overlap)
	if err != nil {
		return Report{FileName: file.Name, Success: false, Error: err.Error()}
	}
	if len(chunks) == 0 {
		return Report{FileName: file.Name, Success: true, Error: "Text extracted but resulted in no chunks"}
	}

	p.report(fmt.Sprintf("Embedding %d chunk(s) from %s...", len(chunks), file.Name))
	vectors, err := p.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		p.logger.Error("embedding generation failed", "file", file.Name, "err", err)
		return Report{FileName: file.Name, Success: false, Error: err.Error()}
	}
	if len(vectors) != len(chunks) {
		err := fmt.Errorf("%w: %d chunks, %d vectors", ErrVectorCountMismatch, len(chunks), len(vectors))
		p.logger.Error("embedding generation failed", "file", file.Name, "err", err)
		return Report{FileName: file.Name, Success: false, Error: err.Error()}
	}

	records := make([]*core.EmbeddingRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &core.EmbeddingRecord{
			DeckId:  deckID,
			Content: chunk,
			Vector:  vectors[i],
			Metadata: core.ChunkMetadata{
				Source:    file.Name,
				Chunk:     i + 1,
				MediaType: mediaType,
			},
		}
	}

	if _, err := p.embeddings.AddEmbeddings(ctx, records...); err != nil {
		p.logger.Error("embedding persistence failed", "file", file.Name, "err", err)
		return Report{FileName: file.Name, Success: false, Error: err.Error()}
	}

	p.logger.Debug("file processed", "file", file.Name, "chunks", len(chunks))
	return Report{FileName: file.Name, Success: true}
}

func (p *Pipeline) report(message string) {
	if p.progress != nil {
		p.progress(message)
	}
}

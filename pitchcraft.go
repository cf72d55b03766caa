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


package pitchcraft

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/ai/openai"
	"github.com/poiesic/pitchcraft/chat"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/ingestion"
	"github.com/poiesic/pitchcraft/reindex"
	"github.com/poiesic/pitchcraft/search"
	"github.com/poiesic/pitchcraft/storage"
	"github.com/poiesic/pitchcraft/storage/badger"
)

// retrievalLimit is the number of document snippets handed to a
// conversation per user message.
const retrievalLimit = 5

// Workspace bundles the storage repositories and AI services of one
// pitch-deck database. It is the entry point for embedding applications.
type Workspace struct {
	repos    *badger.Repositories
	provider ai.AIProvider
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the configuration used to build the OpenAI-compatible
// provider. Ignored when WithAIProvider is also given.
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider instead of constructing
// one from config. The workspace takes ownership and closes it.
func WithAIProvider(provider ai.AIProvider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// Open opens a workspace stored at filePath, creating it if necessary.
func Open(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	return open(filePath, false, opts...)
}

// OpenMemory creates a workspace on an in-memory backend. Nothing is
// persisted; intended for tests and experiments.
func OpenMemory(opts ...WorkspaceOption) (*Workspace, error) {
	return open("", true, opts...)
}

func open(filePath string, inMemory bool, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	var repos *badger.Repositories
	var err error
	if inMemory {
		repos, err = badger.NewMemoryRepositories()
	} else {
		repos, err = badger.NewRepositories(filePath)
	}
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	return &Workspace{
		repos:    repos,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close closes the AI provider and every repository.
func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing AI provider", "err", err)
	}
	return w.repos.Close()
}

func (w *Workspace) DeckRepository() storage.DeckRepository {
	return w.repos.Decks
}

func (w *Workspace) SlideRepository() storage.SlideRepository {
	return w.repos.Slides
}

func (w *Workspace) SectionRepository() storage.SectionRepository {
	return w.repos.Sections
}

func (w *Workspace) DocumentRepository() storage.DocumentRepository {
	return w.repos.Documents
}

func (w *Workspace) EmbeddingRepository() storage.EmbeddingRepository {
	return w.repos.Embeddings
}

func (w *Workspace) CheckpointRepository() storage.CheckpointRepository {
	return w.repos.Checkpoints
}

func (w *Workspace) AssetRepository() storage.AssetRepository {
	return w.repos.Assets
}

func (w *Workspace) Provider() ai.AIProvider {
	return w.provider
}

// NewIngestionPipeline builds a document ingestion pipeline writing into
// this workspace.
func (w *Workspace) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(w.repos.Documents, w.repos.Embeddings, w.provider, opts...)
}

// NewSearcher builds a semantic searcher over this workspace's embeddings.
func (w *Workspace) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(w.repos.Embeddings, w.provider, opts...)
}

// NewConversation starts an assistant conversation grounded in the given
// deck's uploaded documents via a retriever.
func (w *Workspace) NewConversation(deckID core.ID, opts ...chat.Option) (*chat.Conversation, error) {
	searcher, err := w.NewSearcher()
	if err != nil {
		return nil, err
	}

	withRetriever := make([]chat.Option, 0, len(opts)+1)
	withRetriever = append(withRetriever, chat.WithRetriever(&deckRetriever{
		searcher: searcher,
		deckID:   deckID,
	}))
	withRetriever = append(withRetriever, opts...)

	return chat.NewConversation(w.provider.ChatStreamer(), withRetriever...)
}

// NewReindexer builds a reindexer that reembeds stored chunks with the
// workspace's current embedding model.
func (w *Workspace) NewReindexer(config *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(w.repos.Embeddings, w.repos.Checkpoints, w.provider.Embedder(), config, progress)
}

// deckRetriever adapts a Searcher to the conversation retriever contract.
type deckRetriever struct {
	searcher *search.Searcher
	deckID   core.ID
}

var _ chat.Retriever = (*deckRetriever)(nil)

func (r *deckRetriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	results, err := r.searcher.FindSimilar(ctx, r.deckID, query, retrievalLimit)
	if err != nil {
		return nil, err
	}

	snippets := make([]string, 0, len(results))
	for _, result := range results {
		snippets = append(snippets, result.Record.Content)
	}
	return snippets, nil
}

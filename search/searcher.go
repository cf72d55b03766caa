package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// minSimilarity is the vector similarity floor for a chunk to count as a hit.
const minSimilarity = 0.60

// verbatimBoost is added to a hit containing every query word.
const verbatimBoost = 0.3

// Searcher provides semantic search over a deck's embedded document chunks.
type Searcher struct {
	embeddingRepository storage.EmbeddingRepository
	embedder            ai.Embedder
	logger              *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	embeddingRepository storage.EmbeddingRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if embeddingRepository == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		embeddingRepository: embeddingRepository,
		embedder:            provider.Embedder(),
		logger:              slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches a deck's document chunks for content similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, deckID core.ID, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, deckID, query, maxHits, nil)
}

// FindSimilarWithMonitor searches with monitoring callbacks at each stage.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, deckID core.ID, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.embeddingRepository.FindSimilar(ctx, deckID, embedding, minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "deck", deckID, "err", err)
		return nil, err
	}

	semanticIds := make([]uint64, 0, len(matches))
	for _, match := range matches {
		semanticIds = append(semanticIds, uint64(match.Record.Id))
	}
	monitor.AfterSemanticSearch(semanticIds)

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		score := match.Score
		if containsAllQueryWords(match.Record.Content, query) {
			score += verbatimBoost
			monitor.VerbatimHit(match.Record)
		} else {
			monitor.SemanticHit(match.Record)
		}

		results = append(results, &core.SearchResult{
			Record: match.Record,
			Score:  score,
		})
	}

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}

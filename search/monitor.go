package search

import (
	"github.com/poiesic/pitchcraft/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterSemanticSearch(ids []uint64)
	SemanticHit(record *core.EmbeddingRecord)
	VerbatimHit(record *core.EmbeddingRecord)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterSemanticSearch(_ []uint64)       {}
func (n *noopMonitor) SemanticHit(_ *core.EmbeddingRecord)  {}
func (n *noopMonitor) VerbatimHit(_ *core.EmbeddingRecord)  {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)        {}

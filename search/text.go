package search

import "strings"

// stopWords are filler words ignored when deciding whether a chunk quotes
// the query verbatim. Without this, queries like "what is the traction"
// would boost almost every chunk.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "be": {}, "is": {}, "are": {},
	"was": {}, "to": {}, "of": {}, "and": {}, "in": {}, "that": {},
	"have": {}, "it": {}, "for": {}, "not": {}, "on": {}, "with": {},
	"as": {}, "you": {}, "do": {}, "at": {}, "this": {}, "but": {},
	"by": {}, "from": {},
}

const wordPunctuation = ".,!?;:'\"-()[]{}"

// significantWords lowercases text, strips surrounding punctuation, and
// drops stop words.
func significantWords(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))

	for _, field := range fields {
		word := strings.ToLower(strings.Trim(field, wordPunctuation))
		if word == "" {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		words = append(words, word)
	}

	return words
}

// containsAllQueryWords reports whether every significant query word appears
// in the chunk content. A query with no significant words never matches.
func containsAllQueryWords(content, query string) bool {
	queryWords := significantWords(query)
	if len(queryWords) == 0 {
		return false
	}

	contentWords := make(map[string]struct{})
	for _, word := range significantWords(content) {
		contentWords[word] = struct{}{}
	}

	for _, word := range queryWords {
		if _, ok := contentWords[word]; !ok {
			return false
		}
	}

	return true
}

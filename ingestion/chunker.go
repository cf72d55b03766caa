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
	"regexp"
	"strings"
)

const (
	// DefaultChunkSize is the maximum chunk length in bytes.
	DefaultChunkSize = 1000

	// DefaultOverlap is the overlap between windows of an oversized paragraph.
	DefaultOverlap = 100

	paragraphSeparator = "\n\n"
)

var blankLine = regexp.MustCompile(`\n\s*\n`)

// ChunkByParagraphs splits text into chunks of at most chunkSize bytes.
//
// Text is split on blank lines into paragraphs, which are greedily packed
// into chunks joined by a blank line. A paragraph longer than chunkSize is
// sliced into windows of at most chunkSize bytes, each window beginning
// overlap bytes before the previous one ended; the remainder of a sliced
// paragraph is never merged with following paragraphs.
//
// Returns ErrInvalidChunking unless 0 <= overlap < chunkSize, which is what
// guarantees the window loop terminates.
func ChunkByParagraphs(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize < 1 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidChunking
	}

	var paragraphs []string
	for _, p := range blankLine.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	var current string

	for _, paragraph := range paragraphs {
		separator := 0
		if current != "" {
			separator = len(paragraphSeparator)
		}

		if len(current)+separator+len(paragraph) <= chunkSize {
			if current == "" {
				current = paragraph
			} else {
				current += paragraphSeparator + paragraph
			}
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if len(paragraph) <= chunkSize {
			current = paragraph
			continue
		}

		// Oversized paragraph: fixed windows with overlap
		remaining := paragraph
		for len(remaining) > 0 {
			splitPoint := min(chunkSize, len(remaining))
			chunks = append(chunks, remaining[:splitPoint])
			advance := splitPoint - overlap
			if advance <= 0 {
				advance = splitPoint
			}
			remaining = remaining[advance:]
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks, nil
}

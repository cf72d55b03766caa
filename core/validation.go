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


package core

import "fmt"

// ValidateDeck validates a Deck according to domain rules.
//
// Validation rules:
//   - UserId must not be empty
//   - Title must not be empty
//   - Status must be a known value (empty defaults to draft at the storage layer)
//
// NOT validated:
//   - ID (0 is valid from database sequences)
//   - KeyMetrics (free-form)
func ValidateDeck(deck *Deck) error {
	if deck == nil {
		return fmt.Errorf("%w: deck is nil", ErrInvalidDeck)
	}

	if deck.UserId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDeck, ErrEmptyUserId)
	}

	if deck.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDeck, ErrEmptyTitle)
	}

	if deck.Status != "" {
		if err := ValidateDeckStatus(deck.Status); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDeck, err)
		}
	}

	return nil
}

// ValidateDeckStatus validates that a DeckStatus has a known value.
func ValidateDeckStatus(status DeckStatus) error {
	switch status {
	case DeckStatusDraft, DeckStatusInReview, DeckStatusFinalized:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidDeckStatus, status)
}

// ValidateSlide validates a Slide according to domain rules.
//
// Validation rules:
//   - DeckId must be set
//   - Title must not be empty
//   - OrderIndex must not be negative
//
// NOT validated:
//   - SectionId (0 means the slide is not tied to a canonical section)
//   - Content (empty slides are legal while drafting)
func ValidateSlide(slide *Slide) error {
	if slide == nil {
		return fmt.Errorf("%w: slide is nil", ErrInvalidSlide)
	}

	if slide.DeckId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSlide, ErrMissingDeckId)
	}

	if slide.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSlide, ErrEmptyTitle)
	}

	if slide.OrderIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSlide, ErrInvalidOrderIndex)
	}

	return nil
}

// ValidateSection validates a Section according to domain rules.
func ValidateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidSection)
	}

	if section.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptySectionName)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - DeckId must be set
//   - Filename must not be empty
//
// NOT validated:
//   - FullText (extraction can legally yield empty text; the ingestion
//     pipeline reports that case without persisting)
//   - MediaType (resolved before persistence)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.DeckId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingDeckId)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFilename)
	}

	return nil
}

// ValidateEmbeddingRecord validates an EmbeddingRecord according to domain rules.
//
// Validation rules:
//   - DeckId must be set
//   - Content must not be empty
//   - Metadata.Chunk must be 1-based
//
// NOT validated:
//   - Vector (reindexing may briefly clear it)
//   - ID (0 is valid from database sequences)
func ValidateEmbeddingRecord(record *EmbeddingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEmbeddingRecord)
	}

	if record.DeckId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, ErrMissingDeckId)
	}

	if record.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, ErrEmptyContent)
	}

	if record.Metadata.Chunk < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, ErrInvalidChunkIndex)
	}

	return nil
}

// ValidateAsset validates an Asset according to domain rules.
func ValidateAsset(asset *Asset) error {
	if asset == nil {
		return fmt.Errorf("%w: asset is nil", ErrInvalidAsset)
	}

	if asset.Path == "" {
		return fmt.Errorf("%w: asset path cannot be empty", ErrInvalidAsset)
	}

	if asset.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAsset, ErrEmptyFilename)
	}

	return nil
}

// ValidateSender validates that a Sender has a valid value.
func ValidateSender(sender Sender) error {
	if sender != SenderUser && sender != SenderAssistant {
		return fmt.Errorf("%w: value %d", ErrInvalidSender, sender)
	}
	return nil
}

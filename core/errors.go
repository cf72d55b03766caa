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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDeck indicates a Deck failed validation.
	ErrInvalidDeck = errors.New("invalid deck")

	// ErrInvalidSlide indicates a Slide failed validation.
	ErrInvalidSlide = errors.New("invalid slide")

	// ErrInvalidSection indicates a Section failed validation.
	ErrInvalidSection = errors.New("invalid section")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidEmbeddingRecord indicates an EmbeddingRecord failed validation.
	ErrInvalidEmbeddingRecord = errors.New("invalid embedding record")

	// ErrInvalidAsset indicates an Asset failed validation.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyUserId indicates the UserId field is empty.
	ErrEmptyUserId = errors.New("user id cannot be empty")

	// ErrEmptyContent indicates a content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptySectionName indicates the section Name field is empty.
	ErrEmptySectionName = errors.New("section name cannot be empty")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrMissingDeckId indicates a record is not attached to a deck.
	ErrMissingDeckId = errors.New("deck id cannot be zero")

	// ErrInvalidOrderIndex indicates a negative slide order index.
	ErrInvalidOrderIndex = errors.New("order index cannot be negative")

	// ErrInvalidChunkIndex indicates a chunk index below 1.
	ErrInvalidChunkIndex = errors.New("chunk index must be 1 or greater")

	// ErrInvalidSender indicates an invalid Sender value.
	ErrInvalidSender = errors.New("invalid sender")

	// ErrInvalidDeckStatus indicates an unrecognized DeckStatus value.
	ErrInvalidDeckStatus = errors.New("invalid deck status")
)

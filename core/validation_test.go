package core

import (
	"errors"
	"testing"
)

func TestValidateDeck(t *testing.T) {
	tests := []struct {
		name    string
		deck    *Deck
		wantErr error
	}{
		{
			name: "valid deck",
			deck: &Deck{
				Id:     1,
				UserId: "user-1",
				Title:  "Acme Series A",
				Status: DeckStatusDraft,
			},
			wantErr: nil,
		},
		{
			name: "valid deck with empty status",
			deck: &Deck{
				Id:     1,
				UserId: "user-1",
				Title:  "Acme Series A",
			},
			wantErr: nil,
		},
		{
			name: "valid deck with ID 0",
			deck: &Deck{
				Id:     0,
				UserId: "user-1",
				Title:  "Acme Series A",
			},
			wantErr: nil,
		},
		{
			name:    "nil deck",
			deck:    nil,
			wantErr: ErrInvalidDeck,
		},
		{
			name: "empty user id",
			deck: &Deck{
				Id:    1,
				Title: "Acme Series A",
			},
			wantErr: ErrEmptyUserId,
		},
		{
			name: "empty title",
			deck: &Deck{
				Id:     1,
				UserId: "user-1",
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "unknown status",
			deck: &Deck{
				Id:     1,
				UserId: "user-1",
				Title:  "Acme Series A",
				Status: DeckStatus("archived"),
			},
			wantErr: ErrInvalidDeckStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeck(tt.deck)
			checkValidationErr(t, "ValidateDeck", err, tt.wantErr)
		})
	}
}

func TestValidateSlide(t *testing.T) {
	tests := []struct {
		name    string
		slide   *Slide
		wantErr error
	}{
		{
			name: "valid slide",
			slide: &Slide{
				Id:         1,
				DeckId:     7,
				Title:      "Problem",
				Content:    "Fundraising is slow",
				OrderIndex: 0,
			},
			wantErr: nil,
		},
		{
			name: "valid slide with empty content",
			slide: &Slide{
				Id:     1,
				DeckId: 7,
				Title:  "Problem",
			},
			wantErr: nil,
		},
		{
			name: "valid slide with no section",
			slide: &Slide{
				Id:        1,
				DeckId:    7,
				SectionId: 0,
				Title:     "Problem",
			},
			wantErr: nil,
		},
		{
			name:    "nil slide",
			slide:   nil,
			wantErr: ErrInvalidSlide,
		},
		{
			name: "missing deck id",
			slide: &Slide{
				Id:    1,
				Title: "Problem",
			},
			wantErr: ErrMissingDeckId,
		},
		{
			name: "empty title",
			slide: &Slide{
				Id:     1,
				DeckId: 7,
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "negative order index",
			slide: &Slide{
				Id:         1,
				DeckId:     7,
				Title:      "Problem",
				OrderIndex: -1,
			},
			wantErr: ErrInvalidOrderIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlide(tt.slide)
			checkValidationErr(t, "ValidateSlide", err, tt.wantErr)
		})
	}
}

func TestValidateSection(t *testing.T) {
	tests := []struct {
		name    string
		section *Section
		wantErr error
	}{
		{
			name: "valid section",
			section: &Section{
				Id:             1,
				Name:           "Problem",
				Description:    "What pain are you solving",
				SuggestedOrder: 1,
			},
			wantErr: nil,
		},
		{
			name: "valid section with empty description",
			section: &Section{
				Id:   1,
				Name: "Ask",
			},
			wantErr: nil,
		},
		{
			name:    "nil section",
			section: nil,
			wantErr: ErrInvalidSection,
		},
		{
			name: "empty name",
			section: &Section{
				Id: 1,
			},
			wantErr: ErrEmptySectionName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSection(tt.section)
			checkValidationErr(t, "ValidateSection", err, tt.wantErr)
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Id:        1,
				DeckId:    7,
				Filename:  "metrics.pdf",
				MediaType: "application/pdf",
				FullText:  "ARR grew 3x year over year",
			},
			wantErr: nil,
		},
		{
			name: "valid document with empty text",
			doc: &Document{
				Id:       1,
				DeckId:   7,
				Filename: "notes.md",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "missing deck id",
			doc: &Document{
				Id:       1,
				Filename: "metrics.pdf",
			},
			wantErr: ErrMissingDeckId,
		},
		{
			name: "empty filename",
			doc: &Document{
				Id:     1,
				DeckId: 7,
			},
			wantErr: ErrEmptyFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			checkValidationErr(t, "ValidateDocument", err, tt.wantErr)
		})
	}
}

func TestValidateEmbeddingRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *EmbeddingRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &EmbeddingRecord{
				Id:      1,
				DeckId:  7,
				Content: "ARR grew 3x year over year",
				Vector:  []float32{0.1, 0.2},
				Metadata: ChunkMetadata{
					Source:    "metrics.pdf",
					Chunk:     1,
					MediaType: "application/pdf",
				},
			},
			wantErr: nil,
		},
		{
			name: "valid record without vector",
			record: &EmbeddingRecord{
				Id:       1,
				DeckId:   7,
				Content:  "ARR grew 3x year over year",
				Metadata: ChunkMetadata{Source: "metrics.pdf", Chunk: 2},
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidEmbeddingRecord,
		},
		{
			name: "missing deck id",
			record: &EmbeddingRecord{
				Id:       1,
				Content:  "text",
				Metadata: ChunkMetadata{Chunk: 1},
			},
			wantErr: ErrMissingDeckId,
		},
		{
			name: "empty content",
			record: &EmbeddingRecord{
				Id:       1,
				DeckId:   7,
				Metadata: ChunkMetadata{Chunk: 1},
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "zero chunk index",
			record: &EmbeddingRecord{
				Id:      1,
				DeckId:  7,
				Content: "text",
			},
			wantErr: ErrInvalidChunkIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbeddingRecord(tt.record)
			checkValidationErr(t, "ValidateEmbeddingRecord", err, tt.wantErr)
		})
	}
}

func TestValidateAsset(t *testing.T) {
	tests := []struct {
		name    string
		asset   *Asset
		wantErr error
	}{
		{
			name: "valid asset",
			asset: &Asset{
				Id:       1,
				Path:     "decks/7/logo.png",
				Filename: "logo.png",
				Type:     "image/png",
			},
			wantErr: nil,
		},
		{
			name:    "nil asset",
			asset:   nil,
			wantErr: ErrInvalidAsset,
		},
		{
			name: "empty path",
			asset: &Asset{
				Id:       1,
				Filename: "logo.png",
			},
			wantErr: ErrInvalidAsset,
		},
		{
			name: "empty filename",
			asset: &Asset{
				Id:   1,
				Path: "decks/7/logo.png",
			},
			wantErr: ErrEmptyFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAsset(tt.asset)
			checkValidationErr(t, "ValidateAsset", err, tt.wantErr)
		})
	}
}

func TestValidateSender(t *testing.T) {
	tests := []struct {
		name    string
		sender  Sender
		wantErr bool
	}{
		{
			name:    "user sender",
			sender:  SenderUser,
			wantErr: false,
		},
		{
			name:    "assistant sender",
			sender:  SenderAssistant,
			wantErr: false,
		},
		{
			name:    "invalid sender (0)",
			sender:  Sender(0),
			wantErr: true,
		},
		{
			name:    "invalid sender (999)",
			sender:  Sender(999),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSender(tt.sender)

			if tt.wantErr && err == nil {
				t.Error("ValidateSender() error = nil, want error")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("ValidateSender() error = %v, want nil", err)
			}

			if err != nil && !errors.Is(err, ErrInvalidSender) {
				t.Errorf("ValidateSender() error = %v, want %v", err, ErrInvalidSender)
			}
		})
	}
}

func checkValidationErr(t *testing.T, fn string, err, wantErr error) {
	t.Helper()

	if wantErr == nil {
		if err != nil {
			t.Errorf("%s() error = %v, want nil", fn, err)
		}
		return
	}

	if err == nil {
		t.Errorf("%s() error = nil, want %v", fn, wantErr)
		return
	}

	if !errors.Is(err, wantErr) {
		t.Errorf("%s() error = %v, want %v", fn, err, wantErr)
	}
}

package storage

import (
	"testing"
	"time"

	"github.com/poiesic/pitchcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalDeck(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	deck := &core.Deck{
		Id:           42,
		UserId:       "user-1",
		Title:        "Acme Series A",
		CompanyName:  "Acme",
		Description:  "Robotics for warehouses",
		Industry:     "Logistics",
		FundingStage: "Series A",
		FundingGoal:  "$5M",
		Status:       core.DeckStatusDraft,
		Version:      3,
		KeyMetrics:   map[string]string{"arr": "$1.2M", "churn": "2%"},
		InsertedAt:   now,
		UpdatedAt:    now,
	}

	data := MarshalDeck(deck)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalDeck(data)
	require.NoError(t, err)
	assert.Equal(t, deck, decoded)
}

func TestMarshalUnmarshalEmbeddingRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &core.EmbeddingRecord{
		Id:      7,
		DeckId:  42,
		Content: "ARR grew 3x year over year",
		Vector:  []float32{0.1, -0.5, 0.25},
		Metadata: core.ChunkMetadata{
			Source:    "metrics.pdf",
			Chunk:     2,
			MediaType: "application/pdf",
		},
		InsertedAt: now,
	}

	data := MarshalEmbeddingRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalEmbeddingRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestUnmarshal_TimestampsComeBackUTC(t *testing.T) {
	// The time codec decodes into the local zone. A decoded record must
	// still deep-compare equal to the UTC original.
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("deck", func(t *testing.T) {
		deck := &core.Deck{Id: 1, UserId: "u", Title: "t", InsertedAt: now, UpdatedAt: now}
		decoded, err := UnmarshalDeck(MarshalDeck(deck))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, decoded.InsertedAt.Location())
		assert.Equal(t, time.UTC, decoded.UpdatedAt.Location())
	})

	t.Run("embedding record", func(t *testing.T) {
		record := &core.EmbeddingRecord{
			Id: 1, DeckId: 2, Content: "c",
			Metadata:   core.ChunkMetadata{Source: "s", Chunk: 1},
			InsertedAt: now,
		}
		decoded, err := UnmarshalEmbeddingRecord(MarshalEmbeddingRecord(record))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, decoded.InsertedAt.Location())
	})

	t.Run("checkpoint", func(t *testing.T) {
		checkpoint := &core.Checkpoint{Task: "reindex:1", LastRecordId: 3, Processed: 4, UpdatedAt: now}
		decoded, err := UnmarshalCheckpoint(MarshalCheckpoint(checkpoint))
		require.NoError(t, err)
		assert.Equal(t, checkpoint, decoded)
		assert.Equal(t, time.UTC, decoded.UpdatedAt.Location())
	})
}

func TestUnmarshalDeck_Truncated(t *testing.T) {
	deck := &core.Deck{Id: 1, UserId: "u", Title: "t"}
	data := MarshalDeck(deck)

	_, err := UnmarshalDeck(data[:1])
	assert.Error(t, err)
}

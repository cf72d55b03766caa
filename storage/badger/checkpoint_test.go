package badger

import (
	"context"
	"testing"

	"github.com/poiesic/pitchcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository_SaveAndLoad(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Task:         "reindex:1",
		LastRecordId: 42,
		Processed:    100,
	})
	require.NoError(t, err)

	loaded, err := repos.Checkpoints.LoadCheckpoint(ctx, "reindex:1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, core.ID(42), loaded.LastRecordId)
	assert.Equal(t, 100, loaded.Processed)
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestCheckpointRepository_LoadMissing(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	loaded, err := repos.Checkpoints.LoadCheckpoint(context.Background(), "reindex:999")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCheckpointRepository_SaveOverwrites(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Task: "reindex:1", LastRecordId: 10, Processed: 10,
	})
	require.NoError(t, err)

	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Task: "reindex:1", LastRecordId: 20, Processed: 20,
	})
	require.NoError(t, err)

	loaded, err := repos.Checkpoints.LoadCheckpoint(ctx, "reindex:1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, core.ID(20), loaded.LastRecordId)
}

func TestCheckpointRepository_Clear(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	err = repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Task: "reindex:1", LastRecordId: 5, Processed: 5,
	})
	require.NoError(t, err)

	err = repos.Checkpoints.ClearCheckpoint(ctx, "reindex:1")
	require.NoError(t, err)

	loaded, err := repos.Checkpoints.LoadCheckpoint(ctx, "reindex:1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is not an error
	err = repos.Checkpoints.ClearCheckpoint(ctx, "reindex:1")
	assert.NoError(t, err)
}

package badger

import (
	"context"
	"testing"

	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionRepository_AddAndGet(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Sections.AddSections(ctx, &core.Section{
		Name:           "Problem",
		Description:    "The pain point the company addresses",
		SuggestedOrder: 1,
	})
	require.NoError(t, err)
	require.Len(t, added, 1)

	// Content-based ID derived from the name
	assert.Equal(t, core.IDFromContent("Problem"), added[0].Id)

	got, err := repos.Sections.GetSection(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Problem", got.Name)
}

func TestSectionRepository_AddOverwritesByName(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Sections.AddSections(ctx, &core.Section{
		Name:           "Team",
		Description:    "Old description",
		SuggestedOrder: 8,
	})
	require.NoError(t, err)

	_, err = repos.Sections.AddSections(ctx, &core.Section{
		Name:           "Team",
		Description:    "New description",
		SuggestedOrder: 8,
	})
	require.NoError(t, err)

	sections, err := repos.Sections.GetSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "New description", sections[0].Description)
}

func TestSectionRepository_GetByName(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Sections.AddSections(ctx,
		&core.Section{Name: "Traction", SuggestedOrder: 5},
		&core.Section{Name: "Ask", SuggestedOrder: 10},
	)
	require.NoError(t, err)

	got, err := repos.Sections.GetSectionByName(ctx, "Ask")
	require.NoError(t, err)
	assert.Equal(t, 10, got.SuggestedOrder)

	_, err = repos.Sections.GetSectionByName(ctx, "Moat")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSectionRepository_GetSectionsOrdered(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Sections.AddSections(ctx,
		&core.Section{Name: "Ask", SuggestedOrder: 10},
		&core.Section{Name: "Problem", SuggestedOrder: 1},
		&core.Section{Name: "Solution", SuggestedOrder: 2},
	)
	require.NoError(t, err)

	sections, err := repos.Sections.GetSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "Problem", sections[0].Name)
	assert.Equal(t, "Solution", sections[1].Name)
	assert.Equal(t, "Ask", sections[2].Name)
}

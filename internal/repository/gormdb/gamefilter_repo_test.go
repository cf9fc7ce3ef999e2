package gormdb_test

import (
	"context"
	"testing"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFilters_Idempotent(t *testing.T) {
	repos := testutil.NewTestRepositories(t)
	ctx := context.Background()

	// NewTestRepositories seeds once already; seeding again must not fail.
	require.NoError(t, repos.GameFilter.SeedFilters(ctx, domain.AllFilterKinds()))
	require.NoError(t, repos.GameFilter.SeedFilters(ctx, domain.AllFilterKinds()))
}

func TestLookup_UnseenGame(t *testing.T) {
	repos := testutil.NewTestRepositories(t)

	found, seen, err := repos.GameFilter.Lookup(context.Background(), 440)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Empty(t, found)
}

func TestRecord_EmptySetStillMarksSeen(t *testing.T) {
	repos := testutil.NewTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.GameFilter.Record(ctx, 440, domain.NewFilterSet()))

	found, seen, err := repos.GameFilter.Lookup(ctx, 440)
	require.NoError(t, err)
	assert.True(t, seen, "a checked game with no matches must still be seen")
	assert.Empty(t, found)
}

func TestRecord_RoundTrip(t *testing.T) {
	repos := testutil.NewTestRepositories(t)
	ctx := context.Background()

	stored := domain.NewFilterSet(domain.FilterMultiplayer, domain.FilterCoop, domain.FilterTradingCards)
	require.NoError(t, repos.GameFilter.Record(ctx, 620, stored))

	found, seen, err := repos.GameFilter.Lookup(ctx, 620)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, stored.Kinds(), found.Kinds())
}

func TestRecord_ReplacesOnShrink(t *testing.T) {
	repos := testutil.NewTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.GameFilter.Record(ctx, 620,
		domain.NewFilterSet(domain.FilterMultiplayer, domain.FilterCoop, domain.FilterTradingCards)))
	require.NoError(t, repos.GameFilter.Record(ctx, 620,
		domain.NewFilterSet(domain.FilterCoop)))

	found, seen, err := repos.GameFilter.Lookup(ctx, 620)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, []domain.FilterKind{domain.FilterCoop}, found.Kinds(),
		"no stale associations may survive a shrink")
}

func TestRecord_IdempotentUpsert(t *testing.T) {
	repos := testutil.NewTestRepositories(t)
	ctx := context.Background()

	set := domain.NewFilterSet(domain.FilterAchievements)
	require.NoError(t, repos.GameFilter.Record(ctx, 570, set))
	require.NoError(t, repos.GameFilter.Record(ctx, 570, set))

	found, seen, err := repos.GameFilter.Lookup(ctx, 570)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, set.Kinds(), found.Kinds())
}

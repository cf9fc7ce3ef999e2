package service_test

import (
	"context"
	"testing"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/HSAR/GamesInCommon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detailPayload approximates a store response carrying the given
// category descriptions.
func detailPayload(keywords ...string) string {
	payload := `{"success":true,"data":{"categories":[`
	for i, kw := range keywords {
		if i > 0 {
			payload += ","
		}
		payload += `{"description":"` + kw + `"}`
	}
	return payload + `]}}`
}

func newFilterService(t *testing.T, fake *testutil.FakeSteam) *service.FilterService {
	t.Helper()
	repos := testutil.NewTestRepositories(t)
	return service.NewFilterService(newFakeClient(t, fake), repos.GameFilter, repos.Scan, testutil.Logger())
}

func TestResolve_CacheMissThenHit(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()
	fake.SetDetails(440, detailPayload("Multi-player", "Steam Trading Cards"))

	svc := newFilterService(t, fake)
	ctx := context.Background()
	game := domain.Game{AppID: 440, Name: "Team Fortress 2"}

	first, err := svc.Resolve(ctx, game, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.FilterKind{domain.FilterMultiplayer, domain.FilterTradingCards}, first.Kinds())
	assert.Equal(t, 1, fake.DetailRequests(440))

	second, err := svc.Resolve(ctx, game, false)
	require.NoError(t, err)
	assert.Equal(t, first.Kinds(), second.Kinds())
	assert.Equal(t, 1, fake.DetailRequests(440), "second resolve must be a pure cache hit")
}

func TestResolve_ForceRefreshReplaces(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()
	fake.SetDetails(620, detailPayload("Multi-player", "Co-op", "Steam Trading Cards"))

	svc := newFilterService(t, fake)
	ctx := context.Background()
	game := domain.Game{AppID: 620, Name: "Portal 2"}

	first, err := svc.Resolve(ctx, game, false)
	require.NoError(t, err)
	require.Len(t, first.Kinds(), 3)

	// The store page changed: only co-op remains.
	fake.SetDetails(620, detailPayload("Co-op"))

	refreshed, err := svc.Resolve(ctx, game, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.FilterKind{domain.FilterCoop}, refreshed.Kinds())
	assert.Equal(t, 2, fake.DetailRequests(620), "forced refresh performs exactly one fetch")

	// The cache now answers with the replaced set.
	cached, err := svc.Resolve(ctx, game, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.FilterKind{domain.FilterCoop}, cached.Kinds())
	assert.Equal(t, 2, fake.DetailRequests(620))
}

func TestResolve_KeywordMustBeQuoted(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()
	// Keyword appears without quotes: the delimited-token match must
	// not fire.
	fake.SetDetails(570, `{"about": "this game is Multi-player in spirit"}`)

	svc := newFilterService(t, fake)

	found, err := svc.Resolve(context.Background(), domain.Game{AppID: 570}, false)
	require.NoError(t, err)
	assert.Empty(t, found.Kinds())
}

func TestResolve_RecordsScanHistory(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()
	fake.SetDetails(440, detailPayload("Multi-player"))

	repos := testutil.NewTestRepositories(t)
	svc := service.NewFilterService(newFakeClient(t, fake), repos.GameFilter, repos.Scan, testutil.Logger())
	ctx := context.Background()

	_, err := svc.Resolve(ctx, domain.Game{AppID: 440}, false)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, domain.Game{AppID: 440}, true)
	require.NoError(t, err)

	records, err := repos.Scan.GetByGame(ctx, 440)
	require.NoError(t, err)
	assert.Len(t, records, 2, "each web check appends one scan record; cache hits append none")
}

func TestFilterGames(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()
	fake.SetDetails(1, detailPayload("Multi-player", "Co-op"))
	fake.SetDetails(2, detailPayload("Multi-player"))
	fake.SetDetails(3, detailPayload())

	svc := newFilterService(t, fake)
	games := []domain.Game{{AppID: 1}, {AppID: 2}, {AppID: 3}}

	result, err := svc.FilterGames(context.Background(), games,
		[]domain.FilterKind{domain.FilterMultiplayer}, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2}, appIDs(result))

	result, err = svc.FilterGames(context.Background(), games,
		[]domain.FilterKind{domain.FilterMultiplayer, domain.FilterCoop}, false)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, appIDs(result), "resolved set must be a superset of the request")
}

func TestFilterGames_EmptyRequestKeepsEverything(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()

	svc := newFilterService(t, fake)
	games := []domain.Game{{AppID: 1}, {AppID: 2}}

	result, err := svc.FilterGames(context.Background(), games, nil, false)
	require.NoError(t, err)
	assert.Equal(t, games, result)
	assert.Equal(t, 0, fake.DetailRequests(1), "no filters requested means no resolution work")
}

func TestFilterGames_UnresolvableGameExcluded(t *testing.T) {
	fake := testutil.NewFakeSteam()
	defer fake.Close()
	fake.SetDetails(1, detailPayload("Multi-player"))
	// App 2 has no payload: the fake answers 404, a permanent failure.

	svc := newFilterService(t, fake)
	games := []domain.Game{{AppID: 1}, {AppID: 2}}

	result, err := svc.FilterGames(context.Background(), games,
		[]domain.FilterKind{domain.FilterMultiplayer}, false)
	require.NoError(t, err, "a per-game failure must not abort the phase")
	assert.Equal(t, []uint32{1}, appIDs(result))
}

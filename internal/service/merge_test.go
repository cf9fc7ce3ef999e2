package service_test

import (
	"testing"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lib(name string, appIDs ...uint32) domain.Library {
	games := make([]domain.Game, len(appIDs))
	for i, id := range appIDs {
		games[i] = domain.Game{AppID: id, Name: name}
	}
	return domain.Library{Account: domain.Account{Name: name}, Games: games}
}

func appIDs(games []domain.Game) []uint32 {
	ids := make([]uint32, len(games))
	for i, g := range games {
		ids[i] = g.AppID
	}
	return ids
}

func TestIntersectLibraries_NoLibraries(t *testing.T) {
	_, err := service.IntersectLibraries(nil)
	assert.ErrorIs(t, err, domain.ErrNoLibraries,
		"zero collections is 'nothing to compute', not an empty answer")
}

func TestIntersectLibraries_SingleLibrary(t *testing.T) {
	games, err := service.IntersectLibraries([]domain.Library{lib("alice", 440, 620, 570)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{440, 620, 570}, appIDs(games))
}

func TestIntersectLibraries_TwoLibraries(t *testing.T) {
	games, err := service.IntersectLibraries([]domain.Library{
		lib("alice", 1, 2, 3),
		lib("bob", 2, 3, 4),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{2, 3}, appIDs(games))
}

func TestIntersectLibraries_EmptyIntersection(t *testing.T) {
	games, err := service.IntersectLibraries([]domain.Library{
		lib("alice", 1, 2),
		lib("bob", 3, 4),
	})
	require.NoError(t, err)
	assert.Empty(t, games, "a valid empty intersection is not an error")
}

func TestIntersectLibraries_OneEmptyLibrary(t *testing.T) {
	games, err := service.IntersectLibraries([]domain.Library{
		lib("alice", 1, 2, 3),
		lib("bob"),
	})
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestIntersectLibraries_OrderInvariant(t *testing.T) {
	libraries := []domain.Library{
		lib("alice", 1, 2, 3, 4, 5),
		lib("bob", 2, 3, 4),
		lib("carol", 3, 4, 5, 6),
	}

	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	for _, perm := range permutations {
		input := make([]domain.Library, len(perm))
		for i, idx := range perm {
			input[i] = libraries[idx]
		}

		games, err := service.IntersectLibraries(input)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint32{3, 4}, appIDs(games),
			"intersection must not depend on input order")
	}
}

func TestIntersectLibraries_MatchesByIdentityNotName(t *testing.T) {
	games, err := service.IntersectLibraries([]domain.Library{
		{Account: domain.Account{Name: "alice"}, Games: []domain.Game{{AppID: 440, Name: "Team Fortress 2"}}},
		{Account: domain.Account{Name: "bob"}, Games: []domain.Game{{AppID: 440, Name: "TF2 (renamed)"}}},
	})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, uint32(440), games[0].AppID)
}

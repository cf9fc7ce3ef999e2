package service

import "github.com/HSAR/GamesInCommon/internal/domain"

// IntersectLibraries returns the games owned by every library, keyed by
// app id. It is a pure function: no filter state, no side effects.
//
// Zero libraries is "nothing to compute" (ErrNoLibraries), which is
// distinct from a valid empty intersection.
func IntersectLibraries(libraries []domain.Library) ([]domain.Game, error) {
	if len(libraries) == 0 {
		return nil, domain.ErrNoLibraries
	}

	// Seed with the largest collection to minimise comparison work.
	largest := 0
	for i, lib := range libraries {
		if len(lib.Games) > len(libraries[largest].Games) {
			largest = i
		}
	}

	common := make(map[uint32]domain.Game, len(libraries[largest].Games))
	for _, game := range libraries[largest].Games {
		common[game.AppID] = game
	}

	for _, lib := range libraries {
		owned := make(map[uint32]struct{}, len(lib.Games))
		for _, game := range lib.Games {
			owned[game.AppID] = struct{}{}
		}
		for appID := range common {
			if _, ok := owned[appID]; !ok {
				delete(common, appID)
			}
		}
	}

	// Keep the seed collection's order so the result is deterministic
	// for a given input.
	result := make([]domain.Game, 0, len(common))
	for _, game := range libraries[largest].Games {
		if _, ok := common[game.AppID]; ok {
			result = append(result, game)
			delete(common, game.AppID)
		}
	}
	return result, nil
}

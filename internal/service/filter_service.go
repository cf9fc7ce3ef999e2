package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/repository"
	"github.com/rs/zerolog"
)

// FilterService resolves which filter kinds each game exhibits,
// consulting the persistent cache before falling back to a web check.
//
// Two shared resources are serialized independently: the cache
// connection (cacheMu, held for reads and writes) and the store
// endpoint (fetchMu, held across a fetch including its throttle waits).
// The two are never nested, so one game sitting in a 60-second backoff
// holds only fetchMu and other games' cache hits proceed unblocked.
type FilterService struct {
	client CatalogClient
	repo   repository.GameFilterRepository
	scans  repository.ScanRepository
	logger zerolog.Logger

	cacheMu sync.Mutex
	fetchMu sync.Mutex
}

func NewFilterService(client CatalogClient, repo repository.GameFilterRepository, scans repository.ScanRepository, logger zerolog.Logger) *FilterService {
	return &FilterService{
		client: client,
		repo:   repo,
		scans:  scans,
		logger: logger.With().Str("component", "filter").Logger(),
	}
}

// Resolve returns the filter kinds known for a game. Unless forceRefresh
// is set, a game that has been checked before is answered from the cache
// with no network call. A web check persists its findings atomically
// (seen marker plus the exact found set) before returning.
func (s *FilterService) Resolve(ctx context.Context, game domain.Game, forceRefresh bool) (domain.FilterSet, error) {
	if !forceRefresh {
		s.cacheMu.Lock()
		found, seen, err := s.repo.Lookup(ctx, game.AppID)
		s.cacheMu.Unlock()
		if err != nil {
			return nil, err
		}
		if seen {
			s.logger.Debug().Uint32("appId", game.AppID).Str("game", game.Name).Msg("checked game from cache")
			return found, nil
		}
	}

	s.fetchMu.Lock()
	payload, err := s.client.AppDetails(ctx, game.AppID)
	s.fetchMu.Unlock()
	if err != nil {
		return nil, err
	}

	found := scanPayload(payload)

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if err := s.repo.Record(ctx, game.AppID, found); err != nil {
		return nil, err
	}
	if err := s.scans.Append(ctx, &domain.ScanRecord{
		AppID:     game.AppID,
		CheckedAt: time.Now(),
		Matched:   found.Kinds(),
	}); err != nil {
		return nil, err
	}

	s.logger.Info().Uint32("appId", game.AppID).Str("game", game.Name).Int("matched", len(found)).Msg("checked game from web")
	return found, nil
}

// scanPayload tests the raw detail payload for each kind's keyword as a
// quoted token. This is a deliberate low-precision heuristic: the store
// response format is not contractually specified, so false positives
// and negatives are possible.
func scanPayload(payload []byte) domain.FilterSet {
	body := string(payload)
	found := domain.NewFilterSet()
	for _, kind := range domain.AllFilterKinds() {
		if strings.Contains(body, `"`+kind.Keyword()+`"`) {
			found.Add(kind)
		}
	}
	return found
}

// FilterGames keeps the games whose resolved filter set contains every
// requested kind. One task runs per game; Resolve's internal locking
// serializes the shared cache and fetch resources. An empty request
// list keeps everything.
//
// A game whose resolution fails is logged and excluded; that is
// distinguishable from "zero kinds matched" only via the log. If ctx is
// cancelled before all tasks finish, no result is returned.
func (s *FilterService) FilterGames(ctx context.Context, games []domain.Game, requested []domain.FilterKind, forceRefresh bool) ([]domain.Game, error) {
	if len(requested) == 0 {
		return games, nil
	}

	var (
		mu     sync.Mutex
		result []domain.Game
	)

	var wg sync.WaitGroup
	for _, game := range games {
		wg.Add(1)
		go func(game domain.Game) {
			defer wg.Done()

			found, err := s.Resolve(ctx, game, forceRefresh)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error().Err(err).Uint32("appId", game.AppID).Str("game", game.Name).Msg("failed to resolve game, excluding from result")
				}
				return
			}

			if found.ContainsAll(requested) {
				mu.Lock()
				result = append(result, game)
				mu.Unlock()
			}
		}(game)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return result, nil
}

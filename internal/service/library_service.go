package service

import (
	"context"
	"sync"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/rs/zerolog"
)

// LibraryService fetches owned-game libraries, one concurrent task per
// account.
type LibraryService struct {
	client CatalogClient
	logger zerolog.Logger
}

func NewLibraryService(client CatalogClient, logger zerolog.Logger) *LibraryService {
	return &LibraryService{
		client: client,
		logger: logger.With().Str("component", "library").Logger(),
	}
}

// FetchAll fetches every account's library concurrently and blocks until
// all fetches finish. A failed account does not abort the run: it is
// logged, reported as a warning, and contributes nothing to the result.
// If ctx is cancelled before the barrier is reached, FetchAll returns
// ctx.Err() and no partial result.
func (s *LibraryService) FetchAll(ctx context.Context, accounts []domain.Account) ([]domain.Library, []domain.FetchWarning, error) {
	var (
		mu        sync.Mutex
		libraries []domain.Library
		warnings  []domain.FetchWarning
	)

	var wg sync.WaitGroup
	for _, account := range accounts {
		wg.Add(1)
		go func(account domain.Account) {
			defer wg.Done()

			games, err := s.client.OwnedGames(ctx, account)
			if err != nil {
				s.logger.Error().Err(err).Stringer("account", account).Msg("failed to fetch library")
				mu.Lock()
				warnings = append(warnings, domain.FetchWarning{
					Account: account,
					Reason:  err.Error(),
				})
				mu.Unlock()
				return
			}

			s.logger.Info().Stringer("account", account).Int("games", len(games)).Msg("added user library")
			mu.Lock()
			libraries = append(libraries, domain.Library{Account: account, Games: games})
			mu.Unlock()
		}(account)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	return libraries, warnings, nil
}

package service

import (
	"context"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/repository"
	"github.com/rs/zerolog"
)

// CatalogClient is the slice of the Steam client the services consume.
type CatalogClient interface {
	ResolveAccount(ctx context.Context, nameOrID string) (domain.Account, error)
	OwnedGames(ctx context.Context, account domain.Account) ([]domain.Game, error)
	AppDetails(ctx context.Context, appID uint32) ([]byte, error)
}

type Services struct {
	Library    *LibraryService
	Filter     *FilterService
	Comparison *ComparisonService
	Jobs       *JobManager
}

func NewServices(repos *repository.Repositories, client CatalogClient, logger zerolog.Logger) *Services {
	library := NewLibraryService(client, logger)
	filter := NewFilterService(client, repos.GameFilter, repos.Scan, logger)
	comparison := NewComparisonService(client, library, filter, logger)

	return &Services{
		Library:    library,
		Filter:     filter,
		Comparison: comparison,
		Jobs:       NewJobManager(comparison, logger),
	}
}

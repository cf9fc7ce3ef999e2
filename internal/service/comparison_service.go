package service

import (
	"context"
	"fmt"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/rs/zerolog"
)

// ComparisonService runs the whole pipeline: resolve accounts, fetch
// libraries, intersect, filter.
type ComparisonService struct {
	client  CatalogClient
	library *LibraryService
	filter  *FilterService
	logger  zerolog.Logger
}

func NewComparisonService(client CatalogClient, library *LibraryService, filter *FilterService, logger zerolog.Logger) *ComparisonService {
	return &ComparisonService{
		client:  client,
		library: library,
		filter:  filter,
		logger:  logger.With().Str("component", "comparison").Logger(),
	}
}

type CompareInput struct {
	// Accounts are vanity names or numeric SteamID64s.
	Accounts []string
	Filters  []domain.FilterKind
	// ForceRefresh re-checks every game against the web even when the
	// cache already knows it.
	ForceRefresh bool
}

// Compare computes the common-games set for the given accounts. An
// account name that cannot be resolved fails the whole comparison: a
// result silently missing a requested account would be wrong. A resolved
// account whose library fetch fails becomes a warning instead.
func (s *ComparisonService) Compare(ctx context.Context, input CompareInput) (*domain.Comparison, error) {
	if len(input.Accounts) == 0 {
		return nil, domain.ErrNoAccounts
	}

	accounts := make([]domain.Account, 0, len(input.Accounts))
	for _, name := range input.Accounts {
		account, err := s.client.ResolveAccount(ctx, name)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	libraries, warnings, err := s.library.FetchAll(ctx, accounts)
	if err != nil {
		return nil, err
	}

	common, err := IntersectLibraries(libraries)
	if err != nil {
		return nil, fmt.Errorf("no libraries fetched: %w", err)
	}
	s.logger.Info().Int("accounts", len(accounts)).Int("common", len(common)).Msg("search complete")

	games, err := s.filter.FilterGames(ctx, common, input.Filters, input.ForceRefresh)
	if err != nil {
		return nil, err
	}

	return &domain.Comparison{
		Accounts: accounts,
		Games:    games,
		Warnings: warnings,
	}, nil
}

package repository

import (
	"context"

	"github.com/HSAR/GamesInCommon/internal/domain"
)

type GameFilterRepository interface {
	// SeedFilters inserts one row per filter kind, ignoring kinds that
	// are already present. Called once per startup.
	SeedFilters(ctx context.Context, kinds []domain.FilterKind) error
	// Lookup returns the stored filter set for a game and whether the
	// game has been checked at all. A seen game with no associations is
	// a valid "zero filters matched" answer.
	Lookup(ctx context.Context, appID uint32) (domain.FilterSet, bool, error)
	// Record marks the game as seen and replaces its association set
	// with exactly the found set, atomically with respect to Lookup.
	Record(ctx context.Context, appID uint32, found domain.FilterSet) error
}

type ScanRepository interface {
	Append(ctx context.Context, rec *domain.ScanRecord) error
	GetByGame(ctx context.Context, appID uint32) ([]*domain.ScanRecord, error)
}

type Repositories struct {
	GameFilter GameFilterRepository
	Scan       ScanRepository
}

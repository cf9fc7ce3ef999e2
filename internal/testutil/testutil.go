package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/repository"
	"github.com/HSAR/GamesInCommon/internal/repository/gormdb"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewTestDB opens a throwaway sqlite database in the test's temp dir,
// migrated and with the filter catalog seeded.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gormdb.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	return db
}

// NewTestRepositories wraps NewTestDB and seeds the filter catalog.
func NewTestRepositories(t *testing.T) *repository.Repositories {
	t.Helper()

	repos := gormdb.NewRepositories(NewTestDB(t))
	if err := repos.GameFilter.SeedFilters(context.Background(), domain.AllFilterKinds()); err != nil {
		t.Fatalf("failed to seed filters: %v", err)
	}
	return repos
}

// Logger returns a silent logger for tests.
func Logger() zerolog.Logger {
	return zerolog.Nop()
}

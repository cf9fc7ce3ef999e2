package gormdb

import (
	"strings"

	"github.com/HSAR/GamesInCommon/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the filter cache database. A postgres:// DSN gets
// the postgres driver; anything else is treated as a sqlite file path,
// which is the default for local runs (gamedata.db next to the binary).
func NewConnection(databaseURL string) (*gorm.DB, error) {
	dialector := openDialector(databaseURL)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&GameRecord{},
		&FilterRecord{},
		&GameFilterRecord{},
		&ScanRecord{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		GameFilter: NewGameFilterRepository(db),
		Scan:       NewScanRepository(db),
	}
}

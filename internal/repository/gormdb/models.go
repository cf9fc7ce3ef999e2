package gormdb

import (
	"time"

	"gorm.io/datatypes"
)

// GameRecord doubles as the seen marker: a row exists once the game has
// been checked at least once, whatever the scan found.
type GameRecord struct {
	ID uint32 `gorm:"primaryKey;autoIncrement:false"`
}

func (GameRecord) TableName() string { return "games" }

// FilterRecord holds one row per filter kind ordinal, seeded at startup.
type FilterRecord struct {
	ID int `gorm:"primaryKey;autoIncrement:false"`
}

func (FilterRecord) TableName() string { return "filters" }

// GameFilterRecord is the many-to-many association between a seen game
// and the filter kinds found for it.
type GameFilterRecord struct {
	FilterID int    `gorm:"primaryKey;autoIncrement:false"`
	GameID   uint32 `gorm:"primaryKey;autoIncrement:false"`
}

func (GameFilterRecord) TableName() string { return "gamefilters" }

// ScanRecord is the append-only audit log of web checks. Matched holds
// the kind names found by the keyword scan as a JSON array.
type ScanRecord struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    uint32         `gorm:"index;not null"`
	CheckedAt time.Time      `gorm:"not null"`
	Matched   datatypes.JSON `gorm:"not null"`
}

func (ScanRecord) TableName() string { return "scans" }

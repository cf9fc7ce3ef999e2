package gormdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"gorm.io/gorm"
)

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) *scanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Append(ctx context.Context, rec *domain.ScanRecord) error {
	names := make([]string, 0, len(rec.Matched))
	for _, k := range rec.Matched {
		names = append(names, k.String())
	}
	matchedJSON, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal matched kinds: %w", err)
	}

	row := ScanRecord{
		GameID:    rec.AppID,
		CheckedAt: rec.CheckedAt,
		Matched:   matchedJSON,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *scanRepository) GetByGame(ctx context.Context, appID uint32) ([]*domain.ScanRecord, error) {
	var rows []ScanRecord
	err := r.db.WithContext(ctx).
		Where("game_id = ?", appID).
		Order("checked_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.ScanRecord, 0, len(rows))
	for _, row := range rows {
		var names []string
		if err := json.Unmarshal(row.Matched, &names); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matched kinds: %w", err)
		}
		matched := make([]domain.FilterKind, 0, len(names))
		for _, name := range names {
			kind, err := domain.ParseFilterKind(name)
			if err != nil {
				continue
			}
			matched = append(matched, kind)
		}
		records = append(records, &domain.ScanRecord{
			AppID:     row.GameID,
			CheckedAt: row.CheckedAt,
			Matched:   matched,
		})
	}
	return records, nil
}

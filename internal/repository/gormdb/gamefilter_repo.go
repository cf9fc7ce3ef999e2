package gormdb

import (
	"context"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gameFilterRepository struct {
	db *gorm.DB
}

func NewGameFilterRepository(db *gorm.DB) *gameFilterRepository {
	return &gameFilterRepository{db: db}
}

func (r *gameFilterRepository) SeedFilters(ctx context.Context, kinds []domain.FilterKind) error {
	if len(kinds) == 0 {
		return nil
	}
	records := make([]FilterRecord, len(kinds))
	for i, k := range kinds {
		records[i] = FilterRecord{ID: int(k)}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&records).Error
}

func (r *gameFilterRepository) Lookup(ctx context.Context, appID uint32) (domain.FilterSet, bool, error) {
	var seen bool
	found := domain.NewFilterSet()

	// Read the seen marker and the associations in one transaction so a
	// concurrent Record cannot leave us with half an answer.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&GameRecord{}).Where("id = ?", appID).Count(&count).Error; err != nil {
			return err
		}
		seen = count > 0
		if !seen {
			return nil
		}

		var filterIDs []int
		if err := tx.Model(&GameFilterRecord{}).
			Where("game_id = ?", appID).
			Pluck("filter_id", &filterIDs).Error; err != nil {
			return err
		}
		for _, id := range filterIDs {
			found.Add(domain.FilterKind(id))
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return found, seen, nil
}

func (r *gameFilterRepository) Record(ctx context.Context, appID uint32, found domain.FilterSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			DoNothing: true,
		}).Create(&GameRecord{ID: appID}).Error; err != nil {
			return err
		}

		// Replace, never merge: a forced refresh that finds fewer kinds
		// must not leave stale associations behind.
		if err := tx.Where("game_id = ?", appID).Delete(&GameFilterRecord{}).Error; err != nil {
			return err
		}

		kinds := found.Kinds()
		if len(kinds) == 0 {
			return nil
		}
		records := make([]GameFilterRecord, len(kinds))
		for i, k := range kinds {
			records[i] = GameFilterRecord{FilterID: int(k), GameID: appID}
		}
		return tx.Clauses(clause.OnConflict{
			DoNothing: true,
		}).Create(&records).Error
	})
}

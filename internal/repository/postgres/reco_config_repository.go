package postgres

import (
	"context"
	"errors"
	"fmt"
	"makeItSell/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecoConfigRepository struct {
	DB *gorm.DB
}

func NewRecoConfigRepository(db *gorm.DB) *RecoConfigRepository {
	return &RecoConfigRepository{
		DB: db,
	}
}

func (r *RecoConfigRepository) GetConfig(ctx context.Context, slot string) (domain.RecoConfig, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecoConfig{}, false, fmt.Errorf("context error: %w", err)
	}

	var cfg domain.RecoConfig

	err := r.DB.WithContext(ctx).First(&cfg, "slot = ?", slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecoConfig{}, false, nil
		}
		return domain.RecoConfig{}, false, fmt.Errorf("failed to find reco config: %w", err)
	}

	return cfg, true, nil
}

func (r *RecoConfigRepository) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			UpdateAll: true,
		}).
		Create(&cfg).Error
	if err != nil {
		return fmt.Errorf("failed to upsert reco config: %w", err)
	}

	return nil
}

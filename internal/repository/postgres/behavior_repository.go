package postgres

import (
	"context"
	"errors"
	"fmt"
	"makeItSell/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{
		DB: db,
	}
}

func (r *BehaviorRepository) GetByUserID(ctx context.Context, userID string) (domain.UserBehavior, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserBehavior{}, fmt.Errorf("context error: %w", err)
	}

	var behavior domain.UserBehavior

	err := r.DB.WithContext(ctx).First(&behavior, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserBehavior{}, domain.ErrBehaviorNotFound
		}
		return domain.UserBehavior{}, fmt.Errorf("failed to find behavior snapshot: %w", err)
	}

	return behavior, nil
}

// UpdateSnapshot folds one change into a user's snapshot under a row lock,
// so concurrent events for the same user serialize instead of losing
// increments to a read-modify-write race.
func (r *BehaviorRepository) UpdateSnapshot(ctx context.Context, userID string, apply func(*domain.UserBehavior) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snapshot domain.UserBehavior

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&snapshot, "user_id = ?", userID).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to find behavior snapshot: %w", err)
			}
			snapshot = domain.UserBehavior{UserID: userID}
		}

		if err := apply(&snapshot); err != nil {
			return err
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(&snapshot).Error
		if err != nil {
			return fmt.Errorf("failed to save behavior snapshot: %w", err)
		}

		return nil
	})
}

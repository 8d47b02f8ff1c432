package postgres

import (
	"context"
	"fmt"
	"makeItSell/domain"

	"gorm.io/gorm"
)

type BehaviorEventRepository struct {
	DB *gorm.DB
}

func NewBehaviorEventRepository(db *gorm.DB) *BehaviorEventRepository {
	return &BehaviorEventRepository{
		DB: db,
	}
}

func (r *BehaviorEventRepository) SaveEvent(ctx context.Context, event *domain.BehaviorEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save behavior event: %w", err)
	}

	return nil
}

func (r *BehaviorEventRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]domain.BehaviorEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.BehaviorEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find behavior events: %w", err)
	}

	return events, nil
}

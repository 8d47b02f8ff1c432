package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UserBehavior is one user's aggregated interaction snapshot. The behavior
// service folds events into it; the recommendation engine treats it as an
// immutable snapshot for the duration of one ranking call.
type UserBehavior struct {
	UserID                string                      `gorm:"primaryKey;column:user_id;type:text" json:"user_id"`
	ViewedProducts        datatypes.JSONSlice[string] `gorm:"column:viewed_products;type:jsonb" json:"viewed_products"`
	ViewedCategories      map[string]int              `gorm:"column:viewed_categories;type:jsonb;serializer:json" json:"viewed_categories"`
	SearchQueries         datatypes.JSONSlice[string] `gorm:"column:search_queries;type:jsonb" json:"search_queries"`
	LikedProducts         datatypes.JSONSlice[string] `gorm:"column:liked_products;type:jsonb" json:"liked_products"`
	PurchaseHistory       datatypes.JSONSlice[string] `gorm:"column:purchase_history;type:jsonb" json:"purchase_history"`
	TimeSpentOnCategories map[string]float64          `gorm:"column:time_spent_on_categories;type:jsonb;serializer:json" json:"time_spent_on_categories"`
	PriceMin              float64                     `gorm:"column:price_min;type:numeric" json:"price_min"`
	PriceMax              float64                     `gorm:"column:price_max;type:numeric" json:"price_max"`
	PreferredBrands       datatypes.JSONSlice[string] `gorm:"column:preferred_brands;type:jsonb" json:"preferred_brands"`
	UpdatedAt             time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserBehavior) TableName() string {
	return "user_behaviors"
}

// BehaviorEvent is one raw interaction as reported by the storefront.
type BehaviorEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"column:user_id;type:text;not null" json:"user_id"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"`
	ProductID string            `gorm:"column:product_id;type:text" json:"product_id,omitempty"`
	Query     string            `gorm:"column:query;type:text" json:"query,omitempty"`
	Value     float64           `gorm:"column:value;type:numeric" json:"value,omitempty"` // seconds for dwell events
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BehaviorEvent) TableName() string {
	return "behavior_events"
}

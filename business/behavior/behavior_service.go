package behavior

import (
	"context"
	"errors"
	"fmt"
	"makeItSell/business/reco"
	"makeItSell/domain"
	"makeItSell/pkg/logger"
)

// Event types accepted from the storefront.
const (
	EventView     = "view"
	EventLike     = "like"
	EventPurchase = "purchase"
	EventSearch   = "search"
	EventDwell    = "dwell"
)

// recent search queries kept in the snapshot
const maxRecentSearches = 20

// how strongly each event type moves category affinity
var affinityDelta = map[string]int{
	EventView:     1,
	EventLike:     2,
	EventPurchase: 3,
}

// Caller-bug rejections, distinguishable with errors.Is at the HTTP layer.
var (
	ErrUserIDRequired     = errors.New("user_id is required")
	ErrEventTypeRequired  = errors.New("event_type is required")
	ErrQueryRequired      = errors.New("query is required for search events")
	ErrDwellValueRequired = errors.New("positive value (seconds) is required for dwell events")
	ErrUnknownEventType   = errors.New("unknown event type")
)

// ---- Repository interfaces ----

type BehaviorRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.UserBehavior, error)
	// UpdateSnapshot applies one fold to the user's snapshot atomically
	// (load, apply, save under a row lock), creating a zero snapshot for a
	// first-time user. Concurrent events for one user serialize here.
	UpdateSnapshot(ctx context.Context, userID string, apply func(*domain.UserBehavior) error) error
}

type EventRepository interface {
	SaveEvent(ctx context.Context, event *domain.BehaviorEvent) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
	IncrementSales(ctx context.Context, id string) error
}

// ---- Usecase / Service ----

type behaviorService struct {
	behaviorRepo BehaviorRepository
	eventRepo    EventRepository
	productRepo  ProductRepository
}

func NewBehaviorService(
	behaviorRepo BehaviorRepository,
	eventRepo EventRepository,
	productRepo ProductRepository,
) *behaviorService {
	return &behaviorService{
		behaviorRepo: behaviorRepo,
		eventRepo:    eventRepo,
		productRepo:  productRepo,
	}
}

// GetSnapshot returns the stored behavior snapshot for a user, or a fresh
// empty one when the user has no history yet.
func (s *behaviorService) GetSnapshot(ctx context.Context, userID string) (*domain.UserBehavior, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	snapshot, err := s.behaviorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrBehaviorNotFound) {
			return &domain.UserBehavior{UserID: userID}, nil
		}
		return nil, err
	}

	return &snapshot, nil
}

// RecordEvent folds one storefront interaction into the user's snapshot and
// persists the raw event for later analysis. Catalog counters move here too,
// so views/likes/sales stay monotonically non-decreasing in one place.
func (s *behaviorService) RecordEvent(ctx context.Context, event *domain.BehaviorEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if event.UserID == "" {
		return ErrUserIDRequired
	}

	// reject caller bugs before touching any storage
	switch event.EventType {
	case EventView, EventLike, EventPurchase:
	case EventSearch:
		if event.Query == "" {
			return ErrQueryRequired
		}
	case EventDwell:
		if event.Value <= 0 {
			return ErrDwellValueRequired
		}
	case "":
		return ErrEventTypeRequired
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEventType, event.EventType)
	}

	var product domain.Product
	if event.EventType != EventSearch {
		var err error
		product, err = s.productRepo.FindByID(ctx, event.ProductID)
		if err != nil {
			return fmt.Errorf("resolve product for %s event: %w", event.EventType, err)
		}
	}

	err := s.behaviorRepo.UpdateSnapshot(ctx, event.UserID, func(snapshot *domain.UserBehavior) error {
		if snapshot.ViewedCategories == nil {
			snapshot.ViewedCategories = make(map[string]int)
		}
		if snapshot.TimeSpentOnCategories == nil {
			snapshot.TimeSpentOnCategories = make(map[string]float64)
		}

		switch event.EventType {
		case EventView:
			snapshot.ViewedProducts = appendUnique(snapshot.ViewedProducts, product.ID)
			snapshot.ViewedCategories[product.Category] += affinityDelta[EventView]
			stretchPriceWindow(snapshot, product.Price)

		case EventLike:
			snapshot.LikedProducts = appendUnique(snapshot.LikedProducts, product.ID)
			snapshot.ViewedCategories[product.Category] += affinityDelta[EventLike]

		case EventPurchase:
			snapshot.PurchaseHistory = append(snapshot.PurchaseHistory, product.ID)
			snapshot.ViewedCategories[product.Category] += affinityDelta[EventPurchase]
			stretchPriceWindow(snapshot, product.Price)

		case EventSearch:
			snapshot.SearchQueries = append(snapshot.SearchQueries, event.Query)
			if len(snapshot.SearchQueries) > maxRecentSearches {
				snapshot.SearchQueries = snapshot.SearchQueries[len(snapshot.SearchQueries)-maxRecentSearches:]
			}

		case EventDwell:
			// stored with the snapshot for analysis; no scorer consumes it
			snapshot.TimeSpentOnCategories[product.Category] += event.Value
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update behavior snapshot: %w", err)
	}

	// counter bumps are best-effort; the snapshot is already committed
	switch event.EventType {
	case EventView:
		if err := s.productRepo.IncrementViews(ctx, product.ID); err != nil {
			logger.Warn("failed to bump view counter", "product_id", product.ID, "error", err)
		}
	case EventLike:
		if err := s.productRepo.IncrementLikes(ctx, product.ID); err != nil {
			logger.Warn("failed to bump like counter", "product_id", product.ID, "error", err)
		}
	case EventPurchase:
		if err := s.productRepo.IncrementSales(ctx, product.ID); err != nil {
			logger.Warn("failed to bump sales counter", "product_id", product.ID, "error", err)
		}
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to save behavior event: %w", err)
	}

	BehaviorEventsTotal.WithLabelValues(event.EventType).Inc()

	tid := reco.TraceIDFromContext(ctx)
	logger.Debug("behavior_event",
		"trace_id", tid,
		"user_id", event.UserID,
		"event_type", event.EventType,
		"product_id", event.ProductID,
	)

	return nil
}

func appendUnique(list []string, id string) []string {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}

// stretchPriceWindow widens the inferred affordability window around prices
// the user has engaged with, with 20% slack on either side.
func stretchPriceWindow(b *domain.UserBehavior, price float64) {
	if price <= 0 {
		return
	}

	low := price * 0.8
	high := price * 1.2

	if b.PriceMax == 0 {
		b.PriceMin = low
		b.PriceMax = high
		return
	}

	if low < b.PriceMin {
		b.PriceMin = low
	}
	if high > b.PriceMax {
		b.PriceMax = high
	}
}

package reco

import (
	"context"
	"errors"
	"fmt"
	"time"

	"makeItSell/domain"
	"makeItSell/pkg/logger"
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type BehaviorRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.UserBehavior, error)
}

// ConfigRepository reads per-slot weight overrides.
type ConfigRepository interface {
	GetConfig(ctx context.Context, slot string) (domain.RecoConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error
}

// ---- Usecase / Service ----

// Engine wires the pure ranking functions to the catalog and behavior
// providers. It holds no per-call state: every Recommend call is an
// independent computation over the snapshots it loads.
type Engine struct {
	catalogRepo  CatalogRepository
	behaviorRepo BehaviorRepository
	cfgRepo      ConfigRepository
	defaultCfg   Config
}

func NewEngine(
	catalogRepo CatalogRepository,
	behaviorRepo BehaviorRepository,
	cfgRepo ConfigRepository,
	defaultCfg Config,
) *Engine {
	return &Engine{
		catalogRepo:  catalogRepo,
		behaviorRepo: behaviorRepo,
		cfgRepo:      cfgRepo,
		defaultCfg:   defaultCfg,
	}
}

// Recommend returns up to limit products for a user, slot and strategy,
// ordered by descending score. An empty list means "no recommendations
// available", not failure.
func (e *Engine) Recommend(
	ctx context.Context,
	userID string,
	slot string,
	strategy Strategy,
	limit int,
) ([]domain.ScoredProduct, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cfg := e.loadConfig(ctx, slot)

	catalog, err := e.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	behavior, err := e.loadBehavior(ctx, userID, strategy)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	recs, err := Rank(cfg, catalog, behavior, strategy, limit, time.Now())
	if err != nil {
		RankRequestsTotal.WithLabelValues(string(strategy), "invalid").Inc()
		return nil, err
	}
	RankDuration.Observe(time.Since(start).Seconds())
	RankRequestsTotal.WithLabelValues(string(strategy), "ok").Inc()
	if len(recs) == 0 {
		RankEmptyResultsTotal.WithLabelValues(string(strategy)).Inc()
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("reco_recommend",
		"trace_id", tid,
		"user_id", userID,
		"slot", slot,
		"strategy", strategy,
		"limit", limit,
		"candidate_count", len(catalog),
		"result_count", len(recs),
	)

	return recs, nil
}

// loadBehavior returns a zero snapshot for trending (user-independent) and
// for users with no stored history yet; an empty history is weak signal, not
// an error. Anything other than a missing row is an infrastructure failure
// and propagates, so an outage never silently serves unpersonalized results.
func (e *Engine) loadBehavior(ctx context.Context, userID string, strategy Strategy) (domain.UserBehavior, error) {
	if strategy == StrategyTrending || e.behaviorRepo == nil {
		return domain.UserBehavior{UserID: userID}, nil
	}

	b, err := e.behaviorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrBehaviorNotFound) {
			return domain.UserBehavior{UserID: userID}, nil
		}
		return domain.UserBehavior{}, fmt.Errorf("load behavior snapshot: %w", err)
	}

	return b, nil
}

package reco

import (
	"context"
	"fmt"
	"math"
	"time"

	"makeItSell/domain"
	"makeItSell/pkg/logger"
)

// DebugRecommend returns the per-term score breakdown for inspection. Order
// and final scores match what Recommend would serve for the same inputs.
func (e *Engine) DebugRecommend(
	ctx context.Context,
	userID string,
	slot string,
	strategy Strategy,
	limit int,
) ([]domain.DebugScore, error) {

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

	now := time.Now()
	recs, err := Rank(cfg, catalog, behavior, strategy, limit, now)
	if err != nil {
		return nil, err
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("reco_debug_recommend",
		"trace_id", tid,
		"user_id", userID,
		"slot", slot,
		"strategy", strategy,
		"limit", limit,
		"result_count", len(recs),
	)

	out := make([]domain.DebugScore, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.DebugScore{
			ProductID:  rec.Product.ID,
			Strategy:   string(strategy),
			Components: scoreComponents(cfg, catalog, behavior, rec.Product, strategy, now, limit),
			FinalScore: rec.Score,
		})
	}

	return out, nil
}

func scoreComponents(
	cfg Config,
	catalog []domain.Product,
	behavior domain.UserBehavior,
	p domain.Product,
	strategy Strategy,
	now time.Time,
	limit int,
) map[string]float64 {

	switch strategy {
	case StrategyPersonalized:
		return personalizedComponents(cfg, p, behavior)
	case StrategyCollaborative:
		return collaborativeComponents(p, behavior.ViewedCategories[p.Category])
	case StrategyContent:
		return contentComponents(catalog, behavior, p)
	case StrategyTrending:
		return trendingComponents(p, now)
	case StrategyHybrid:
		return hybridComponents(cfg, catalog, behavior, p, now, limit)
	}
	return nil
}

func personalizedComponents(cfg Config, p domain.Product, b domain.UserBehavior) map[string]float64 {
	c := map[string]float64{
		"category_affinity": cfg.CategoryAffinityWeight * float64(b.ViewedCategories[p.Category]),
		"rating":            cfg.RatingWeight * p.Rating.Average,
	}

	if priceInRange(p.Price, b) {
		c["price_window"] = cfg.PriceInRangeBonus
	} else {
		c["price_window"] = -cfg.PriceOutOfRangePenalty
	}
	if matchesAnyTag(b.PreferredBrands, p.Tags) {
		c["brand_match"] = cfg.BrandMatchBonus
	}
	if matchesNameOrTags(b.SearchQueries, p.Name, p.Tags) {
		c["query_match"] = cfg.QueryMatchBonus
	}
	if p.Vendor.Verified {
		c["verified_vendor"] = cfg.VerifiedVendorBonus
	}
	if p.OnSale {
		c["on_sale"] = cfg.OnSaleBonus
	}

	return c
}

func collaborativeComponents(p domain.Product, affinity int) map[string]float64 {
	return map[string]float64{
		"likes":             collabLikesWeight * float64(p.Likes),
		"views":             collabViewsWeight * float64(p.Views),
		"sales":             collabSalesWeight * float64(p.Sales),
		"category_affinity": collabAffinityWeight * float64(affinity),
		"rating_volume":     collabRatingWeight * p.Rating.Average * float64(p.Rating.Count),
	}
}

func contentComponents(catalog []domain.Product, behavior domain.UserBehavior, p domain.Product) map[string]float64 {
	viewed := idSet(behavior.ViewedProducts)

	c := map[string]float64{
		"category":    0,
		"subcategory": 0,
		"shared_tags": 0,
		"price_band":  0,
		"same_vendor": 0,
		"seed_count":  0,
	}

	for _, seed := range catalog {
		if _, ok := viewed[seed.ID]; !ok {
			continue
		}
		c["seed_count"]++

		if p.Category == seed.Category {
			c["category"] += contentCategoryBonus
		}
		if p.Subcategory != "" && p.Subcategory == seed.Subcategory {
			c["subcategory"] += contentSubcategoryBonus
		}
		c["shared_tags"] += contentSharedTagBonus * float64(sharedTagCount(p.Tags, seed.Tags))
		if seed.Price > 0 && math.Abs(p.Price-seed.Price)/seed.Price < contentPriceBand {
			c["price_band"] += contentPriceBandBonus
		}
		if p.Vendor.ID != "" && p.Vendor.ID == seed.Vendor.ID {
			c["same_vendor"] += contentSameVendorBonus
		}
	}

	return c
}

func trendingComponents(p domain.Product, now time.Time) map[string]float64 {
	ageDays := now.Sub(p.CreatedAt).Seconds() / secondsPerDay
	if ageDays < 1 {
		ageDays = 1
	}

	return map[string]float64{
		"views":    trendingViewsWeight * float64(p.Views),
		"likes":    trendingLikesWeight * float64(p.Likes),
		"sales":    trendingSalesWeight * float64(p.Sales),
		"age_days": ageDays,
	}
}

// hybridComponents reports each sub-strategy's weighted positional
// contribution to one product's fused score.
func hybridComponents(
	cfg Config,
	catalog []domain.Product,
	behavior domain.UserBehavior,
	p domain.Product,
	now time.Time,
	limit int,
) map[string]float64 {

	lists := map[string]struct {
		weight float64
		items  []domain.ScoredProduct
	}{
		string(StrategyPersonalized):  {cfg.WPersonalized, rankPersonalized(cfg, catalog, behavior, limit)},
		string(StrategyCollaborative): {cfg.WCollaborative, rankCollaborative(catalog, behavior, limit)},
		string(StrategyContent):       {cfg.WContent, rankContentBased(catalog, behavior, limit)},
		string(StrategyTrending):      {cfg.WTrending, rankTrending(catalog, now, limit)},
	}

	c := make(map[string]float64, len(lists))
	for name, list := range lists {
		for i, sp := range list.items {
			if sp.Product.ID == p.ID {
				c[name] = float64(limit-i) / float64(limit) * list.weight
				break
			}
		}
	}

	return c
}

package reco

import (
	"makeItSell/domain"
	"time"
)

// fuseHybrid blends the four base strategies by weighted rank position
// (Borda-count style). Each sub-strategy is computed exactly once; the item
// at 0-indexed position i in a sub-list contributes (limit-i)/limit times
// that strategy's weight, so a product surfacing in several lists accumulates
// cross-strategy consensus.
func fuseHybrid(
	cfg Config,
	catalog []domain.Product,
	behavior domain.UserBehavior,
	now time.Time,
	limit int,
) []domain.ScoredProduct {

	lists := []struct {
		weight float64
		items  []domain.ScoredProduct
	}{
		{cfg.WPersonalized, rankPersonalized(cfg, catalog, behavior, limit)},
		{cfg.WCollaborative, rankCollaborative(catalog, behavior, limit)},
		{cfg.WContent, rankContentBased(catalog, behavior, limit)},
		{cfg.WTrending, rankTrending(catalog, now, limit)},
	}

	// trending alone is allowed to resurface viewed products; the fused
	// output is not, so viewed ids never accumulate a fused score
	viewed := idSet(behavior.ViewedProducts)

	fused := make(map[string]float64)
	for _, list := range lists {
		for i, sp := range list.items {
			if _, ok := viewed[sp.Product.ID]; ok {
				continue
			}
			positionScore := float64(limit-i) / float64(limit)
			fused[sp.Product.ID] += positionScore * list.weight
		}
	}

	// collect in catalog order so the stable sort keeps catalog order on
	// tied fused scores, map iteration order notwithstanding
	out := make([]domain.ScoredProduct, 0, len(fused))
	for _, p := range catalog {
		if score, ok := fused[p.ID]; ok {
			out = append(out, domain.ScoredProduct{Product: p, Score: score})
		}
	}

	sortByScore(out)
	return truncate(out, limit)
}

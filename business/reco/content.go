package reco

import (
	"makeItSell/domain"
	"math"
)

// rankContentBased scores each unseen candidate against every product the
// user has already viewed, accumulating similarity across seeds so a
// candidate similar to many viewed items outranks one similar to a single
// item. When none of the viewed ids resolve against this catalog snapshot
// every candidate scores zero and the stable sort leaves catalog order
// intact; that degenerate case is documented behavior, not an error.
func rankContentBased(
	catalog []domain.Product,
	behavior domain.UserBehavior,
	limit int,
) []domain.ScoredProduct {

	viewed := idSet(behavior.ViewedProducts)

	seeds := make([]domain.Product, 0, len(viewed))
	for _, p := range catalog {
		if _, ok := viewed[p.ID]; ok {
			seeds = append(seeds, p)
		}
	}

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, p := range catalog {
		if _, ok := viewed[p.ID]; ok {
			continue
		}
		score := 0.0
		for _, seed := range seeds {
			score += similarityScore(p, seed)
		}
		scored = append(scored, domain.ScoredProduct{Product: p, Score: score})
	}

	sortByScore(scored)
	return truncate(scored, limit)
}

func similarityScore(candidate, seed domain.Product) float64 {
	score := 0.0

	if candidate.Category == seed.Category {
		score += contentCategoryBonus
	}
	if candidate.Subcategory != "" && candidate.Subcategory == seed.Subcategory {
		score += contentSubcategoryBonus
	}

	score += contentSharedTagBonus * float64(sharedTagCount(candidate.Tags, seed.Tags))

	// relative difference is undefined for a free seed, so no bonus there
	if seed.Price > 0 && math.Abs(candidate.Price-seed.Price)/seed.Price < contentPriceBand {
		score += contentPriceBandBonus
	}

	if candidate.Vendor.ID != "" && candidate.Vendor.ID == seed.Vendor.ID {
		score += contentSameVendorBonus
	}

	return score
}

func sharedTagCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}

	n := 0
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			n++
		}
	}
	return n
}

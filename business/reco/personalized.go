package reco

import "makeItSell/domain"

// rankPersonalized scores unseen products against the user's own signals:
// category affinity, price window, preferred brands, search history, plus
// catalog-side quality terms.
func rankPersonalized(
	cfg Config,
	catalog []domain.Product,
	behavior domain.UserBehavior,
	limit int,
) []domain.ScoredProduct {

	viewed := idSet(behavior.ViewedProducts)

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, p := range catalog {
		if _, ok := viewed[p.ID]; ok {
			continue
		}
		scored = append(scored, domain.ScoredProduct{
			Product: p,
			Score:   personalizedScore(cfg, p, behavior),
		})
	}

	sortByScore(scored)
	return truncate(scored, limit)
}

func personalizedScore(cfg Config, p domain.Product, b domain.UserBehavior) float64 {
	// missing behavior fields contribute zero, never an error
	score := cfg.CategoryAffinityWeight * float64(b.ViewedCategories[p.Category])

	if priceInRange(p.Price, b) {
		score += cfg.PriceInRangeBonus
	} else {
		score -= cfg.PriceOutOfRangePenalty
	}

	if matchesAnyTag(b.PreferredBrands, p.Tags) {
		score += cfg.BrandMatchBonus
	}

	if matchesNameOrTags(b.SearchQueries, p.Name, p.Tags) {
		score += cfg.QueryMatchBonus
	}

	score += cfg.RatingWeight * p.Rating.Average

	if p.Vendor.Verified {
		score += cfg.VerifiedVendorBonus
	}
	if p.OnSale {
		score += cfg.OnSaleBonus
	}

	return score
}

func priceInRange(price float64, b domain.UserBehavior) bool {
	return price >= b.PriceMin && price <= b.PriceMax
}

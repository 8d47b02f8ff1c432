package reco

import "makeItSell/domain"

// rankCollaborative ranks by crowd engagement, but only inside categories the
// user has already touched. The category check is a strict pre-filter, not a
// soft score; an empty result here is a valid outcome.
func rankCollaborative(
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
		affinity, ok := behavior.ViewedCategories[p.Category]
		if !ok {
			continue
		}
		scored = append(scored, domain.ScoredProduct{
			Product: p,
			Score:   collaborativeScore(p, affinity),
		})
	}

	sortByScore(scored)
	return truncate(scored, limit)
}

func collaborativeScore(p domain.Product, affinity int) float64 {
	return collabLikesWeight*float64(p.Likes) +
		collabViewsWeight*float64(p.Views) +
		collabSalesWeight*float64(p.Sales) +
		collabAffinityWeight*float64(affinity) +
		collabRatingWeight*p.Rating.Average*float64(p.Rating.Count)
}

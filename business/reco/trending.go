package reco

import (
	"makeItSell/domain"
	"time"
)

// rankTrending is the only user-independent strategy: engagement velocity
// over product age, same list for every user.
func rankTrending(catalog []domain.Product, now time.Time, limit int) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, p := range catalog {
		scored = append(scored, domain.ScoredProduct{
			Product: p,
			Score:   trendingScore(p, now),
		})
	}

	sortByScore(scored)
	return truncate(scored, limit)
}

func trendingScore(p domain.Product, now time.Time) float64 {
	ageDays := now.Sub(p.CreatedAt).Seconds() / secondsPerDay
	if ageDays < 1 {
		// floor prevents same-day items from dividing by ~0
		ageDays = 1
	}

	engagement := trendingViewsWeight*float64(p.Views) +
		trendingLikesWeight*float64(p.Likes) +
		trendingSalesWeight*float64(p.Sales)

	return engagement / ageDays
}

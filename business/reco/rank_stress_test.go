//go:build !integration

package reco

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"makeItSell/domain"

	"gorm.io/datatypes"
)

// scenario params
const (
	stressNumProducts   = 5000
	stressNumCategories = 12
	stressNumViewed     = 200
	stressRuns          = 5
)

func stressCatalog(r *rand.Rand) []domain.Product {
	tags := []string{"eco", "solar", "bamboo", "vintage", "handmade", "refurbished"}

	catalog := make([]domain.Product, 0, stressNumProducts)
	for i := 0; i < stressNumProducts; i++ {
		catalog = append(catalog, domain.Product{
			ID:       fmt.Sprintf("p%05d", i),
			Name:     fmt.Sprintf("product %d", i),
			Price:    float64(r.Intn(1000)) + 1,
			Category: fmt.Sprintf("cat%d", r.Intn(stressNumCategories)),
			Tags: datatypes.JSONSlice[string]{
				tags[r.Intn(len(tags))],
				tags[r.Intn(len(tags))],
			},
			Rating:    domain.Rating{Average: r.Float64() * 5, Count: int64(r.Intn(500))},
			Views:     int64(r.Intn(10000)),
			Likes:     int64(r.Intn(1000)),
			Sales:     int64(r.Intn(500)),
			OnSale:    r.Intn(4) == 0,
			CreatedAt: testNow.Add(-time.Duration(1+r.Intn(365)) * 24 * time.Hour),
		})
	}
	return catalog
}

func stressBehavior(r *rand.Rand) domain.UserBehavior {
	viewed := make(datatypes.JSONSlice[string], 0, stressNumViewed)
	for i := 0; i < stressNumViewed; i++ {
		viewed = append(viewed, fmt.Sprintf("p%05d", r.Intn(stressNumProducts)))
	}

	affinity := make(map[string]int)
	for i := 0; i < stressNumCategories/2; i++ {
		affinity[fmt.Sprintf("cat%d", i)] = 1 + r.Intn(10)
	}

	return domain.UserBehavior{
		UserID:           "stress-user",
		ViewedProducts:   viewed,
		ViewedCategories: affinity,
		SearchQueries:    []string{"solar", "bamboo"},
		PreferredBrands:  []string{"eco"},
		PriceMin:         50,
		PriceMax:         500,
	}
}

func TestRankStableUnderVolume(t *testing.T) {
	catalog := stressCatalog(rand.New(rand.NewSource(42)))
	behavior := stressBehavior(rand.New(rand.NewSource(43)))

	for _, s := range []Strategy{StrategyPersonalized, StrategyCollaborative, StrategyContent, StrategyTrending, StrategyHybrid} {
		start := time.Now()
		first, err := Rank(DefaultConfig(), catalog, behavior, s, 50, testNow)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		elapsed := time.Since(start)

		t.Logf("[%s] results=%d elapsed=%s", s, len(first), elapsed)

		if len(first) > 50 {
			t.Fatalf("%s: result exceeds limit: %d", s, len(first))
		}
		for i := 1; i < len(first); i++ {
			if first[i].Score > first[i-1].Score {
				t.Fatalf("%s: scores not descending at %d (%v > %v)",
					s, i, first[i].Score, first[i-1].Score)
			}
		}

		for run := 0; run < stressRuns; run++ {
			again, err := Rank(DefaultConfig(), catalog, behavior, s, 50, testNow)
			if err != nil {
				t.Fatalf("%s run %d: %v", s, run, err)
			}
			if len(again) != len(first) {
				t.Fatalf("%s run %d: length %d vs %d", s, run, len(again), len(first))
			}
			for i := range first {
				if again[i].Product.ID != first[i].Product.ID {
					t.Fatalf("%s run %d: diverged at %d (%s vs %s)",
						s, run, i, again[i].Product.ID, first[i].Product.ID)
				}
			}
		}
	}
}

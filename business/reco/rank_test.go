package reco

import (
	"errors"
	"math"
	"testing"
	"time"

	"makeItSell/domain"

	"gorm.io/datatypes"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func product(id string, mut func(*domain.Product)) domain.Product {
	p := domain.Product{
		ID:        id,
		Name:      "product " + id,
		Price:     50,
		Category:  "Electronics",
		CreatedAt: testNow.Add(-10 * 24 * time.Hour),
	}
	if mut != nil {
		mut(&p)
	}
	return p
}

func ids(recs []domain.ScoredProduct) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Product.ID)
	}
	return out
}

func assertOrder(t *testing.T, recs []domain.ScoredProduct, want ...string) {
	t.Helper()
	got := ids(recs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTrendingVelocity(t *testing.T) {
	catalog := []domain.Product{
		product("b", func(p *domain.Product) {
			p.Views, p.Likes, p.Sales = 10, 1, 1
			p.CreatedAt = testNow.Add(-10 * 24 * time.Hour)
		}),
		product("a", func(p *domain.Product) {
			p.Views, p.Likes, p.Sales = 100, 10, 5
			p.CreatedAt = testNow.Add(-24 * time.Hour)
		}),
	}

	recs, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, StrategyTrending, 2, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "a", "b")

	if math.Abs(recs[0].Score-145.0) > 1e-9 {
		t.Errorf("score a = %v, want 145", recs[0].Score)
	}
	if math.Abs(recs[1].Score-1.7) > 1e-9 {
		t.Errorf("score b = %v, want 1.7", recs[1].Score)
	}
}

func TestTrendingAgeFloor(t *testing.T) {
	fresh := product("fresh", func(p *domain.Product) {
		p.Views = 10
		p.CreatedAt = testNow.Add(-time.Minute)
	})

	if got := trendingScore(fresh, testNow); got != 10 {
		t.Errorf("same-day item score = %v, want 10 (age floored at 1 day)", got)
	}
}

func TestPersonalizedPriceWindow(t *testing.T) {
	catalog := []domain.Product{
		product("expensive", func(p *domain.Product) { p.Price = 500 }),
		product("cheap", func(p *domain.Product) { p.Price = 50 }),
	}
	behavior := domain.UserBehavior{
		UserID:   "u1",
		PriceMin: 0,
		PriceMax: 100,
	}

	recs, err := Rank(DefaultConfig(), catalog, behavior, StrategyPersonalized, 2, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "cheap", "expensive")

	// +20 in range vs -10 out of range, everything else identical
	if diff := recs[0].Score - recs[1].Score; math.Abs(diff-30.0) > 1e-9 {
		t.Errorf("score gap = %v, want 30", diff)
	}
}

func TestPersonalizedScoreTerms(t *testing.T) {
	p := product("p", func(p *domain.Product) {
		p.Name = "Solar Charger"
		p.Price = 50
		p.Category = "Electronics"
		p.Tags = datatypes.JSONSlice[string]{"ecobrand", "solar"}
		p.Rating = domain.Rating{Average: 4.0, Count: 10}
		p.Vendor = domain.Vendor{ID: "v1", Verified: true}
		p.OnSale = true
	})
	b := domain.UserBehavior{
		ViewedCategories: map[string]int{"Electronics": 5},
		PriceMin:         10,
		PriceMax:         100,
		PreferredBrands:  []string{"EcoBrand"},
		SearchQueries:    []string{"charger"},
	}

	// 0.3*5 + 20 + 15 + 10 + 3*4 + 5 + 5
	want := 68.5
	if got := personalizedScore(DefaultConfig(), p, b); math.Abs(got-want) > 1e-9 {
		t.Errorf("personalizedScore = %v, want %v", got, want)
	}
}

func TestPersonalizedExcludesViewed(t *testing.T) {
	catalog := []domain.Product{
		product("seen", nil),
		product("unseen", nil),
	}
	behavior := domain.UserBehavior{ViewedProducts: datatypes.JSONSlice[string]{"seen"}}

	recs, err := Rank(DefaultConfig(), catalog, behavior, StrategyPersonalized, 10, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "unseen")
}

func TestCollaborativeCategoryFilter(t *testing.T) {
	catalog := []domain.Product{
		product("tv", func(p *domain.Product) { p.Category = "Electronics"; p.Views = 100 }),
		product("shirt", func(p *domain.Product) { p.Category = "Fashion"; p.Views = 100 }),
	}
	behavior := domain.UserBehavior{
		ViewedCategories: map[string]int{"Electronics": 5},
	}

	recs, err := Rank(DefaultConfig(), catalog, behavior, StrategyCollaborative, 10, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "tv")
}

func TestCollaborativeNoHistory(t *testing.T) {
	catalog := []domain.Product{product("a", nil), product("b", nil)}

	recs, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, StrategyCollaborative, 10, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result without category history, got %v", ids(recs))
	}
}

func TestCollaborativeScoreTerms(t *testing.T) {
	p := product("p", func(p *domain.Product) {
		p.Views, p.Likes, p.Sales = 100, 20, 10
		p.Rating = domain.Rating{Average: 4.0, Count: 50}
	})

	// 0.1*20 + 0.05*100 + 0.2*10 + 0.5*3 + 0.01*4*50
	want := 12.5
	if got := collaborativeScore(p, 3); math.Abs(got-want) > 1e-9 {
		t.Errorf("collaborativeScore = %v, want %v", got, want)
	}
}

func TestContentSimilarityAccumulatesAcrossSeeds(t *testing.T) {
	catalog := []domain.Product{
		product("seed1", func(p *domain.Product) {
			p.Category = "Outdoors"
			p.Tags = datatypes.JSONSlice[string]{"camping"}
		}),
		product("seed2", func(p *domain.Product) {
			p.Category = "Outdoors"
		}),
		product("near", func(p *domain.Product) {
			p.Category = "Outdoors"
			p.Tags = datatypes.JSONSlice[string]{"camping"}
		}),
		product("far", func(p *domain.Product) {
			p.Category = "Fashion"
			p.Price = 500
		}),
	}
	behavior := domain.UserBehavior{
		ViewedProducts: datatypes.JSONSlice[string]{"seed1", "seed2"},
	}

	recs, err := Rank(DefaultConfig(), catalog, behavior, StrategyContent, 10, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "near", "far")

	// vs seed1: category 10 + shared tag 5 + price band 8 = 23
	// vs seed2: category 10 + price band 8 = 18
	if math.Abs(recs[0].Score-41.0) > 1e-9 {
		t.Errorf("near score = %v, want 41", recs[0].Score)
	}
	if recs[1].Score != 0 {
		t.Errorf("far score = %v, want 0", recs[1].Score)
	}
}

func TestContentZeroPriceSeedSkipsPriceBand(t *testing.T) {
	seed := product("seed", func(p *domain.Product) { p.Price = 0; p.Category = "Free" })
	cand := product("cand", func(p *domain.Product) { p.Price = 0; p.Category = "Free" })

	// only the category bonus, no division by a zero seed price
	if got := similarityScore(cand, seed); got != contentCategoryBonus {
		t.Errorf("similarityScore = %v, want %v", got, contentCategoryBonus)
	}
}

func TestHybridFusionOverlapWins(t *testing.T) {
	// P leads personalized and trending; Q is the only collaborative
	// candidate. Content has no seeds so both tie at zero there and keep
	// catalog order.
	catalog := []domain.Product{
		product("P", func(p *domain.Product) {
			p.Category = "Electronics"
			p.Views = 1000
			p.Vendor.Verified = true
			p.OnSale = true
			p.Rating = domain.Rating{Average: 5, Count: 10}
		}),
		product("Q", func(p *domain.Product) {
			p.Category = "Fashion"
			p.Views = 10
		}),
	}
	behavior := domain.UserBehavior{
		ViewedCategories: map[string]int{"Fashion": 1},
	}

	recs, err := Rank(DefaultConfig(), catalog, behavior, StrategyHybrid, 2, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "P", "Q")

	// P: personalized rank1 (0.4) + content rank1 (0.2) + trending rank1 (0.1)
	// Q: personalized rank2 (0.2) + collaborative rank1 (0.3) + content rank2 (0.1) + trending rank2 (0.05)
	if math.Abs(recs[0].Score-0.7) > 1e-9 {
		t.Errorf("fused P = %v, want 0.7", recs[0].Score)
	}
	if math.Abs(recs[1].Score-0.65) > 1e-9 {
		t.Errorf("fused Q = %v, want 0.65", recs[1].Score)
	}
}

func TestHybridExcludesViewed(t *testing.T) {
	// a viewed product with heavy engagement tops the trending sub-list,
	// but must not surface in the fused output
	catalog := []domain.Product{
		product("seen-hot", func(p *domain.Product) {
			p.Category = "Electronics"
			p.Views, p.Likes, p.Sales = 100000, 10000, 5000
			p.CreatedAt = testNow.Add(-24 * time.Hour)
		}),
		product("fresh", func(p *domain.Product) {
			p.Category = "Electronics"
			p.Views = 10
		}),
	}
	behavior := domain.UserBehavior{
		ViewedProducts:   datatypes.JSONSlice[string]{"seen-hot"},
		ViewedCategories: map[string]int{"Electronics": 3},
	}

	recs, err := Rank(DefaultConfig(), catalog, behavior, StrategyHybrid, 2, testNow)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range recs {
		if r.Product.ID == "seen-hot" {
			t.Fatalf("hybrid output contains viewed product (score=%v)", r.Score)
		}
	}
	if len(recs) != 1 || recs[0].Product.ID != "fresh" {
		t.Fatalf("got %v, want [fresh]", ids(recs))
	}
}

func TestHybridPositionArithmetic(t *testing.T) {
	// rank-1 in two lists (1.0*0.4 + 1.0*0.1 = 0.5) must beat rank-1 in
	// one list (1.0*0.3 = 0.3)
	cfg := DefaultConfig()
	pScore := 1.0*cfg.WPersonalized + 1.0*cfg.WTrending
	qScore := 1.0 * cfg.WCollaborative

	if math.Abs(pScore-0.5) > 1e-9 || math.Abs(qScore-0.3) > 1e-9 {
		t.Fatalf("fusion weights drifted: p=%v q=%v", pScore, qScore)
	}
	if pScore <= qScore {
		t.Errorf("overlapping product must outrank single-list product")
	}
}

func TestEmptyCatalogAllStrategies(t *testing.T) {
	for _, s := range []Strategy{
		StrategyPersonalized,
		StrategyCollaborative,
		StrategyContent,
		StrategyTrending,
		StrategyHybrid,
	} {
		recs, err := Rank(DefaultConfig(), nil, domain.UserBehavior{}, s, 5, testNow)
		if err != nil {
			t.Errorf("%s: unexpected error %v", s, err)
		}
		if len(recs) != 0 {
			t.Errorf("%s: expected empty result, got %d items", s, len(recs))
		}
	}
}

func TestInvalidLimit(t *testing.T) {
	catalog := []domain.Product{product("a", nil)}

	for _, limit := range []int{0, -1} {
		_, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, StrategyTrending, limit, testNow)
		if !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("limit=%d: got %v, want ErrInvalidLimit", limit, err)
		}
	}
}

func TestInvalidCatalog(t *testing.T) {
	dup := []domain.Product{product("a", nil), product("a", nil)}
	if _, err := Rank(DefaultConfig(), dup, domain.UserBehavior{}, StrategyTrending, 5, testNow); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("duplicate ids: got %v, want ErrInvalidCatalog", err)
	}

	blank := []domain.Product{{Name: "no id"}}
	if _, err := Rank(DefaultConfig(), blank, domain.UserBehavior{}, StrategyTrending, 5, testNow); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("empty id: got %v, want ErrInvalidCatalog", err)
	}
}

func TestInvalidBehaviorPriceRange(t *testing.T) {
	catalog := []domain.Product{product("a", nil)}
	behavior := domain.UserBehavior{PriceMin: 100, PriceMax: 10}

	if _, err := Rank(DefaultConfig(), catalog, behavior, StrategyPersonalized, 5, testNow); !errors.Is(err, ErrInvalidBehavior) {
		t.Errorf("inverted price range: got %v, want ErrInvalidBehavior", err)
	}
}

func TestUnknownStrategy(t *testing.T) {
	catalog := []domain.Product{product("a", nil)}

	if _, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, Strategy("editorial"), 5, testNow); !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("got %v, want ErrInvalidStrategy", err)
	}

	if _, err := ParseStrategy("editorial"); !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("ParseStrategy: got %v, want ErrInvalidStrategy", err)
	}
}

func TestLimitCapsAndKeepsUniqueness(t *testing.T) {
	catalog := make([]domain.Product, 0, 20)
	for i := 0; i < 20; i++ {
		catalog = append(catalog, product(string(rune('a'+i)), func(p *domain.Product) {
			p.Views = int64(i)
		}))
	}

	recs, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, StrategyTrending, 5, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 5 {
		t.Fatalf("got %d items, want 5", len(recs))
	}

	seen := make(map[string]struct{})
	for _, r := range recs {
		if _, dup := seen[r.Product.ID]; dup {
			t.Fatalf("duplicate product %s in output", r.Product.ID)
		}
		seen[r.Product.ID] = struct{}{}
	}
}

func TestTiedScoresKeepCatalogOrder(t *testing.T) {
	catalog := []domain.Product{
		product("first", nil),
		product("second", nil),
		product("third", nil),
	}

	recs, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, StrategyTrending, 3, testNow)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "first", "second", "third")
}

func TestRankIsDeterministic(t *testing.T) {
	catalog := []domain.Product{
		product("a", func(p *domain.Product) { p.Views = 50; p.Category = "Electronics" }),
		product("b", func(p *domain.Product) { p.Views = 50; p.Category = "Fashion" }),
		product("c", func(p *domain.Product) { p.Views = 10; p.Category = "Electronics" }),
		product("d", func(p *domain.Product) { p.Likes = 7; p.Category = "Home" }),
	}
	behavior := domain.UserBehavior{
		ViewedProducts:   datatypes.JSONSlice[string]{"c"},
		ViewedCategories: map[string]int{"Electronics": 3, "Home": 1},
	}

	for _, s := range []Strategy{StrategyPersonalized, StrategyCollaborative, StrategyContent, StrategyTrending, StrategyHybrid} {
		first, err := Rank(DefaultConfig(), catalog, behavior, s, 4, testNow)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10; i++ {
			again, err := Rank(DefaultConfig(), catalog, behavior, s, 4, testNow)
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != len(first) {
				t.Fatalf("%s: run %d returned %d items, first run %d", s, i, len(again), len(first))
			}
			for j := range first {
				if again[j].Product.ID != first[j].Product.ID || again[j].Score != first[j].Score {
					t.Fatalf("%s: run %d diverged at position %d", s, i, j)
				}
			}
		}
	}
}

func TestRankDoesNotMutateInputs(t *testing.T) {
	catalog := []domain.Product{
		product("z", func(p *domain.Product) { p.Views = 1 }),
		product("a", func(p *domain.Product) { p.Views = 100 }),
	}

	if _, err := Rank(DefaultConfig(), catalog, domain.UserBehavior{}, StrategyTrending, 2, testNow); err != nil {
		t.Fatal(err)
	}

	if catalog[0].ID != "z" || catalog[1].ID != "a" {
		t.Errorf("catalog slice was reordered: %s, %s", catalog[0].ID, catalog[1].ID)
	}
}

package reco

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"makeItSell/domain"

	"gorm.io/datatypes"
)

type fakeCatalogRepo struct {
	products []domain.Product
	err      error
}

func (f *fakeCatalogRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

type fakeBehaviorRepo struct {
	snapshots map[string]domain.UserBehavior
	err       error
}

func (f *fakeBehaviorRepo) GetByUserID(ctx context.Context, userID string) (domain.UserBehavior, error) {
	if f.err != nil {
		return domain.UserBehavior{}, f.err
	}
	if b, ok := f.snapshots[userID]; ok {
		return b, nil
	}
	return domain.UserBehavior{}, domain.ErrBehaviorNotFound
}

type fakeConfigRepo struct {
	rows   map[string]domain.RecoConfig
	stored []domain.RecoConfig
	err    error
}

func (f *fakeConfigRepo) GetConfig(ctx context.Context, slot string) (domain.RecoConfig, bool, error) {
	if f.err != nil {
		return domain.RecoConfig{}, false, f.err
	}
	row, ok := f.rows[slot]
	return row, ok, nil
}

func (f *fakeConfigRepo) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, cfg)
	return nil
}

func TestEngineRecommend(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{products: []domain.Product{
		product("seen", func(p *domain.Product) { p.Category = "Electronics" }),
		product("tv", func(p *domain.Product) { p.Category = "Electronics"; p.Views = 500 }),
		product("shirt", func(p *domain.Product) { p.Category = "Fashion" }),
	}}
	behaviorRepo := &fakeBehaviorRepo{snapshots: map[string]domain.UserBehavior{
		"u1": {
			UserID:           "u1",
			ViewedProducts:   datatypes.JSONSlice[string]{"seen"},
			ViewedCategories: map[string]int{"Electronics": 4},
		},
	}}

	engine := NewEngine(catalogRepo, behaviorRepo, nil, DefaultConfig())

	recs, err := engine.Recommend(context.Background(), "u1", "home", StrategyCollaborative, 8)
	if err != nil {
		t.Fatal(err)
	}

	assertOrder(t, recs, "tv")
}

func TestEngineRecommendUnknownUserFallsBackToEmptyHistory(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{products: []domain.Product{product("a", nil)}}
	behaviorRepo := &fakeBehaviorRepo{}

	engine := NewEngine(catalogRepo, behaviorRepo, nil, DefaultConfig())

	recs, err := engine.Recommend(context.Background(), "ghost", "home", StrategyPersonalized, 8)
	if err != nil {
		t.Fatal(err)
	}
	// no history means weak signal, not failure
	assertOrder(t, recs, "a")
}

func TestEngineRecommendBehaviorRepoError(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{products: []domain.Product{product("a", nil)}}
	behaviorRepo := &fakeBehaviorRepo{err: errors.New("db down")}

	engine := NewEngine(catalogRepo, behaviorRepo, nil, DefaultConfig())

	// a missing row degrades to empty history, an outage must not
	if _, err := engine.Recommend(context.Background(), "u1", "home", StrategyPersonalized, 8); err == nil {
		t.Fatal("expected error when behavior load fails")
	}

	// trending never consults the behavior repo
	if _, err := engine.Recommend(context.Background(), "u1", "home", StrategyTrending, 8); err != nil {
		t.Fatalf("trending should not touch the behavior repo: %v", err)
	}
}

func TestEngineRecommendCatalogError(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{err: errors.New("db down")}

	engine := NewEngine(catalogRepo, nil, nil, DefaultConfig())

	if _, err := engine.Recommend(context.Background(), "u1", "home", StrategyTrending, 8); err == nil {
		t.Fatal("expected error when catalog load fails")
	}
}

func TestEngineRecommendPropagatesInvalidLimit(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{products: []domain.Product{product("a", nil)}}

	engine := NewEngine(catalogRepo, nil, nil, DefaultConfig())

	if _, err := engine.Recommend(context.Background(), "u1", "home", StrategyTrending, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("got %v, want ErrInvalidLimit", err)
	}
}

func TestEngineRecommendCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(&fakeCatalogRepo{}, nil, nil, DefaultConfig())

	if _, err := engine.Recommend(ctx, "u1", "home", StrategyTrending, 8); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	engine := NewEngine(&fakeCatalogRepo{}, nil, nil, DefaultConfig())

	// nil repo
	if cfg := engine.loadConfig(context.Background(), "home"); cfg != DefaultConfig() {
		t.Error("nil repo: expected defaults")
	}

	// repo without a row for this slot
	engine = NewEngine(&fakeCatalogRepo{}, nil, &fakeConfigRepo{}, DefaultConfig())
	if cfg := engine.loadConfig(context.Background(), "home"); cfg != DefaultConfig() {
		t.Error("missing row: expected defaults")
	}

	// repo error
	engine = NewEngine(&fakeCatalogRepo{}, nil, &fakeConfigRepo{err: errors.New("db down")}, DefaultConfig())
	if cfg := engine.loadConfig(context.Background(), "home"); cfg != DefaultConfig() {
		t.Error("repo error: expected defaults")
	}
}

func TestLoadConfigRejectsBrokenWeightSum(t *testing.T) {
	repo := &fakeConfigRepo{rows: map[string]domain.RecoConfig{
		"home": {
			Slot:           "home",
			WPersonalized:  0.9,
			WCollaborative: 0.9,
			WContent:       0.9,
			WTrending:      0.9,
		},
	}}

	engine := NewEngine(&fakeCatalogRepo{}, nil, repo, DefaultConfig())

	if cfg := engine.loadConfig(context.Background(), "home"); cfg != DefaultConfig() {
		t.Error("weights not summing to 1 must fall back to defaults")
	}
}

func TestLoadConfigMergesOverrides(t *testing.T) {
	repo := &fakeConfigRepo{rows: map[string]domain.RecoConfig{
		"home": {
			Slot:              "home",
			WPersonalized:     0.7,
			WCollaborative:    0.1,
			WContent:          0.1,
			WTrending:         0.1,
			PriceInRangeBonus: 40,
		},
	}}

	engine := NewEngine(&fakeCatalogRepo{}, nil, repo, DefaultConfig())

	cfg := engine.loadConfig(context.Background(), "home")
	if math.Abs(cfg.WPersonalized-0.7) > 1e-9 {
		t.Errorf("WPersonalized = %v, want 0.7", cfg.WPersonalized)
	}
	if cfg.PriceInRangeBonus != 40 {
		t.Errorf("PriceInRangeBonus = %v, want 40", cfg.PriceInRangeBonus)
	}
	// untouched columns keep defaults
	if cfg.BrandMatchBonus != defaultBrandMatchBonus {
		t.Errorf("BrandMatchBonus = %v, want default %v", cfg.BrandMatchBonus, defaultBrandMatchBonus)
	}
}

func TestUpdateConfigValidatesWeightSum(t *testing.T) {
	repo := &fakeConfigRepo{}
	engine := NewEngine(&fakeCatalogRepo{}, nil, repo, DefaultConfig())

	bad := domain.RecoConfig{Slot: "home", WPersonalized: 0.9, WCollaborative: 0.9}
	if err := engine.UpdateConfig(context.Background(), bad); !errors.Is(err, ErrHybridWeightSum) {
		t.Fatalf("got %v, want ErrHybridWeightSum", err)
	}
	if len(repo.stored) != 0 {
		t.Fatal("invalid config must not be persisted")
	}

	good := domain.RecoConfig{Slot: "home", WPersonalized: 0.4, WCollaborative: 0.3, WContent: 0.2, WTrending: 0.1}
	if err := engine.UpdateConfig(context.Background(), good); err != nil {
		t.Fatal(err)
	}
	if len(repo.stored) != 1 {
		t.Fatal("valid config was not persisted")
	}
}

func TestUpdateConfigWithoutRepo(t *testing.T) {
	engine := NewEngine(&fakeCatalogRepo{}, nil, nil, DefaultConfig())

	row := domain.RecoConfig{Slot: "home", WPersonalized: 0.4, WCollaborative: 0.3, WContent: 0.2, WTrending: 0.1}
	if err := engine.UpdateConfig(context.Background(), row); !errors.Is(err, ErrConfigRepoUnavailable) {
		t.Fatalf("got %v, want ErrConfigRepoUnavailable", err)
	}
}

func TestDebugRecommendMatchesRecommendOrder(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{products: []domain.Product{
		product("a", func(p *domain.Product) { p.Views = 100; p.CreatedAt = testNow.Add(-24 * time.Hour) }),
		product("b", func(p *domain.Product) { p.Views = 10; p.CreatedAt = testNow.Add(-24 * time.Hour) }),
	}}

	engine := NewEngine(catalogRepo, nil, nil, DefaultConfig())

	recs, err := engine.Recommend(context.Background(), "u1", "home", StrategyTrending, 2)
	if err != nil {
		t.Fatal(err)
	}
	debug, err := engine.DebugRecommend(context.Background(), "u1", "home", StrategyTrending, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(debug) != len(recs) {
		t.Fatalf("debug returned %d rows, recommend returned %d", len(debug), len(recs))
	}
	for i := range recs {
		if debug[i].ProductID != recs[i].Product.ID {
			t.Errorf("position %d: debug %s vs recommend %s", i, debug[i].ProductID, recs[i].Product.ID)
		}
		// the two calls capture now independently, so trending ages can
		// differ by the wall time between them
		if math.Abs(debug[i].FinalScore-recs[i].Score) > 1e-6 {
			t.Errorf("position %d: debug score %v vs recommend score %v", i, debug[i].FinalScore, recs[i].Score)
		}
		if len(debug[i].Components) == 0 {
			t.Errorf("position %d: empty component breakdown", i)
		}
	}
}

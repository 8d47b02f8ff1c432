package reco

import (
	"context"
	"math"

	"makeItSell/domain"
	"makeItSell/pkg/logger"
)

const hybridWeightTolerance = 1e-9

// loadConfig reads the override row for a slot, falling back to the compiled
// defaults when the repo is absent, the slot has no row, or the stored hybrid
// weights violate the sum-to-one invariant.
func (e *Engine) loadConfig(ctx context.Context, slot string) Config {
	if e.cfgRepo == nil {
		return e.defaultCfg
	}

	dbCfg, ok, err := e.cfgRepo.GetConfig(ctx, slot)
	if err != nil || !ok {
		return e.defaultCfg
	}

	cfg := configFromRow(e.defaultCfg, dbCfg)

	if sum := cfg.hybridWeightSum(); math.Abs(sum-1.0) > hybridWeightTolerance {
		logger.Warn("stored hybrid weights do not sum to 1, using defaults",
			"slot", slot,
			"sum", sum,
		)
		return e.defaultCfg
	}

	return cfg
}

// configFromRow starts from defaults so zero-valued columns keep sane
// fallbacks for any field the row never set.
func configFromRow(base Config, row domain.RecoConfig) Config {
	cfg := base

	if row.WPersonalized != 0 || row.WCollaborative != 0 || row.WContent != 0 || row.WTrending != 0 {
		cfg.WPersonalized = row.WPersonalized
		cfg.WCollaborative = row.WCollaborative
		cfg.WContent = row.WContent
		cfg.WTrending = row.WTrending
	}

	if row.CategoryAffinityWeight != 0 {
		cfg.CategoryAffinityWeight = row.CategoryAffinityWeight
	}
	if row.PriceInRangeBonus != 0 {
		cfg.PriceInRangeBonus = row.PriceInRangeBonus
	}
	if row.PriceOutOfRangePenalty != 0 {
		cfg.PriceOutOfRangePenalty = row.PriceOutOfRangePenalty
	}
	if row.BrandMatchBonus != 0 {
		cfg.BrandMatchBonus = row.BrandMatchBonus
	}
	if row.QueryMatchBonus != 0 {
		cfg.QueryMatchBonus = row.QueryMatchBonus
	}
	if row.RatingWeight != 0 {
		cfg.RatingWeight = row.RatingWeight
	}
	if row.VerifiedVendorBonus != 0 {
		cfg.VerifiedVendorBonus = row.VerifiedVendorBonus
	}
	if row.OnSaleBonus != 0 {
		cfg.OnSaleBonus = row.OnSaleBonus
	}

	return cfg
}

// UpdateConfig validates and persists a per-slot override.
func (e *Engine) UpdateConfig(ctx context.Context, row domain.RecoConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.cfgRepo == nil {
		return ErrConfigRepoUnavailable
	}

	sum := row.WPersonalized + row.WCollaborative + row.WContent + row.WTrending
	if math.Abs(sum-1.0) > hybridWeightTolerance {
		return ErrHybridWeightSum
	}

	return e.cfgRepo.UpsertConfig(ctx, row)
}

// GetConfig resolves the effective config for a slot (defaults merged with
// any stored override).
func (e *Engine) GetConfig(ctx context.Context, slot string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	return e.loadConfig(ctx, slot), nil
}

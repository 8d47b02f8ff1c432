package reco

// Config carries the tunable scoring weights for one slot. Collaborative,
// content and trending terms are compiled constants (see weights.go); the
// personalized terms and the hybrid fusion weights are the knobs operations
// actually turns, so only those are overridable per slot.
type Config struct {
	WPersonalized  float64
	WCollaborative float64
	WContent       float64
	WTrending      float64

	CategoryAffinityWeight float64
	PriceInRangeBonus      float64
	PriceOutOfRangePenalty float64
	BrandMatchBonus        float64
	QueryMatchBonus        float64
	RatingWeight           float64
	VerifiedVendorBonus    float64
	OnSaleBonus            float64
}

func DefaultConfig() Config {
	return Config{
		WPersonalized:  defaultWPersonalized,
		WCollaborative: defaultWCollaborative,
		WContent:       defaultWContent,
		WTrending:      defaultWTrending,

		CategoryAffinityWeight: defaultCategoryAffinityWeight,
		PriceInRangeBonus:      defaultPriceInRangeBonus,
		PriceOutOfRangePenalty: defaultPriceOutOfRangePenalty,
		BrandMatchBonus:        defaultBrandMatchBonus,
		QueryMatchBonus:        defaultQueryMatchBonus,
		RatingWeight:           defaultRatingWeight,
		VerifiedVendorBonus:    defaultVerifiedVendorBonus,
		OnSaleBonus:            defaultOnSaleBonus,
	}
}

func (c Config) hybridWeightSum() float64 {
	return c.WPersonalized + c.WCollaborative + c.WContent + c.WTrending
}

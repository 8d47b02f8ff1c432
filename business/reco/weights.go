package reco

// DefaultLimit is applied by callers when no result count is requested.
const DefaultLimit = 8

// Personalized scoring terms. These are the compiled defaults; per-slot
// overrides come from the reco_configs table via the config loader.
const (
	defaultCategoryAffinityWeight = 0.3
	defaultPriceInRangeBonus      = 20.0
	defaultPriceOutOfRangePenalty = 10.0
	defaultBrandMatchBonus        = 15.0
	defaultQueryMatchBonus        = 10.0
	defaultRatingWeight           = 3.0
	defaultVerifiedVendorBonus    = 5.0
	defaultOnSaleBonus            = 5.0
)

// Collaborative scoring terms.
const (
	collabLikesWeight    = 0.1
	collabViewsWeight    = 0.05
	collabSalesWeight    = 0.2
	collabAffinityWeight = 0.5
	collabRatingWeight   = 0.01
)

// Content-based similarity terms, accumulated per viewed seed product.
const (
	contentCategoryBonus    = 10.0
	contentSubcategoryBonus = 15.0
	contentSharedTagBonus   = 5.0
	contentPriceBandBonus   = 8.0
	contentSameVendorBonus  = 5.0

	// relative price difference below which two products count as
	// similarly priced
	contentPriceBand = 0.3
)

// Trending velocity terms.
const (
	trendingViewsWeight = 1.0
	trendingLikesWeight = 2.0
	trendingSalesWeight = 5.0

	secondsPerDay = 86400.0
)

// Hybrid fusion weights. They sum to 1.0 by construction; the config loader
// rejects overrides that break this.
const (
	defaultWPersonalized  = 0.4
	defaultWCollaborative = 0.3
	defaultWContent       = 0.2
	defaultWTrending      = 0.1
)

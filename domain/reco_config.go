package domain

// RecoConfig is a per-slot override row for the recommendation engine's
// scoring weights. Missing slots fall back to the compiled defaults.
type RecoConfig struct {
	Slot string `json:"slot" gorm:"primaryKey;column:slot"`

	// hybrid fusion weights; must sum to 1.0
	WPersonalized  float64 `json:"w_personalized" gorm:"column:w_personalized"`
	WCollaborative float64 `json:"w_collaborative" gorm:"column:w_collaborative"`
	WContent       float64 `json:"w_content" gorm:"column:w_content"`
	WTrending      float64 `json:"w_trending" gorm:"column:w_trending"`

	// personalized scoring terms
	CategoryAffinityWeight float64 `json:"category_affinity_weight" gorm:"column:category_affinity_weight"`
	PriceInRangeBonus      float64 `json:"price_in_range_bonus" gorm:"column:price_in_range_bonus"`
	PriceOutOfRangePenalty float64 `json:"price_out_of_range_penalty" gorm:"column:price_out_of_range_penalty"`
	BrandMatchBonus        float64 `json:"brand_match_bonus" gorm:"column:brand_match_bonus"`
	QueryMatchBonus        float64 `json:"query_match_bonus" gorm:"column:query_match_bonus"`
	RatingWeight           float64 `json:"rating_weight" gorm:"column:rating_weight"`
	VerifiedVendorBonus    float64 `json:"verified_vendor_bonus" gorm:"column:verified_vendor_bonus"`
	OnSaleBonus            float64 `json:"on_sale_bonus" gorm:"column:on_sale_bonus"`
}

func (RecoConfig) TableName() string {
	return "reco_configs"
}

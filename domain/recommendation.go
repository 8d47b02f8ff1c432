package domain

// ScoredProduct pairs a catalog product with the score computed during one
// ranking call. The score is a transient annotation for the caller; it is
// never written back to the catalog.
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// DebugScore exposes the per-term breakdown of one candidate's score for
// inspection via the debug endpoint.
type DebugScore struct {
	ProductID  string             `json:"product_id"`
	Strategy   string             `json:"strategy"`
	Components map[string]float64 `json:"components"`
	FinalScore float64            `json:"final_score"`
}

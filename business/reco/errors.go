package reco

import "errors"

// Structurally invalid input is rejected; domain degeneracies (no candidates,
// no signal) resolve to empty results instead.
var (
	ErrInvalidLimit    = errors.New("limit must be greater than zero")
	ErrInvalidStrategy = errors.New("unknown recommendation strategy")
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrInvalidBehavior = errors.New("invalid behavior snapshot")

	ErrHybridWeightSum       = errors.New("hybrid weights must sum to 1.0")
	ErrConfigRepoUnavailable = errors.New("config repository not configured")
)

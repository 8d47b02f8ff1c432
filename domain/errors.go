package domain

import "errors"

// Not-found sentinels shared by the repositories and the services that need
// to tell "no row" apart from an infrastructure failure.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrBehaviorNotFound = errors.New("behavior not found")
)

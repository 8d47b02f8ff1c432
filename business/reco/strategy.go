package reco

import "fmt"

// Strategy names one of the five ranking algorithms.
type Strategy string

const (
	StrategyPersonalized  Strategy = "personalized"
	StrategyCollaborative Strategy = "collaborative"
	StrategyContent       Strategy = "content"
	StrategyTrending      Strategy = "trending"
	StrategyHybrid        Strategy = "hybrid"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPersonalized, StrategyCollaborative, StrategyContent,
		StrategyTrending, StrategyHybrid:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

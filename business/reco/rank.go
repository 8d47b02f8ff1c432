package reco

import (
	"fmt"
	"makeItSell/domain"
	"sort"
	"strings"
	"time"
)

// Rank scores one catalog snapshot against one behavior snapshot for the
// requested strategy. It is a pure function: inputs are never mutated, no
// state survives the call, and identical inputs with the same now yield
// identical output. now is captured once by the caller so trending scores
// cannot drift within a single pass.
func Rank(
	cfg Config,
	catalog []domain.Product,
	behavior domain.UserBehavior,
	strategy Strategy,
	limit int,
	now time.Time,
) ([]domain.ScoredProduct, error) {

	if err := validateInputs(catalog, behavior, limit); err != nil {
		return nil, err
	}

	switch strategy {
	case StrategyPersonalized:
		return rankPersonalized(cfg, catalog, behavior, limit), nil
	case StrategyCollaborative:
		return rankCollaborative(catalog, behavior, limit), nil
	case StrategyContent:
		return rankContentBased(catalog, behavior, limit), nil
	case StrategyTrending:
		return rankTrending(catalog, now, limit), nil
	case StrategyHybrid:
		return fuseHybrid(cfg, catalog, behavior, now, limit), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

// validateInputs rejects contract violations only. Empty catalogs, empty
// behavior fields and exhausted candidate sets are all valid inputs.
func validateInputs(catalog []domain.Product, behavior domain.UserBehavior, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	seen := make(map[string]struct{}, len(catalog))
	for i, p := range catalog {
		if p.ID == "" {
			return fmt.Errorf("%w: product at index %d has an empty id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if behavior.PriceMax > 0 && behavior.PriceMax < behavior.PriceMin {
		return fmt.Errorf("%w: price range [%v, %v] is inverted",
			ErrInvalidBehavior, behavior.PriceMin, behavior.PriceMax)
	}

	return nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// sortByScore stable-sorts descending. Candidates are always assembled in
// catalog order first, so tied scores keep catalog order.
func sortByScore(scored []domain.ScoredProduct) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

func truncate(scored []domain.ScoredProduct, limit int) []domain.ScoredProduct {
	if len(scored) > limit {
		return scored[:limit]
	}
	return scored
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// matchesAnyTag reports whether any term appears as a case-insensitive
// substring of any tag.
func matchesAnyTag(terms []string, tags []string) bool {
	for _, term := range terms {
		if term == "" {
			continue
		}
		for _, tag := range tags {
			if containsFold(tag, term) {
				return true
			}
		}
	}
	return false
}

// matchesNameOrTags reports whether any query appears as a case-insensitive
// substring of the product name or of any tag.
func matchesNameOrTags(queries []string, name string, tags []string) bool {
	for _, q := range queries {
		if q == "" {
			continue
		}
		if containsFold(name, q) {
			return true
		}
		for _, tag := range tags {
			if containsFold(tag, q) {
				return true
			}
		}
	}
	return false
}

package scoring

import "creator-quiz/internal/domain"

// ClassifySecondary dispatches on the catalog's secondary strategy.
//
// The weighted strategy sums raw dimension scores times per-category weights;
// the rules strategy evaluates typed conditions against normalized scores.
// Both resolve ties by table order and fall back to the configured default
// when nothing is eligible.
func ClassifySecondary(cat *Catalog, primary domain.PrimaryType, raw RawScores, normalized map[domain.Dimension]float64) (domain.SecondaryType, []domain.CategoryScore) {
	switch cat.secondary.Strategy {
	case domain.SecondaryStrategyRules:
		return classifyByRules(cat.secondary.Rules, normalized, cat.secondary.Fallback), nil
	case domain.SecondaryStrategyWeighted:
		return classifyByWeights(cat.order, cat.secondary.Weighted, primary, raw, cat.secondary.Fallback)
	default:
		return cat.secondary.Fallback, nil
	}
}

func classifyByWeights(order []domain.Dimension, categories []domain.WeightedCategory, primary domain.PrimaryType, raw RawScores, fallback domain.SecondaryType) (domain.SecondaryType, []domain.CategoryScore) {
	scores := make([]domain.CategoryScore, 0, len(categories))
	best := -1
	for _, wc := range categories {
		if wc.Type == "" || (wc.Primary != "" && wc.Primary != primary) {
			continue
		}
		var sum float64
		// Summed in dimension order so equal inputs give bit-identical totals.
		for _, d := range order {
			sum += raw[d] * wc.Weights[d]
		}
		scores = append(scores, domain.CategoryScore{Type: wc.Type, Score: sum})
		if best < 0 || sum > scores[best].Score {
			best = len(scores) - 1
		}
	}
	if best < 0 {
		return fallback, scores
	}
	return scores[best].Type, scores
}

func classifyByRules(rules []domain.SecondaryRule, normalized map[domain.Dimension]float64, fallback domain.SecondaryType) domain.SecondaryType {
	for _, r := range rules {
		if r.Type == "" {
			continue
		}
		if matchesAll(r.Conditions, normalized) {
			return r.Type
		}
	}
	return fallback
}

func matchesAll(conds []domain.Condition, normalized map[domain.Dimension]float64) bool {
	for _, c := range conds {
		if !Holds(c, normalized[c.Dimension]) {
			return false
		}
	}
	return true
}

// Holds evaluates a single condition against a value.
func Holds(c domain.Condition, v float64) bool {
	switch c.Comparator {
	case domain.ComparatorGreater:
		return v > c.Threshold
	case domain.ComparatorGreaterEqual:
		return v >= c.Threshold
	case domain.ComparatorLess:
		return v < c.Threshold
	case domain.ComparatorLessEqual:
		return v <= c.Threshold
	case domain.ComparatorEqual:
		return v == c.Threshold
	default:
		return false
	}
}

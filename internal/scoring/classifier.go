package scoring

import (
	"sort"

	"creator-quiz/internal/domain"
)

const strengthCount = 3

// Classifier scores answer sets against a single immutable catalog. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	cat *Catalog
}

func NewClassifier(cat *Catalog) *Classifier {
	return &Classifier{cat: cat}
}

// Catalog returns the catalog the classifier was built with.
func (c *Classifier) Catalog() *Catalog { return c.cat }

// Classify scores answers and picks the primary and secondary categories.
func (c *Classifier) Classify(answers []int) (domain.Classification, error) {
	raw, err := Score(c.cat, answers)
	if err != nil {
		return domain.Classification{}, err
	}
	normalized := NormalizeAll(c.cat, raw)
	primary, sims := ClassifyPrimary(c.cat, normalized)
	secondary, secScores := ClassifySecondary(c.cat, primary, raw, normalized)

	return domain.Classification{
		Primary:         primary,
		Secondary:       secondary,
		Dimensions:      c.cat.Dimensions(),
		Raw:             raw,
		Normalized:      normalized,
		Similarities:    sims,
		SecondaryScores: secScores,
		Strengths:       topDimensions(c.cat.base, normalized, strengthCount),
	}, nil
}

// Report assembles display text for a classification.
func (c *Classifier) Report(cl domain.Classification) domain.ReportText {
	return AssembleReport(c.cat, cl.Primary, cl.Secondary)
}

// topDimensions returns the n highest-scoring dimensions; equal scores keep
// declaration order.
func topDimensions(dims []domain.Dimension, scores map[domain.Dimension]float64, n int) []domain.Dimension {
	ranked := append([]domain.Dimension(nil), dims...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

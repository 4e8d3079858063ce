package scoring

import (
	"math"

	"creator-quiz/internal/domain"
)

// CosineSimilarity returns the cosine of the angle between a and b. Vectors of
// different length are compared over the shorter prefix; a zero-norm vector
// yields 0.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// vectorOf lays m out over dims; missing entries are 0.
func vectorOf(dims []domain.Dimension, m map[domain.Dimension]float64) []float64 {
	out := make([]float64, len(dims))
	for i, d := range dims {
		out[i] = m[d]
	}
	return out
}

// ClassifyPrimary picks the reference profile most similar to the normalized
// respondent vector. Ties go to the profile listed first. An empty profile
// table yields the catalog fallback.
func ClassifyPrimary(cat *Catalog, normalized map[domain.Dimension]float64) (domain.PrimaryType, []domain.ProfileMatch) {
	if len(cat.profiles) == 0 {
		return cat.fallback, nil
	}
	respondent := vectorOf(cat.order, normalized)
	matches := make([]domain.ProfileMatch, 0, len(cat.profiles))
	best := -1
	for i, p := range cat.profiles {
		sim := CosineSimilarity(respondent, vectorOf(cat.order, p.Vector))
		matches = append(matches, domain.ProfileMatch{Type: p.Type, Similarity: sim})
		if best < 0 || sim > matches[best].Similarity {
			best = i
		}
	}
	return matches[best].Type, matches
}

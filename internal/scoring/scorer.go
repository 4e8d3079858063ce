package scoring

import (
	"errors"
	"fmt"

	"creator-quiz/internal/domain"
)

var ErrInvalidAnswers = errors.New("invalid answers")

// RawScores maps each dimension to its accumulated signed score.
type RawScores map[domain.Dimension]float64

// Score accumulates answers into one raw score per catalog dimension.
//
// Every answer is centered on the scale midpoint, signed by the question's
// direction and multiplied by its weight. Derived dimensions are computed from
// the base totals afterwards. Shape problems are reported as ErrInvalidAnswers
// before anything is accumulated.
func Score(cat *Catalog, answers []int) (RawScores, error) {
	if err := ValidateAnswers(cat, answers); err != nil {
		return nil, err
	}

	mid := cat.scale.Midpoint()
	raw := make(RawScores, len(cat.order))
	for _, d := range cat.base {
		raw[d] = 0
	}
	for i, q := range cat.questions {
		centered := float64(answers[i]) - mid
		raw[q.Dimension] += centered * q.Direction.Sign() * q.Weight
	}
	for _, dd := range cat.derived {
		var v float64
		for _, t := range dd.Terms {
			v += t.Coefficient * raw[t.Dimension]
		}
		raw[dd.Name] = v
	}
	return raw, nil
}

// ValidateAnswers checks length and range against the catalog.
func ValidateAnswers(cat *Catalog, answers []int) error {
	if len(answers) != len(cat.questions) {
		return fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidAnswers, len(cat.questions), len(answers))
	}
	for i, a := range answers {
		if !cat.scale.Contains(a) {
			return fmt.Errorf("%w: answer %d is %d, outside [%d, %d]", ErrInvalidAnswers, i, a, cat.scale.Min, cat.scale.Max)
		}
	}
	return nil
}

package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-quiz/internal/domain"
)

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier(mustCatalog(t, twentyQuestionSpec()))
	answers := []int{5, 1, 4, 2, 5, 3, 3, 1, 4, 4, 2, 5, 1, 3, 5, 2, 4, 4, 1, 5}

	first, err := c.Classify(answers)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := c.Classify(answers)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("classification changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestClassifier_InvalidAnswers(t *testing.T) {
	c := NewClassifier(mustCatalog(t, twentyQuestionSpec()))
	_, err := c.Classify([]int{3, 3})
	assert.ErrorIs(t, err, ErrInvalidAnswers)
}

func TestClassifier_FullResult(t *testing.T) {
	c := NewClassifier(mustCatalog(t, twentyQuestionSpec()))

	// creativity and sociability questions pushed up, planning and analysis down.
	answers := make([]int, 20)
	for i, q := range c.Catalog().Questions() {
		high := q.Dimension == dimCreativity || q.Dimension == dimSociability
		if high == (q.Direction == domain.DirectionPositive) {
			answers[i] = 5
		} else {
			answers[i] = 1
		}
	}

	got, err := c.Classify(answers)
	require.NoError(t, err)
	assert.Equal(t, domain.PrimaryType("entertainer"), got.Primary)
	assert.Equal(t, domain.SecondaryType("storyteller"), got.Secondary)
	assert.Equal(t, c.Catalog().Dimensions(), got.Dimensions)
	assert.Equal(t, []domain.Dimension{dimCreativity, dimSociability, dimPlanning}, got.Strengths)
	assert.Len(t, got.Similarities, 3)
	assert.Len(t, got.SecondaryScores, 2)
	assert.Equal(t, 10.0, got.Normalized[dimStyle])

	vec := got.Vector()
	require.Len(t, vec, 5)
	assert.Equal(t, float32(10), vec[0])
	assert.Equal(t, float32(0), vec[1])
}

func TestAssembleReport(t *testing.T) {
	spec := twentyQuestionSpec()
	spec.PrimaryTexts = map[domain.PrimaryType]domain.PrimaryText{
		"visionary": {Name: "The Visionary", Icon: "*", Description: "Sees it first."},
	}
	spec.SecondaryTexts = map[domain.PrimaryType]map[domain.SecondaryType]domain.SecondaryText{
		"visionary": {
			"storyteller": {Name: "Narrative Visionary", Paragraphs: []string{"p1"}, Suitability: []string{"vlogs"}},
		},
	}
	cat := mustCatalog(t, spec)

	t.Run("found", func(t *testing.T) {
		rep := AssembleReport(cat, "visionary", "storyteller")
		assert.Equal(t, "The Visionary", rep.Name)
		assert.Equal(t, "Narrative Visionary", rep.SubName)
		assert.Equal(t, []string{"p1"}, rep.Paragraphs)
		assert.Equal(t, []string{"vlogs"}, rep.Suitability)
	})

	t.Run("missing secondary uses raw id", func(t *testing.T) {
		rep := AssembleReport(cat, "visionary", "analyst")
		assert.Equal(t, "The Visionary", rep.Name)
		assert.Equal(t, "analyst", rep.SubName)
		assert.Empty(t, rep.Paragraphs)
		assert.NotNil(t, rep.Paragraphs)
	})

	t.Run("missing primary uses raw ids", func(t *testing.T) {
		rep := AssembleReport(cat, "strategist", "storyteller")
		assert.Equal(t, "strategist", rep.Name)
		assert.Equal(t, "storyteller", rep.SubName)
	})
}

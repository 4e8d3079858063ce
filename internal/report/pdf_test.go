package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-quiz/internal/domain"
)

func sampleClassification() domain.Classification {
	return domain.Classification{
		Primary:    "entertainer",
		Secondary:  "host",
		Dimensions: []domain.Dimension{"creativity", "sociability", "style"},
		Normalized: map[domain.Dimension]float64{"creativity": 7.5, "sociability": 10, "style": 6.25},
		Strengths:  []domain.Dimension{"sociability", "creativity", "style"},
	}
}

func TestBars_FollowDimensionOrder(t *testing.T) {
	bars := Bars(sampleClassification(), 10)
	require.Len(t, bars, 3)
	assert.Equal(t, Bar{Dimension: "creativity", Score: 7.5, Max: 10}, bars[0])
	assert.Equal(t, domain.Dimension("style"), bars[2].Dimension)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "creator_report_12345678.pdf", Filename("1234567890abcdef"))
	assert.Equal(t, "creator_report_abc.pdf", Filename("abc"))
}

func TestRender_WritesPDF(t *testing.T) {
	cl := sampleClassification()
	text := domain.ReportText{
		Primary:     "entertainer",
		Secondary:   "host",
		Name:        "Entertainer Tiger",
		Icon:        "<*>",
		Description: "Energetic and expressive.",
		SubName:     "Live Host",
		Paragraphs:  []string{"Lean on live streams.", "Collaborate often."},
		Suitability: []string{"live streams", "reaction videos"},
	}
	rep := New("u1", cl, text, 10, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output should start with a PDF header")
	assert.Greater(t, buf.Len(), 500)
}

func TestRender_FallbackTextWithoutBars(t *testing.T) {
	rep := Report{
		UserID: "u1",
		Text: domain.ReportText{
			Primary:     "visionary",
			Secondary:   "unknown_sub",
			Name:        "visionary",
			SubName:     "unknown_sub",
			Paragraphs:  []string{},
			Suitability: []string{},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_RejectsEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Report{})
	assert.True(t, errors.Is(err, ErrEmptyReport))
	assert.Zero(t, buf.Len())
}

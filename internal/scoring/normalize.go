package scoring

import "creator-quiz/internal/domain"

// Bounds is the theoretical [Min, Max] range of a raw score.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp pins v into the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Normalize rescales raw from b onto [0, displayMax]. A degenerate range
// (Max == Min) maps to the middle of the display range.
func Normalize(raw float64, b Bounds, displayMax float64) float64 {
	if b.Max == b.Min {
		return displayMax / 2
	}
	return (b.Clamp(raw) - b.Min) / (b.Max - b.Min) * displayMax
}

// NormalizeAll normalizes every catalog dimension. Dimensions absent from raw
// are treated as 0.
func NormalizeAll(cat *Catalog, raw RawScores) map[domain.Dimension]float64 {
	out := make(map[domain.Dimension]float64, len(cat.order))
	for _, d := range cat.order {
		out[d] = Normalize(raw[d], cat.bounds[d], cat.displayMax)
	}
	return out
}

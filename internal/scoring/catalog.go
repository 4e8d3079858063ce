package scoring

import (
	"errors"
	"fmt"
	"strings"

	"creator-quiz/internal/domain"
)

// DefaultDisplayMax is the top of the normalized display range.
const DefaultDisplayMax = 10.0

var ErrInvalidCatalog = errors.New("invalid quiz catalog")

// SecondarySpec configures the secondary classifier.
type SecondarySpec struct {
	Strategy domain.SecondaryStrategy  `json:"strategy" yaml:"strategy"`
	Weighted []domain.WeightedCategory `json:"weighted,omitempty" yaml:"weighted,omitempty"`
	Rules    []domain.SecondaryRule    `json:"rules,omitempty" yaml:"rules,omitempty"`
	Fallback domain.SecondaryType      `json:"fallback" yaml:"fallback"`
}

// CatalogSpec is the raw content of a questionnaire as read from disk.
type CatalogSpec struct {
	Scale           domain.LikertScale                                                   `json:"scale" yaml:"scale"`
	DisplayMax      float64                                                              `json:"display_max,omitempty" yaml:"display_max,omitempty"`
	Dimensions      []domain.Dimension                                                   `json:"dimensions" yaml:"dimensions"`
	Derived         []domain.DerivedDimension                                            `json:"derived,omitempty" yaml:"derived,omitempty"`
	Questions       []domain.Question                                                    `json:"questions" yaml:"questions"`
	Profiles        []domain.ReferenceProfile                                            `json:"profiles" yaml:"profiles"`
	FallbackPrimary domain.PrimaryType                                                   `json:"fallback_primary" yaml:"fallback_primary"`
	Secondary       SecondarySpec                                                        `json:"secondary" yaml:"secondary"`
	PrimaryTexts    map[domain.PrimaryType]domain.PrimaryText                            `json:"primary_texts,omitempty" yaml:"primary_texts,omitempty"`
	SecondaryTexts  map[domain.PrimaryType]map[domain.SecondaryType]domain.SecondaryText `json:"secondary_texts,omitempty" yaml:"secondary_texts,omitempty"`
}

// Catalog is the validated, immutable questionnaire configuration shared by
// the scorer and both classifiers. Build it once with NewCatalog.
type Catalog struct {
	scale          domain.LikertScale
	displayMax     float64
	base           []domain.Dimension
	derived        []domain.DerivedDimension
	order          []domain.Dimension
	questions      []domain.Question
	bounds         map[domain.Dimension]Bounds
	profiles       []domain.ReferenceProfile
	fallback       domain.PrimaryType
	secondary      SecondarySpec
	primaryTexts   map[domain.PrimaryType]domain.PrimaryText
	secondaryTexts map[domain.PrimaryType]map[domain.SecondaryType]domain.SecondaryText
}

// NewCatalog validates spec and returns an immutable catalog.
//
// Structural problems the scorer cannot work around (unknown dimension on a
// question, bad direction, unknown comparator) are rejected. Profile vectors
// and weight tables are taken as-is: unknown or missing dimensions simply
// contribute 0 at classification time.
func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	if spec.Scale.Max <= spec.Scale.Min {
		return nil, fmt.Errorf("%w: scale max %d must exceed min %d", ErrInvalidCatalog, spec.Scale.Max, spec.Scale.Min)
	}
	if len(spec.Dimensions) == 0 {
		return nil, fmt.Errorf("%w: no dimensions declared", ErrInvalidCatalog)
	}
	if len(spec.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions declared", ErrInvalidCatalog)
	}
	if strings.TrimSpace(string(spec.FallbackPrimary)) == "" {
		return nil, fmt.Errorf("%w: fallback_primary is required", ErrInvalidCatalog)
	}
	if strings.TrimSpace(string(spec.Secondary.Fallback)) == "" {
		return nil, fmt.Errorf("%w: secondary.fallback is required", ErrInvalidCatalog)
	}

	displayMax := spec.DisplayMax
	if displayMax <= 0 {
		displayMax = DefaultDisplayMax
	}

	c := &Catalog{
		scale:          spec.Scale,
		displayMax:     displayMax,
		bounds:         make(map[domain.Dimension]Bounds),
		fallback:       spec.FallbackPrimary,
		primaryTexts:   copyPrimaryTexts(spec.PrimaryTexts),
		secondaryTexts: copySecondaryTexts(spec.SecondaryTexts),
	}

	known := make(map[domain.Dimension]bool, len(spec.Dimensions)+len(spec.Derived))
	for _, d := range spec.Dimensions {
		if strings.TrimSpace(string(d)) == "" {
			return nil, fmt.Errorf("%w: empty dimension name", ErrInvalidCatalog)
		}
		if known[d] {
			return nil, fmt.Errorf("%w: duplicate dimension %q", ErrInvalidCatalog, d)
		}
		known[d] = true
		c.base = append(c.base, d)
	}

	maxDev := spec.Scale.MaxDeviation()
	extent := make(map[domain.Dimension]float64, len(c.base))
	for i, q := range spec.Questions {
		if !known[q.Dimension] {
			return nil, fmt.Errorf("%w: question %d references unknown dimension %q", ErrInvalidCatalog, i, q.Dimension)
		}
		if q.Direction.Sign() == 0 {
			return nil, fmt.Errorf("%w: question %d has invalid direction %q", ErrInvalidCatalog, i, q.Direction)
		}
		if q.Weight == 0 {
			q.Weight = 1
		}
		q.Index = i
		c.questions = append(c.questions, q)
		extent[q.Dimension] += abs(q.Weight) * maxDev
	}
	for _, d := range c.base {
		c.bounds[d] = Bounds{Min: -extent[d], Max: extent[d]}
	}

	for _, dd := range spec.Derived {
		if strings.TrimSpace(string(dd.Name)) == "" || known[dd.Name] {
			return nil, fmt.Errorf("%w: derived dimension %q is empty or duplicated", ErrInvalidCatalog, dd.Name)
		}
		var width float64
		terms := make([]domain.DerivedTerm, 0, len(dd.Terms))
		for _, t := range dd.Terms {
			if !containsDim(c.base, t.Dimension) {
				return nil, fmt.Errorf("%w: derived dimension %q references unknown base dimension %q", ErrInvalidCatalog, dd.Name, t.Dimension)
			}
			width += abs(t.Coefficient) * extent[t.Dimension]
			terms = append(terms, t)
		}
		known[dd.Name] = true
		c.derived = append(c.derived, domain.DerivedDimension{Name: dd.Name, Terms: terms})
		c.bounds[dd.Name] = Bounds{Min: -width, Max: width}
	}

	c.order = make([]domain.Dimension, 0, len(c.base)+len(c.derived))
	c.order = append(c.order, c.base...)
	for _, dd := range c.derived {
		c.order = append(c.order, dd.Name)
	}

	for _, p := range spec.Profiles {
		if strings.TrimSpace(string(p.Type)) == "" {
			continue
		}
		c.profiles = append(c.profiles, domain.ReferenceProfile{Type: p.Type, Vector: copyVector(p.Vector)})
	}

	switch spec.Secondary.Strategy {
	case "", domain.SecondaryStrategyWeighted:
		spec.Secondary.Strategy = domain.SecondaryStrategyWeighted
	case domain.SecondaryStrategyRules:
	default:
		return nil, fmt.Errorf("%w: unknown secondary strategy %q", ErrInvalidCatalog, spec.Secondary.Strategy)
	}
	for _, r := range spec.Secondary.Rules {
		for _, cond := range r.Conditions {
			if !cond.Comparator.Valid() {
				return nil, fmt.Errorf("%w: rule %q has unsupported comparator %q", ErrInvalidCatalog, r.Type, cond.Comparator)
			}
		}
	}
	c.secondary = SecondarySpec{
		Strategy: spec.Secondary.Strategy,
		Fallback: spec.Secondary.Fallback,
	}
	for _, wc := range spec.Secondary.Weighted {
		c.secondary.Weighted = append(c.secondary.Weighted, domain.WeightedCategory{
			Type:    wc.Type,
			Primary: wc.Primary,
			Weights: copyVector(wc.Weights),
		})
	}
	for _, r := range spec.Secondary.Rules {
		c.secondary.Rules = append(c.secondary.Rules, domain.SecondaryRule{
			Type:       r.Type,
			Conditions: append([]domain.Condition(nil), r.Conditions...),
		})
	}

	return c, nil
}

// Scale returns the Likert scale answers must fall in.
func (c *Catalog) Scale() domain.LikertScale { return c.scale }

// DisplayMax returns R, the top of the normalized range [0, R].
func (c *Catalog) DisplayMax() float64 { return c.displayMax }

// Dimensions returns base dimensions followed by derived ones, in declared order.
func (c *Catalog) Dimensions() []domain.Dimension {
	return append([]domain.Dimension(nil), c.order...)
}

// Questions returns a copy of the question table.
func (c *Catalog) Questions() []domain.Question {
	return append([]domain.Question(nil), c.questions...)
}

// Bounds returns the theoretical raw range for a dimension. Unknown
// dimensions report the degenerate range [0, 0].
func (c *Catalog) Bounds(d domain.Dimension) Bounds {
	return c.bounds[d]
}

func (c *Catalog) FallbackPrimary() domain.PrimaryType { return c.fallback }

func (c *Catalog) FallbackSecondary() domain.SecondaryType { return c.secondary.Fallback }

func (c *Catalog) SecondaryStrategy() domain.SecondaryStrategy { return c.secondary.Strategy }

func containsDim(dims []domain.Dimension, d domain.Dimension) bool {
	for _, x := range dims {
		if x == d {
			return true
		}
	}
	return false
}

func copyVector(v map[domain.Dimension]float64) map[domain.Dimension]float64 {
	out := make(map[domain.Dimension]float64, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

func copyPrimaryTexts(in map[domain.PrimaryType]domain.PrimaryText) map[domain.PrimaryType]domain.PrimaryText {
	out := make(map[domain.PrimaryType]domain.PrimaryText, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySecondaryTexts(in map[domain.PrimaryType]map[domain.SecondaryType]domain.SecondaryText) map[domain.PrimaryType]map[domain.SecondaryType]domain.SecondaryText {
	out := make(map[domain.PrimaryType]map[domain.SecondaryType]domain.SecondaryText, len(in))
	for p, subs := range in {
		inner := make(map[domain.SecondaryType]domain.SecondaryText, len(subs))
		for k, v := range subs {
			v.Paragraphs = append([]string(nil), v.Paragraphs...)
			v.Suitability = append([]string(nil), v.Suitability...)
			inner[k] = v
		}
		out[p] = inner
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

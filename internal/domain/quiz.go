package domain

import "time"

// Dimension identifica un eje de rasgo (creativity, planning, ...).
type Dimension string

// Direction indica si una pregunta suma o resta al eje.
type Direction string

const (
	DirectionPositive Direction = "+"
	DirectionNegative Direction = "-"
)

// Sign devuelve +1/-1 segun la direccion; cualquier otro valor es invalido y devuelve 0.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionPositive:
		return 1
	case DirectionNegative:
		return -1
	default:
		return 0
	}
}

// PrimaryType es el "creator type" principal elegido por similitud.
type PrimaryType string

// SecondaryType es la sub-clasificacion elegida por pesos o reglas.
type SecondaryType string

// Comparator es el operador de una condicion de regla secundaria.
type Comparator string

const (
	ComparatorGreater      Comparator = ">"
	ComparatorGreaterEqual Comparator = ">="
	ComparatorLess         Comparator = "<"
	ComparatorLessEqual    Comparator = "<="
	ComparatorEqual        Comparator = "=="
)

// Valid reporta si el comparador pertenece al conjunto cerrado soportado.
func (c Comparator) Valid() bool {
	switch c {
	case ComparatorGreater, ComparatorGreaterEqual, ComparatorLess, ComparatorLessEqual, ComparatorEqual:
		return true
	default:
		return false
	}
}

// SecondaryStrategy selecciona el clasificador secundario.
type SecondaryStrategy string

const (
	SecondaryStrategyWeighted SecondaryStrategy = "weighted"
	SecondaryStrategyRules    SecondaryStrategy = "rules"
)

// LikertScale es el rango cerrado de respuestas validas.
type LikertScale struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Midpoint devuelve el punto neutro de la escala.
func (s LikertScale) Midpoint() float64 {
	return float64(s.Min+s.Max) / 2
}

// MaxDeviation es la distancia maxima de una respuesta al punto neutro.
func (s LikertScale) MaxDeviation() float64 {
	return float64(s.Max-s.Min) / 2
}

// Contains reporta si la respuesta cae dentro de la escala.
func (s LikertScale) Contains(answer int) bool {
	return answer >= s.Min && answer <= s.Max
}

type Question struct {
	Index     int       `json:"index" yaml:"index"`
	Text      string    `json:"text" yaml:"text"`
	Dimension Dimension `json:"dimension" yaml:"dimension"`
	Direction Direction `json:"direction" yaml:"direction"`
	Weight    float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// DerivedTerm es un sumando de un eje derivado: coeficiente * eje base.
type DerivedTerm struct {
	Dimension   Dimension `json:"dimension" yaml:"dimension"`
	Coefficient float64   `json:"coefficient" yaml:"coefficient"`
}

// DerivedDimension combina linealmente ejes base (p.ej. style = sociability - analysis).
type DerivedDimension struct {
	Name  Dimension     `json:"name" yaml:"name"`
	Terms []DerivedTerm `json:"terms" yaml:"terms"`
}

// ReferenceProfile es el vector ideal de un tipo principal en escala normalizada.
type ReferenceProfile struct {
	Type   PrimaryType           `json:"type" yaml:"type"`
	Vector map[Dimension]float64 `json:"vector" yaml:"vector"`
}

// WeightedCategory puntua un tipo secundario como suma ponderada de ejes.
// Primary vacio significa que aplica a cualquier tipo principal.
type WeightedCategory struct {
	Type    SecondaryType         `json:"type" yaml:"type"`
	Primary PrimaryType           `json:"primary,omitempty" yaml:"primary,omitempty"`
	Weights map[Dimension]float64 `json:"weights" yaml:"weights"`
}

type Condition struct {
	Dimension  Dimension  `json:"dimension" yaml:"dimension"`
	Comparator Comparator `json:"comparator" yaml:"comparator"`
	Threshold  float64    `json:"threshold" yaml:"threshold"`
}

// SecondaryRule coincide cuando todas sus condiciones se cumplen.
type SecondaryRule struct {
	Type       SecondaryType `json:"type" yaml:"type"`
	Conditions []Condition   `json:"conditions" yaml:"conditions"`
}

type PrimaryText struct {
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description string `json:"description" yaml:"description"`
}

type SecondaryText struct {
	Name        string   `json:"name" yaml:"name"`
	Paragraphs  []string `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`
	Suitability []string `json:"suitability,omitempty" yaml:"suitability,omitempty"`
}

// ProfileMatch expone la similitud contra cada perfil de referencia.
type ProfileMatch struct {
	Type       PrimaryType `json:"type"`
	Similarity float64     `json:"similarity"`
}

// CategoryScore expone la puntuacion de cada candidato secundario.
type CategoryScore struct {
	Type  SecondaryType `json:"type"`
	Score float64       `json:"score"`
}

// Classification es el resultado derivado de un set de respuestas.
type Classification struct {
	Primary         PrimaryType           `json:"primary"`
	Secondary       SecondaryType         `json:"secondary"`
	Dimensions      []Dimension           `json:"dimensions"`
	Raw             map[Dimension]float64 `json:"raw"`
	Normalized      map[Dimension]float64 `json:"normalized"`
	Similarities    []ProfileMatch        `json:"similarities"`
	SecondaryScores []CategoryScore       `json:"secondary_scores,omitempty"`
	Strengths       []Dimension           `json:"strengths"`
}

// Vector devuelve los scores normalizados en el orden de Dimensions.
func (c Classification) Vector() []float32 {
	out := make([]float32, len(c.Dimensions))
	for i, d := range c.Dimensions {
		out[i] = float32(c.Normalized[d])
	}
	return out
}

// ReportText es el texto de presentacion para un par (primario, secundario).
type ReportText struct {
	Primary     PrimaryType   `json:"primary"`
	Secondary   SecondaryType `json:"secondary"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon,omitempty"`
	Description string        `json:"description"`
	SubName     string        `json:"sub_name"`
	Paragraphs  []string      `json:"paragraphs"`
	Suitability []string      `json:"suitability"`
}

// Response es una entrega registrada en el log de respuestas.
type Response struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Answers     []int         `json:"answers"`
	Primary     PrimaryType   `json:"primary"`
	Secondary   SecondaryType `json:"secondary"`
	Scores      []float32     `json:"scores"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

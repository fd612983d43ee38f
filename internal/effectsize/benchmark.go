package effectsize

import "math"

// Magnitude is the ordinal size category of an effect.
type Magnitude string

const (
	Negligible Magnitude = "negligible"
	Small      Magnitude = "small"
	Medium     Magnitude = "medium"
	Large      Magnitude = "large"
)

// Effect size types with benchmarks.
const (
	CohensD     = "cohensD"
	Correlation = "correlation"
	OddsRatio   = "or"
)

// Research fields with benchmark tables.
const (
	FieldDefault    = "default"
	FieldPsychology = "psychology"
	FieldMedicine   = "medicine"
	FieldEducation  = "education"
)

// Thresholds are the lower bounds of the small, medium and large bands.
type Thresholds struct {
	Small  float64 `json:"small"`
	Medium float64 `json:"medium"`
	Large  float64 `json:"large"`
}

var cohen = Thresholds{Small: 0.2, Medium: 0.5, Large: 0.8}

// Benchmarks maps field -> effect type -> thresholds.
var Benchmarks = map[string]map[string]Thresholds{
	FieldPsychology: {
		CohensD:     cohen,
		Correlation: {Small: 0.1, Medium: 0.3, Large: 0.5},
	},
	FieldMedicine: {
		CohensD:   cohen,
		OddsRatio: {Small: 1.5, Medium: 2.5, Large: 4.0},
	},
	FieldEducation: {
		CohensD: cohen,
	},
	FieldDefault: {
		CohensD:     cohen,
		Correlation: {Small: 0.1, Medium: 0.3, Large: 0.5},
	},
}

// Lookup returns the thresholds used for typ within field. An unknown field
// uses the default table, and a type missing from the table uses Cohen's d.
func Lookup(typ, field string) Thresholds {
	table, ok := Benchmarks[field]
	if !ok {
		table = Benchmarks[FieldDefault]
	}
	if th, ok := table[typ]; ok {
		return th
	}
	return table[CohensD]
}

// Interpret grades |value| against the benchmarks for typ and field.
func Interpret(value float64, typ, field string) Magnitude {
	th := Lookup(typ, field)
	v := math.Abs(value)
	switch {
	case v >= th.Large:
		return Large
	case v >= th.Medium:
		return Medium
	case v >= th.Small:
		return Small
	default:
		return Negligible
	}
}

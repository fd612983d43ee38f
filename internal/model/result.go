package model

import (
	"encoding/json"
)

// Shape identifies which variant of a Result is populated.
type Shape string

const (
	ShapeNone   Shape = ""
	ShapeSingle Shape = "single"
	ShapeMulti  Shape = "multi"
	ShapePower  Shape = "power"
)

// Result is the outcome of one calculator invocation. Exactly one of Single,
// Multi or Power is set, or Error is non-empty and all three are nil.
type Result struct {
	Single *Single
	Multi  *Multi
	Power  *Power
	Error  string
}

// Single is a one-value sample size or event count.
type Single struct {
	Value    int
	Label    string
	Note     string
	Adjusted *SingleAdjusted
}

// SingleAdjusted carries the attrition-inflated counterpart of a Single.
type SingleAdjusted struct {
	Value       int
	DropoutRate float64
}

// Multi is a two-group result: per-group sizes (or event counts) and total.
type Multi struct {
	Value           int
	Value2          int
	Total           int
	Label           string
	Label1          string
	Label2          string
	Note            string
	AllocationRatio float64
	Adjusted        *MultiAdjusted
}

// MultiAdjusted carries attrition-inflated counterparts of a Multi.
type MultiAdjusted struct {
	Value       int
	Value2      int
	Total       int
	DropoutRate float64
}

// Power is a post-hoc power estimate. Value is rounded to two decimals,
// Power is unrounded.
type Power struct {
	Value        float64
	Power        float64
	PowerPercent int
}

// Fail returns an error Result.
func Fail(msg string) Result {
	return Result{Error: msg}
}

// SingleOf wraps s in a Result.
func SingleOf(s Single) Result {
	return Result{Single: &s}
}

// MultiOf wraps m in a Result.
func MultiOf(m Multi) Result {
	return Result{Multi: &m}
}

// PowerOf wraps p in a Result.
func PowerOf(p Power) Result {
	return Result{Power: &p}
}

// Shape returns the populated variant, or ShapeNone for an error Result.
func (r Result) Shape() Shape {
	switch {
	case r.Error != "":
		return ShapeNone
	case r.Single != nil:
		return ShapeSingle
	case r.Multi != nil:
		return ShapeMulti
	case r.Power != nil:
		return ShapePower
	default:
		return ShapeNone
	}
}

// OK reports whether r carries a value.
func (r Result) OK() bool {
	return r.Shape() != ShapeNone
}

// IsMulti reports whether r is the two-group shape.
func (r Result) IsMulti() bool {
	return r.Shape() == ShapeMulti
}

// Primary returns the primary value: the sample size, group-1 size, event
// count, or rounded power.
func (r Result) Primary() (float64, bool) {
	switch r.Shape() {
	case ShapeSingle:
		return float64(r.Single.Value), true
	case ShapeMulti:
		return float64(r.Multi.Value), true
	case ShapePower:
		return r.Power.Value, true
	}
	return 0, false
}

// Secondary returns the group-2 value of a Multi result.
func (r Result) Secondary() (float64, bool) {
	if r.Shape() != ShapeMulti {
		return 0, false
	}
	return float64(r.Multi.Value2), true
}

// TotalValue returns the total of a Multi result.
func (r Result) TotalValue() (float64, bool) {
	if r.Shape() != ShapeMulti {
		return 0, false
	}
	return float64(r.Multi.Total), true
}

// AdjustedValue returns the attrition-adjusted primary value, if any.
func (r Result) AdjustedValue() (float64, bool) {
	switch r.Shape() {
	case ShapeSingle:
		if r.Single.Adjusted != nil {
			return float64(r.Single.Adjusted.Value), true
		}
	case ShapeMulti:
		if r.Multi.Adjusted != nil {
			return float64(r.Multi.Adjusted.Value), true
		}
	}
	return 0, false
}

// FlatResult is the wire rendering of a Result. value and error are always
// present; everything else is omitted when not applicable.
type FlatResult struct {
	Value           *float64 `json:"value"`
	Value2          *int     `json:"value2,omitempty"`
	Total           *int     `json:"total,omitempty"`
	ValueAdjusted   *int     `json:"valueAdjusted,omitempty"`
	Value2Adjusted  *int     `json:"value2Adjusted,omitempty"`
	TotalAdjusted   *int     `json:"totalAdjusted,omitempty"`
	DropoutRate     *float64 `json:"dropoutRate,omitempty"`
	AllocationRatio *float64 `json:"allocationRatio,omitempty"`
	IsMulti         bool     `json:"isMulti,omitempty"`
	Label           string   `json:"label,omitempty"`
	Label1          string   `json:"label1,omitempty"`
	Label2          string   `json:"label2,omitempty"`
	Note            string   `json:"note,omitempty"`
	Power           *float64 `json:"power,omitempty"`
	PowerPercent    *int     `json:"powerPercent,omitempty"`
	Error           *string  `json:"error"`
}

// Flat converts r to its wire rendering.
func (r Result) Flat() FlatResult {
	var f FlatResult
	switch r.Shape() {
	case ShapeSingle:
		s := r.Single
		f.Value = ptr(float64(s.Value))
		f.Label = s.Label
		f.Note = s.Note
		if s.Adjusted != nil {
			f.ValueAdjusted = ptr(s.Adjusted.Value)
			f.DropoutRate = ptr(s.Adjusted.DropoutRate)
		}
	case ShapeMulti:
		m := r.Multi
		f.Value = ptr(float64(m.Value))
		f.Value2 = ptr(m.Value2)
		f.Total = ptr(m.Total)
		f.IsMulti = true
		f.Label, f.Label1, f.Label2, f.Note = m.Label, m.Label1, m.Label2, m.Note
		if m.AllocationRatio != 0 {
			f.AllocationRatio = ptr(m.AllocationRatio)
		}
		if m.Adjusted != nil {
			f.ValueAdjusted = ptr(m.Adjusted.Value)
			f.Value2Adjusted = ptr(m.Adjusted.Value2)
			f.TotalAdjusted = ptr(m.Adjusted.Total)
			f.DropoutRate = ptr(m.Adjusted.DropoutRate)
		}
	case ShapePower:
		p := r.Power
		f.Value = ptr(p.Value)
		f.Power = ptr(p.Power)
		f.PowerPercent = ptr(p.PowerPercent)
	default:
		msg := r.Error
		f.Error = &msg
	}
	return f
}

// MarshalJSON emits the flat rendering.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Flat())
}

func ptr[T any](v T) *T {
	return &v
}

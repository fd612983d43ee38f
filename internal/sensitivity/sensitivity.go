// Package sensitivity re-runs a calculator across a swept input to trace how
// the required sample size responds.
package sensitivity

import (
	"math"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// DefaultSteps is the number of intervals used when a sweep asks for none.
const DefaultSteps = 10

// Param describes one swept input.
type Param struct {
	Name  string  `json:"name" yaml:"name" validate:"required"`
	Label string  `json:"label,omitempty" yaml:"label"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Steps int     `json:"steps,omitempty" yaml:"steps" validate:"gte=0,lte=1000"`
}

// Range evaluates fn at steps+1 evenly spaced values of param between min
// and max inclusive. Results carrying an error are skipped.
func Range(fn calc.Func, base model.Inputs, param string, min, max float64, steps int) []model.SweepPoint {
	if steps <= 0 {
		steps = DefaultSteps
	}
	step := (max - min) / float64(steps)

	points := make([]model.SweepPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := min + float64(i)*step
		r := fn(base.With(param, v))
		if p, ok := pointOf(v, r); ok {
			points = append(points, p)
		}
	}
	return points
}

func pointOf(v float64, r model.Result) (model.SweepPoint, bool) {
	value, ok := r.Primary()
	if !ok {
		return model.SweepPoint{}, false
	}
	p := model.SweepPoint{
		ParamValue: math.Round(v*1000) / 1000,
		SampleSize: value,
	}
	if adj, ok := r.AdjustedValue(); ok && adj != 0 {
		p.SampleSizeAdjusted = &adj
	}
	if r.IsMulti() {
		v2, _ := r.Secondary()
		total, _ := r.TotalValue()
		if total == 0 {
			total = value + v2
		}
		p.Value1 = &value
		p.Value2 = &v2
		p.Total = &total
	}
	return p, true
}

// MultiRange sweeps each param independently against the same base inputs.
func MultiRange(fn calc.Func, base model.Inputs, params []Param) []model.ParamSweep {
	out := make([]model.ParamSweep, 0, len(params))
	for _, p := range params {
		label := p.Label
		if label == "" {
			label = p.Name
		}
		out = append(out, model.ParamSweep{
			ParamName:  p.Name,
			ParamLabel: label,
			Results:    Range(fn, base, p.Name, p.Min, p.Max, p.Steps),
			MinValue:   p.Min,
			MaxValue:   p.Max,
		})
	}
	return out
}

// Extremes returns the smallest and largest sample size over every point of
// every sweep, preferring a point's total over its primary value. Both are
// zero when there are no usable points.
func Extremes(sweeps []model.ParamSweep) model.SweepExtremes {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range sweeps {
		for _, p := range s.Results {
			n := p.SampleSize
			if p.Total != nil && *p.Total != 0 {
				n = *p.Total
			}
			if n == 0 {
				continue
			}
			lo = math.Min(lo, n)
			hi = math.Max(hi, n)
		}
	}
	if math.IsInf(lo, 1) {
		return model.SweepExtremes{}
	}
	lo, hi = math.Ceil(lo), math.Ceil(hi)
	return model.SweepExtremes{Min: lo, Max: hi, Range: hi - lo}
}

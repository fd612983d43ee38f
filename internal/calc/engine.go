package calc

import (
	"math"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// Func is the signature shared by every calculator. Calculators are pure and
// never panic; invalid inputs produce a Result with Error set.
type Func func(model.Inputs) model.Result

// Engine binds the calculators to a quantile source.
type Engine struct {
	q Quantiles
}

// NewEngine returns an Engine using q. A nil q selects TableQuantiles.
func NewEngine(q Quantiles) *Engine {
	if q == nil {
		q = TableQuantiles{}
	}
	return &Engine{q: q}
}

// Default is the table-driven engine behind the package-level calculators.
var Default = NewEngine(TableQuantiles{})

const (
	labelPerGroup = "Required Sample Size Per Group"
	labelGroup1   = "Group 1 (n₁)"
	labelGroup2   = "Group 2 (n₂)"
	labelEvents   = "Required Number of Events"
	labelEvents1  = "Events in Group 1"
	labelEvents2  = "Events in Group 2"
	noteEvents    = "These are the required number of events, not subjects"

	errNonFinite = "Calculation produced a non-finite or unrepresentably large result. Please adjust your inputs."
)

// MaxSize is the largest sample size the engine reports. Every integer up to
// it is exactly representable as a float64, and a sum of two stays within int.
const MaxSize = 1 << 53

func (e *Engine) zAlpha(in model.Inputs) float64 {
	alpha, _ := in.Num("alpha")
	return e.q.Critical(alpha, in.Flag("twoTailed", true))
}

// zConfidence is the two-tailed critical value used by the estimation designs.
func (e *Engine) zConfidence(in model.Inputs) float64 {
	alpha, _ := in.Num("alpha")
	return e.q.Critical(alpha, true)
}

func (e *Engine) zBeta(in model.Inputs) float64 {
	beta, _ := in.Num("beta")
	return e.q.Power(beta)
}

// sizeOf rounds a closed-form sample size up, rejecting Inf/NaN and sizes
// above MaxSize.
func sizeOf(n float64) (int, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	c := math.Ceil(n)
	if c > MaxSize {
		return 0, false
	}
	return int(c), true
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func inCorrelation(v float64) bool {
	return v >= -1 && v <= 1
}

// fisherZ is the variance-stabilizing transform of a correlation.
func fisherZ(r float64) float64 {
	return 0.5 * math.Log((1+r)/(1-r))
}

// dropout returns the attrition rate when one was supplied.
func dropout(in model.Inputs) (float64, bool) {
	if !in.Truthy("dropoutRate") {
		return 0, false
	}
	d, _ := in.Num("dropoutRate")
	return d, true
}

// twoGroup shapes a per-group size for the two-group test designs: an
// allocation ratio other than 1 switches to the Multi shape, and a dropout
// rate attaches attrition-adjusted counterparts. Allocation is applied first.
func twoGroup(n float64, in model.Inputs) model.Result {
	if !finite(n) {
		return model.Fail(errNonFinite)
	}
	rate, hasDropout := dropout(in)

	ratio, ok := in.Num("allocationRatio")
	if ok && ratio > 0 && ratio != 1 {
		alloc, ok := ApplyAllocationRatio(n, ratio)
		if !ok {
			return model.Fail(errNonFinite)
		}
		m := model.Multi{
			Value:           alloc.N1,
			Value2:          alloc.N2,
			Total:           alloc.Total,
			Label:           labelPerGroup,
			Label1:          labelGroup1,
			Label2:          labelGroup2,
			AllocationRatio: alloc.Ratio,
		}
		if hasDropout {
			if m.Adjusted, ok = adjustMulti(m.Value, m.Value2, rate); !ok {
				return model.Fail(errNonFinite)
			}
		}
		return model.MultiOf(m)
	}

	size, ok := sizeOf(n)
	if !ok {
		return model.Fail(errNonFinite)
	}
	return single(size, labelPerGroup, in)
}

// single builds a Single result, attaching attrition when supplied.
func single(size int, label string, in model.Inputs) model.Result {
	s := model.Single{Value: size, Label: label}
	if rate, ok := dropout(in); ok {
		adj, ok := AdjustForAttrition(size, rate)
		if !ok {
			return model.Fail(errNonFinite)
		}
		s.Adjusted = &model.SingleAdjusted{Value: adj, DropoutRate: rate}
	}
	return model.SingleOf(s)
}

func adjustMulti(v1, v2 int, rate float64) (*model.MultiAdjusted, bool) {
	a1, ok1 := AdjustForAttrition(v1, rate)
	a2, ok2 := AdjustForAttrition(v2, rate)
	if !ok1 || !ok2 {
		return nil, false
	}
	return &model.MultiAdjusted{Value: a1, Value2: a2, Total: a1 + a2, DropoutRate: rate}, true
}

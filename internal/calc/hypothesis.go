package calc

import (
	"math"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// TestProportion sizes a one-sample test of p0 against the alternative pa.
// A dropoutRate input attaches an attrition-adjusted size.
func (e *Engine) TestProportion(in model.Inputs) model.Result {
	p0, has0 := in.Num("p0")
	pa, hasA := in.Num("pa")
	if !in.Truthy("alpha") || !in.Truthy("beta") || !has0 || !hasA || !inUnit(p0) || !inUnit(pa) || p0 == pa {
		return model.Fail("Please provide valid inputs. Proportions must be between 0 and 1 and different from each other.")
	}
	za, zb := e.zAlpha(in), e.zBeta(in)
	num := za*math.Sqrt(p0*(1-p0)) + zb*math.Sqrt(pa*(1-pa))
	n, ok := sizeOf(num * num / ((p0 - pa) * (p0 - pa)))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return single(n, "", in)
}

// Test2Proportions sizes a comparison of two independent proportions using
// the pooled proportion under the null.
func (e *Engine) Test2Proportions(in model.Inputs) model.Result {
	p1, has1 := in.Num("p1")
	p2, has2 := in.Num("p2")
	if !in.Truthy("alpha") || !in.Truthy("beta") || !has1 || !has2 || !inUnit(p1) || !inUnit(p2) || p1 == p2 {
		return model.Fail("Please provide valid inputs. Proportions must be between 0 and 1 and different from each other.")
	}
	za, zb := e.zAlpha(in), e.zBeta(in)
	pBar := (p1 + p2) / 2
	num := za*math.Sqrt(2*pBar*(1-pBar)) + zb*math.Sqrt(p1*(1-p1)+p2*(1-p2))
	return twoGroup(num*num/((p1-p2)*(p1-p2)), in)
}

// Test2Means sizes a comparison of two independent means.
func (e *Engine) Test2Means(in model.Inputs) model.Result {
	mu1, has1 := in.Num("mu1")
	mu2, has2 := in.Num("mu2")
	sd1, _ := in.Num("sd1")
	sd2, _ := in.Num("sd2")
	if !in.Truthy("alpha") || !in.Truthy("beta") || !has1 || !has2 ||
		!in.Truthy("sd1") || !in.Truthy("sd2") || sd1 <= 0 || sd2 <= 0 || mu1 == mu2 {
		return model.Fail("Please provide valid inputs. Standard deviations must be positive and means must be different.")
	}
	za, zb := e.zAlpha(in), e.zBeta(in)
	n := (sd1*sd1 + sd2*sd2) * (za + zb) * (za + zb) / ((mu1 - mu2) * (mu1 - mu2))
	return twoGroup(n, in)
}

// Test2Correlations sizes a comparison of two independent correlations via
// the difference of their Fisher transforms.
func (e *Engine) Test2Correlations(in model.Inputs) model.Result {
	r1, has1 := in.Num("r1")
	r2, has2 := in.Num("r2")
	if !in.Truthy("alpha") || !in.Truthy("beta") || !has1 || !has2 || !inCorrelation(r1) || !inCorrelation(r2) || r1 == r2 {
		return model.Fail("Please provide valid inputs. Correlations must be between -1 and 1 and different from each other.")
	}
	za, zb := e.zAlpha(in), e.zBeta(in)
	ratio := (za + zb) / (fisherZ(r1) - fisherZ(r2))
	return twoGroup(ratio*ratio+3, in)
}

// Test2Rates computes the number of events (not subjects) needed to compare
// two incidence rates, with k the group-2 to group-1 allocation ratio.
// Group 2 needs ceil(k × group-1 events).
func (e *Engine) Test2Rates(in model.Inputs) model.Result {
	l1, _ := in.Num("lambda1")
	l2, _ := in.Num("lambda2")
	k, _ := in.Num("k")
	if !in.Truthy("alpha") || !in.Truthy("beta") || !in.Truthy("lambda1") || !in.Truthy("lambda2") || !in.Truthy("k") ||
		l1 <= 0 || l2 <= 0 || k <= 0 || l1 == l2 {
		return model.Fail("Please provide valid inputs. Rates and allocation ratio must be positive, and rates must be different.")
	}
	za, zb := e.zAlpha(in), e.zBeta(in)
	lBar := (k*l1 + l2) / (k + 1)
	num := za*math.Sqrt((k+1)/k*lBar) + zb*math.Sqrt(l1+l2/k)
	e1, ok := sizeOf(num * num / ((l1 - l2) * (l1 - l2)))
	if !ok {
		return model.Fail(errNonFinite)
	}
	e2, ok := sizeOf(k * float64(e1))
	if !ok {
		return model.Fail(errNonFinite)
	}
	m := model.Multi{
		Value:  e1,
		Value2: e2,
		Total:  e1 + e2,
		Label:  labelEvents,
		Label1: labelEvents1,
		Label2: labelEvents2,
		Note:   noteEvents,
	}
	if rate, ok := dropout(in); ok {
		if m.Adjusted, ok = adjustMulti(e1, e2, rate); !ok {
			return model.Fail(errNonFinite)
		}
	}
	return model.MultiOf(m)
}

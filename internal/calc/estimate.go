package calc

import (
	"math"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// EstimateProportion sizes a survey estimating one proportion p within an
// absolute margin d: n = Z²·p·(1−p) / d².
func (e *Engine) EstimateProportion(in model.Inputs) model.Result {
	p, hasP := in.Num("p")
	d, _ := in.Num("d")
	if !in.Truthy("alpha") || !hasP || !in.Truthy("d") || !inUnit(p) || d <= 0 {
		return model.Fail("Please provide valid inputs. Proportion must be between 0 and 1, and margin of error must be positive.")
	}
	z := e.zConfidence(in)
	n, ok := sizeOf(z * z * p * (1 - p) / (d * d))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return model.SingleOf(model.Single{Value: n})
}

// EstimateMean sizes a study estimating a mean within margin d given a
// standard deviation: n = Z²·σ² / d².
func (e *Engine) EstimateMean(in model.Inputs) model.Result {
	sd, _ := in.Num("sd")
	d, _ := in.Num("d")
	if !in.Truthy("alpha") || !in.Truthy("sd") || !in.Truthy("d") || sd <= 0 || d <= 0 {
		return model.Fail("Please provide valid inputs. Standard deviation and margin of error must be positive.")
	}
	z := e.zConfidence(in)
	n, ok := sizeOf(z * z * sd * sd / (d * d))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return model.SingleOf(model.Single{Value: n})
}

// EstimateDiff2Proportions sizes each group for estimating p1 − p2 within
// margin d.
func (e *Engine) EstimateDiff2Proportions(in model.Inputs) model.Result {
	p1, has1 := in.Num("p1")
	p2, has2 := in.Num("p2")
	d, _ := in.Num("d")
	if !in.Truthy("alpha") || !has1 || !has2 || !in.Truthy("d") || !inUnit(p1) || !inUnit(p2) || d <= 0 {
		return model.Fail("Please provide valid inputs. Proportions must be between 0 and 1.")
	}
	z := e.zConfidence(in)
	n, ok := sizeOf(z * z * (p1*(1-p1) + p2*(1-p2)) / (d * d))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return model.SingleOf(model.Single{Value: n, Label: labelPerGroup})
}

// EstimateOddsRatio sizes each group for estimating an odds ratio to within
// relative precision epsilon. p1 is derived from the odds ratio and p2.
func (e *Engine) EstimateOddsRatio(in model.Inputs) model.Result {
	p2, has2 := in.Num("p2")
	or, _ := in.Num("or")
	eps, hasEps := in.Num("epsilon")
	if !in.Truthy("alpha") || !has2 || !in.Truthy("or") || !hasEps || !inUnit(p2) || or <= 0 || eps <= 0 || eps >= 1 {
		return model.Fail("Please provide valid inputs. Proportion must be between 0 and 1, OR must be positive.")
	}
	p1 := or * p2 / (1 - p2 + or*p2)
	if p1 > 1 {
		return model.Fail("The calculated p1 exceeds 1. Please adjust your OR or p2 values.")
	}
	z := e.zConfidence(in)
	l := math.Log(1 - eps)
	n, ok := sizeOf(z * z / (l * l) * (1/(p1*(1-p1)) + 1/(p2*(1-p2))))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return model.SingleOf(model.Single{Value: n, Label: labelPerGroup})
}

// EstimateRelativeRisk sizes each group for estimating a relative risk to
// within relative precision epsilon. p1 = p2·RR.
func (e *Engine) EstimateRelativeRisk(in model.Inputs) model.Result {
	p2, has2 := in.Num("p2")
	rr, _ := in.Num("rr")
	eps, hasEps := in.Num("epsilon")
	if !in.Truthy("alpha") || !has2 || !in.Truthy("rr") || !hasEps || !inUnit(p2) || rr <= 0 || eps <= 0 || eps >= 1 {
		return model.Fail("Please provide valid inputs. Proportion must be between 0 and 1, RR must be positive.")
	}
	p1 := p2 * rr
	if p1 > 1 {
		return model.Fail("The calculated p1 exceeds 1. Please adjust your RR or p2 values.")
	}
	z := e.zConfidence(in)
	l := math.Log(1 - eps)
	n, ok := sizeOf(z * z / (l * l) * ((1-p1)/p1 + (1-p2)/p2))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return model.SingleOf(model.Single{Value: n, Label: labelPerGroup})
}

// EstimateCorrelation sizes a study estimating a correlation r using the
// Fisher transform: n = 3 + (Z / Z_r)².
func (e *Engine) EstimateCorrelation(in model.Inputs) model.Result {
	r, hasR := in.Num("r")
	if !in.Truthy("alpha") || !hasR || !inCorrelation(r) || r == 0 {
		return model.Fail("Please provide valid inputs. Correlation must be between -1 and 1 (and not 0).")
	}
	z := e.zConfidence(in)
	zr := fisherZ(r)
	n, ok := sizeOf(3 + (z/zr)*(z/zr))
	if !ok {
		return model.Fail(errNonFinite)
	}
	return model.SingleOf(model.Single{Value: n})
}

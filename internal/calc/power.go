package calc

import (
	"math"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// MaxPower caps every post-hoc power estimate.
const MaxPower = 0.99

// approxPower maps a surrogate z_beta to power with the closed-form normal
// CDF approximation 0.5·(1 + sign(z)·(1 − exp(−2z²/π))), clamped to
// [0, MaxPower].
func approxPower(zBeta float64) float64 {
	p := 0.5 * (1 + sign(zBeta)*(1-math.Exp(-2*zBeta*zBeta/math.Pi)))
	return math.Max(0, math.Min(MaxPower, p))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func powerResult(effect, se, zCritical float64) model.Result {
	zBeta := effect/se - zCritical
	// An infinite z (zero standard error) saturates at MaxPower.
	if math.IsNaN(zBeta) {
		return model.Fail(errNonFinite)
	}
	p := approxPower(zBeta)
	return model.PowerOf(model.Power{
		Value:        math.Round(p*100) / 100,
		Power:        p,
		PowerPercent: int(math.Round(p * 100)),
	})
}

// PowerTestProportion estimates the power of a one-sample proportion test
// with a fixed sample size n.
func (e *Engine) PowerTestProportion(in model.Inputs) model.Result {
	n, _ := in.Num("n")
	p0, has0 := in.Num("p0")
	pa, hasA := in.Num("pa")
	if !in.Truthy("alpha") || !in.Truthy("n") || !has0 || !hasA || !inUnit(p0) || !inUnit(pa) || p0 == pa || n <= 0 {
		return model.Fail("Please provide valid inputs.")
	}
	se := math.Sqrt(p0*(1-p0)/n + pa*(1-pa)/n)
	return powerResult(math.Abs(p0-pa), se, e.zAlpha(in))
}

// PowerTest2Proportions estimates the power of a two-proportion test with n
// subjects per group.
func (e *Engine) PowerTest2Proportions(in model.Inputs) model.Result {
	n, _ := in.Num("n")
	p1, has1 := in.Num("p1")
	p2, has2 := in.Num("p2")
	if !in.Truthy("alpha") || !in.Truthy("n") || !has1 || !has2 || !inUnit(p1) || !inUnit(p2) || p1 == p2 || n <= 0 {
		return model.Fail("Please provide valid inputs.")
	}
	pBar := (p1 + p2) / 2
	se := math.Sqrt(pBar * (1 - pBar) * (2 / n))
	return powerResult(math.Abs(p1-p2), se, e.zAlpha(in))
}

// PowerTest2Means estimates the power of a two-mean test with n subjects per
// group.
func (e *Engine) PowerTest2Means(in model.Inputs) model.Result {
	n, _ := in.Num("n")
	mu1, has1 := in.Num("mu1")
	mu2, has2 := in.Num("mu2")
	sd1, _ := in.Num("sd1")
	sd2, _ := in.Num("sd2")
	if !in.Truthy("alpha") || !in.Truthy("n") || !has1 || !has2 || !in.Truthy("sd1") || !in.Truthy("sd2") ||
		sd1 <= 0 || sd2 <= 0 || mu1 == mu2 || n <= 0 {
		return model.Fail("Please provide valid inputs.")
	}
	pooled := math.Sqrt((sd1*sd1 + sd2*sd2) / 2)
	se := pooled * math.Sqrt(2/n)
	return powerResult(math.Abs(mu1-mu2), se, e.zAlpha(in))
}

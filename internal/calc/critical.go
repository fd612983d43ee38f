// Package calc implements the closed-form sample size and power calculators,
// the critical-value tables they rely on, and the attrition and allocation
// adjustments applied to their results.
package calc

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCritical is returned for any alpha/tail combination missing from
// the table. It is the two-tailed 0.05 quantile: a conservative stand-in,
// not an interpolation.
const DefaultCritical = 1.96

// DefaultPowerQuantile is returned for any power level missing from the
// table (the 80% power quantile).
const DefaultPowerQuantile = 0.84

type tailKey struct {
	alpha     float64
	twoTailed bool
}

// criticalTable maps (alpha, tail mode) to the standard-normal quantile.
var criticalTable = map[tailKey]float64{
	{0.10, true}:  1.645,
	{0.05, true}:  1.96,
	{0.01, true}:  2.576,
	{0.20, false}: 0.84,
	{0.10, false}: 1.28,
	{0.05, false}: 1.645,
	{0.01, false}: 2.326,
}

// powerTable maps power (1 - beta) to its one-tailed quantile.
var powerTable = map[float64]float64{
	0.80: 0.84,
	0.90: 1.28,
	0.95: 1.645,
}

// CriticalValue returns the standard-normal quantile for alpha under the
// given tail mode. Values outside the table fall back to DefaultCritical.
func CriticalValue(alpha float64, twoTailed bool) float64 {
	if z, ok := criticalTable[tailKey{alpha, twoTailed}]; ok {
		return z
	}
	return DefaultCritical
}

// PowerQuantile returns the one-tailed quantile for power 1 - beta. Values
// outside the table fall back to DefaultPowerQuantile.
func PowerQuantile(beta float64) float64 {
	// 1 - beta is rounded so that e.g. beta=0.2 lands on the 0.80 key.
	power := math.Round((1-beta)*1e10) / 1e10
	if z, ok := powerTable[power]; ok {
		return z
	}
	return DefaultPowerQuantile
}

// Quantiles supplies the critical values used by the calculators.
type Quantiles interface {
	Critical(alpha float64, twoTailed bool) float64
	Power(beta float64) float64
}

// TableQuantiles is the default Quantiles: the enumerated tables above with
// their fixed fallbacks.
type TableQuantiles struct{}

func (TableQuantiles) Critical(alpha float64, twoTailed bool) float64 {
	return CriticalValue(alpha, twoTailed)
}

func (TableQuantiles) Power(beta float64) float64 {
	return PowerQuantile(beta)
}

// ExactQuantiles computes quantiles from the inverse normal CDF. Inputs
// outside (0, 1) use the table policy.
type ExactQuantiles struct{}

func (ExactQuantiles) Critical(alpha float64, twoTailed bool) float64 {
	if !(alpha > 0 && alpha < 1) {
		return CriticalValue(alpha, twoTailed)
	}
	p := 1 - alpha
	if twoTailed {
		p = 1 - alpha/2
	}
	return distuv.UnitNormal.Quantile(p)
}

func (ExactQuantiles) Power(beta float64) float64 {
	if !(beta > 0 && beta < 1) {
		return PowerQuantile(beta)
	}
	return distuv.UnitNormal.Quantile(1 - beta)
}

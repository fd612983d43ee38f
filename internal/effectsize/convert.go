// Package effectsize converts reported test statistics into standardized
// effect sizes and grades them against field-specific benchmarks.
package effectsize

import "math"

// FromT returns Cohen's d from an independent-samples t statistic.
func FromT(t, n1, n2 float64) float64 {
	return t * math.Sqrt(1/n1+1/n2)
}

// FromF returns a d-style effect size from a one-way ANOVA F statistic via
// eta squared.
func FromF(f, df1, df2 float64) float64 {
	eta2 := df1 * f / (df1*f + df2)
	return math.Sqrt(eta2 / (1 - eta2))
}

// FromChiSquare returns Cramér's V. For df <= 1 (a 2x2 table) this is phi.
func FromChiSquare(chi2, n float64, df int) float64 {
	m := 1.0
	if df > 1 {
		m = float64(df - 1)
	}
	return math.Sqrt(chi2 / (n * m))
}

// FromPValue is a rough approximation of d from a p-value using
// z = sqrt(-2 ln p) and the average group size. It should only be used when
// no test statistic is available.
func FromPValue(p, n1, n2 float64, twoTailed bool) float64 {
	if twoTailed {
		p /= 2
	}
	z := math.Sqrt(-2 * math.Log(p))
	pooled := (n1 + n2) / 2
	return z * math.Sqrt(2/pooled)
}

package effectsize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromT(t *testing.T) {
	t.Parallel()

	// 2.5 × √(1/50 + 1/50) = 0.5
	assert.InDelta(t, 0.5, FromT(2.5, 50, 50), 1e-9)
	assert.InDelta(t, -0.5, FromT(-2.5, 50, 50), 1e-9)
}

func TestFromF(t *testing.T) {
	t.Parallel()

	// η² = 4/(4+36) = 0.1, √(0.1/0.9) = 0.3333
	assert.InDelta(t, 1.0/3, FromF(4, 1, 36), 1e-9)
	assert.Equal(t, 0.0, FromF(0, 2, 40))
}

func TestFromChiSquare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		chi2 float64
		n    float64
		df   int
		want float64
	}{
		{"phi for one df", 10, 100, 1, math.Sqrt(0.1)},
		{"zero df treated as phi", 10, 100, 0, math.Sqrt(0.1)},
		{"two df", 10, 100, 2, math.Sqrt(0.1)},
		{"three df", 10, 100, 3, math.Sqrt(0.05)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, FromChiSquare(tt.chi2, tt.n, tt.df), 1e-9)
		})
	}
}

func TestFromPValue(t *testing.T) {
	t.Parallel()

	two := FromPValue(0.05, 50, 50, true)
	one := FromPValue(0.05, 50, 50, false)
	assert.InDelta(t, math.Sqrt(-2*math.Log(0.025))*math.Sqrt(2.0/50), two, 1e-9)
	assert.Greater(t, two, one)
}

func TestInterpret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		typ   string
		field string
		want  Magnitude
	}{
		{"negligible d", 0.1, CohensD, FieldDefault, Negligible},
		{"small d at bound", 0.2, CohensD, FieldDefault, Small},
		{"medium d", 0.6, CohensD, FieldPsychology, Medium},
		{"large negative d", -0.9, CohensD, FieldEducation, Large},
		{"correlation medium", 0.3, Correlation, FieldPsychology, Medium},
		{"odds ratio large", 4.2, OddsRatio, FieldMedicine, Large},
		{"odds ratio small", 1.6, OddsRatio, FieldMedicine, Small},
		{"unknown field uses default", 0.35, Correlation, "astronomy", Medium},
		{"unknown type uses cohensD", 0.35, "eta", FieldDefault, Small},
		{"education has no correlation", 0.35, Correlation, FieldEducation, Small},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Interpret(tt.value, tt.typ, tt.field))
		})
	}
}

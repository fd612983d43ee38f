package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputs_Num(t *testing.T) {
	t.Parallel()

	in := Inputs{
		"f":    0.5,
		"i":    3,
		"i64":  int64(7),
		"num":  json.Number("1.25"),
		"nan":  math.NaN(),
		"nil":  nil,
		"str":  "0.4",
		"bool": true,
	}

	tests := []struct {
		key  string
		want float64
		ok   bool
	}{
		{"f", 0.5, true},
		{"i", 3, true},
		{"i64", 7, true},
		{"num", 1.25, true},
		{"nan", 0, false},
		{"nil", 0, false},
		{"str", 0, false},
		{"bool", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := in.Num(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.InDelta(t, tt.want, got, 1e-12, tt.key)
	}
}

func TestInputs_TruthyAndFlag(t *testing.T) {
	t.Parallel()

	in := Inputs{"zero": 0.0, "one": 1.0, "yes": true, "no": false}

	assert.False(t, in.Truthy("zero"))
	assert.True(t, in.Truthy("one"))
	assert.False(t, in.Truthy("missing"))

	assert.True(t, in.Flag("yes", false))
	assert.False(t, in.Flag("no", true))
	assert.True(t, in.Flag("one", false))
	assert.False(t, in.Flag("zero", true))
	assert.True(t, in.Flag("missing", true))
}

func TestInputs_WithDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := Inputs{"p": 0.5}
	next := base.With("p", 0.1)

	assert.Equal(t, 0.5, base["p"])
	assert.Equal(t, 0.1, next["p"])
}

func TestResult_Shape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ShapeNone, Fail("bad").Shape())
	assert.Equal(t, ShapeSingle, SingleOf(Single{Value: 1}).Shape())
	assert.Equal(t, ShapeMulti, MultiOf(Multi{Value: 1, Value2: 2, Total: 3}).Shape())
	assert.Equal(t, ShapePower, PowerOf(Power{Value: 0.5}).Shape())
	assert.False(t, Fail("bad").OK())
}

func TestResult_FlatError(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Fail("Please provide valid inputs."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"error":"Please provide valid inputs."}`, string(data))
}

func TestResult_FlatMultiAdjusted(t *testing.T) {
	t.Parallel()

	r := MultiOf(Multi{
		Value: 97, Value2: 194, Total: 291,
		Label: "Required Sample Size Per Group", Label1: "Group 1 (n₁)", Label2: "Group 2 (n₂)",
		AllocationRatio: 2,
		Adjusted:        &MultiAdjusted{Value: 108, Value2: 216, Total: 324, DropoutRate: 0.1},
	})

	f := r.Flat()
	require.NotNil(t, f.Value)
	assert.Equal(t, 97.0, *f.Value)
	assert.Equal(t, 194, *f.Value2)
	assert.Equal(t, 291, *f.Total)
	assert.Equal(t, 108, *f.ValueAdjusted)
	assert.Equal(t, 216, *f.Value2Adjusted)
	assert.Equal(t, 324, *f.TotalAdjusted)
	assert.True(t, f.IsMulti)
	assert.Nil(t, f.Error)

	adj, ok := r.AdjustedValue()
	assert.True(t, ok)
	assert.Equal(t, 108.0, adj)
}

func TestResult_FlatPower(t *testing.T) {
	t.Parallel()

	f := PowerOf(Power{Value: 0.81, Power: 0.8123, PowerPercent: 81}).Flat()
	assert.Equal(t, 0.81, *f.Value)
	assert.Equal(t, 0.8123, *f.Power)
	assert.Equal(t, 81, *f.PowerPercent)
	assert.Nil(t, f.Value2)
}

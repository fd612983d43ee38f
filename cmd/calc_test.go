package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/advisory"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

func TestParseSets(t *testing.T) {
	base := model.Inputs{"alpha": 0.05}
	in, err := parseSets(base, []string{"p1=0.6", " p2 = 0.4 ", "twoTailed=false", "k=1"})
	require.NoError(t, err)

	assert.Equal(t, model.Inputs{"alpha": 0.05, "p1": 0.6, "p2": 0.4, "twoTailed": false, "k": 1.0}, in)
	assert.Len(t, base, 1, "base must not be modified")
}

func TestParseSets_Invalid(t *testing.T) {
	_, err := parseSets(nil, []string{"alpha"})
	assert.ErrorContains(t, err, "want name=value")

	_, err = parseSets(nil, []string{"=0.1"})
	assert.Error(t, err)

	_, err = parseSets(nil, []string{"alpha=abc"})
	assert.ErrorContains(t, err, "invalid value for alpha")

	for _, raw := range []string{"Inf", "+Inf", "-inf", "NaN", "infinity"} {
		_, err = parseSets(nil, []string{"dropoutRate=" + raw})
		assert.ErrorContains(t, err, "not a finite number", raw)
	}
}

func TestRunCalc_JSONRejectsInfinity(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyTest2Proportions, "", calcOptions{
		sets:   []string{"alpha=0.05", "beta=0.2", "p1=0.6", "p2=0.4", "allocationRatio=Inf"},
		asJSON: true,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid value for allocationRatio")
	assert.Empty(t, buf.String())
}

func TestRunCalc_Text(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyTest2Proportions, "", calcOptions{
		sets: []string{"alpha=0.05", "beta=0.2", "p1=0.6", "p2=0.4", "dropoutRate=0.2"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Required Sample Size Per Group: 97")
	assert.Contains(t, out, "Adjusted for 20% dropout: 122")
	assert.Contains(t, out, "No advisories.")
}

func TestRunCalc_Warnings(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyTest2Proportions, "", calcOptions{
		sets: []string{"alpha=0.05", "beta=0.6", "p1=0.6", "p2=0.4", "dropoutRate=0.6", "twoTailed=false"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[warning] Power is 40%")
	assert.Contains(t, out, "[warning] Dropout rate of 60% is very high")
	assert.Contains(t, out, "[info] One-tailed test")
	assert.NotContains(t, out, "No advisories.")
}

func TestRunCalc_Multi(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyTest2Proportions, "", calcOptions{
		sets: []string{"alpha=0.05", "beta=0.2", "p1=0.6", "p2=0.4", "allocationRatio=2"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Group 1 (n₁): 97")
	assert.Contains(t, out, "Group 2 (n₂): 194")
	assert.Contains(t, out, "Total: 291")
	assert.Contains(t, out, "Allocation ratio: 2")
}

func TestRunCalc_Defaults(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyEstimateProportion, "", calcOptions{defaults: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Required Sample Size: 385")
	assert.Contains(t, buf.String(), "No advisories.")
}

func TestRunCalc_ErrorResult(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyEstimateMean, "", calcOptions{sets: []string{"alpha=0.05"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "error: Please provide valid inputs.")
}

func TestRunCalc_InvalidFieldHint(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyTestProportion, "", calcOptions{
		sets: []string{"alpha=0.05", "beta=0.2", "p0=1.2", "pa=0.6"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[invalid] p0: Proportion must be between 0 and 1")
	assert.Contains(t, out, "[hint] p0: Use 0.5 if unknown (most conservative estimate)")
	assert.NotContains(t, out, "No advisories.")

	buf.Reset()
	err = runCalc(&buf, calc.Default, calc.KeyTestProportion, "", calcOptions{
		sets:   []string{"alpha=0.05", "beta=0.2", "p0=1.2", "pa=0.6"},
		asJSON: true,
	})
	require.NoError(t, err)

	var got struct {
		InputAdvisory advisory.Report `json:"inputAdvisory"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []advisory.Hint{
		{Field: "p0", Suggestion: "Use 0.5 if unknown (most conservative estimate)"},
	}, got.InputAdvisory.Hints)
}

func TestRunCalc_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, calc.KeyPowerTest2Proportions, calc.GroupPower, calcOptions{
		defaults: true,
		asJSON:   true,
	})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, calc.KeyPowerTest2Proportions, out["design"])
	result := out["result"].(map[string]any)
	assert.Contains(t, result, "powerPercent")
}

func TestRunCalc_UnknownDesign(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, calc.Default, "nope", "", calcOptions{})
	assert.ErrorContains(t, err, "unknown design")

	// power only accepts post-hoc designs.
	err = runCalc(&buf, calc.Default, calc.KeyTest2Means, calc.GroupPower, calcOptions{})
	assert.ErrorContains(t, err, "unknown design")
}

func TestPrintResult_Power(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, model.PowerOf(model.Power{Value: 0.69, Power: 0.6912, PowerPercent: 69}))
	assert.Equal(t, "Power: 69% (0.69)\n", buf.String())
}

func TestPrintResult_Events(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, calc.Test2Rates(model.Inputs{"alpha": 0.05, "beta": 0.2, "lambda1": 0.1, "lambda2": 0.2, "k": 1}))
	assert.Contains(t, buf.String(), "Required Number of Events")
	assert.Contains(t, buf.String(), "not subjects")
}

func TestDesignList(t *testing.T) {
	var buf bytes.Buffer
	formatDesignList(&buf, filterDesigns(calc.Registry(), calc.GroupRates))

	out := buf.String()
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "test2Rates")
	assert.Contains(t, out, "lambda1")
	assert.NotContains(t, out, "estimateMean")

	assert.Len(t, filterDesigns(calc.Registry(), ""), 14)
}

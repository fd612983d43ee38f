// Package advisory flags statistically questionable inputs and results.
// Nothing here blocks a calculation; callers render the report next to the
// result.
package advisory

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// Warning types.
const (
	LowPower          = "low_power"
	ModeratePower     = "moderate_power"
	LargeSample       = "large_sample"
	SmallSample       = "small_sample"
	SmallEffect       = "small_effect"
	ExtremeProportion = "extreme_proportion"
	TinyEffect        = "tiny_effect"
	HugeEffect        = "huge_effect"
	HighAttrition     = "high_attrition"
	OneTailed         = "one_tailed"
	ExtremelyLarge    = "extremely_large"
	TooSmall          = "too_small"
)

// Report is the outcome of CheckInputs. Hints carry typical values for the
// inputs named in Errors.
type Report struct {
	Errors   []string        `json:"errors"`
	Warnings []model.Warning `json:"warnings"`
	Hints    []Hint          `json:"hints"`
}

// Hint suggests typical values for an input that failed validation.
type Hint struct {
	Field      string `json:"field"`
	Suggestion string `json:"suggestion"`
}

// ResultReport is the outcome of CheckResult.
type ResultReport struct {
	Warnings []model.Warning `json:"warnings"`
	Valid    bool            `json:"isValid"`
}

var printer = message.NewPrinter(language.English)

// grouped renders n with thousands separators.
func grouped(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprintf("%v", n)
}

func warn(typ string, sev model.Severity, format string, args ...any) model.Warning {
	return model.Warning{Type: typ, Message: fmt.Sprintf(format, args...), Severity: sev}
}

func outsideUnit(v float64) bool {
	return v <= 0 || v >= 1
}

// CheckInputs reviews the inputs for the design registered under key.
func CheckInputs(in model.Inputs, key string) Report {
	rep := Report{Errors: []string{}, Warnings: []model.Warning{}, Hints: []Hint{}}

	alpha, _ := in.Num("alpha")
	beta, _ := in.Num("beta")
	power, _ := in.Num("power")
	if in.Truthy("alpha") && outsideUnit(alpha) {
		rep.Errors = append(rep.Errors, "Alpha must be between 0 and 1")
		rep.Hints = append(rep.Hints, Hint{Field: "alpha", Suggestion: Suggestion(FieldAlpha)})
	}
	if in.Truthy("beta") && outsideUnit(beta) {
		rep.Errors = append(rep.Errors, "Beta must be between 0 and 1")
	}
	if in.Truthy("power") && outsideUnit(power) {
		rep.Errors = append(rep.Errors, "Power must be between 0 and 1")
	}
	errs, hints := fieldErrors(in, key)
	rep.Errors = append(rep.Errors, errs...)
	rep.Hints = append(rep.Hints, hints...)

	if in.Truthy("beta") {
		pw := 1 - beta
		switch {
		case pw < 0.5:
			rep.Warnings = append(rep.Warnings, warn(LowPower, model.SeverityWarning,
				"Power is %.0f%%. Power below 50%% is typically insufficient.", pw*100))
		case pw < 0.8:
			rep.Warnings = append(rep.Warnings, warn(ModeratePower, model.SeverityInfo,
				"Power is %.0f%%. Consider increasing to 80%% or higher for adequate statistical power.", pw*100))
		}
	}

	if in.Truthy("n") {
		n, _ := in.Num("n")
		if n > 10000 {
			rep.Warnings = append(rep.Warnings, model.Warning{
				Type:     LargeSample,
				Message:  "Sample size of " + grouped(n) + " may be impractical. Consider if this is feasible.",
				Severity: model.SeverityWarning,
			})
		}
		if n < 10 {
			rep.Warnings = append(rep.Warnings, warn(SmallSample, model.SeverityWarning,
				"Sample size of %v is very small. Statistical assumptions may not hold.", n))
		}
	}

	p1, has1 := in.Num("p1")
	p2, has2 := in.Num("p2")
	if has1 && has2 {
		diff := math.Abs(p1 - p2)
		if diff < 0.01 {
			rep.Warnings = append(rep.Warnings, warn(SmallEffect, model.SeverityInfo,
				"Difference between proportions (%.1f%%) is very small. Large sample size may be required.", diff*100))
		}
		if p1 < 0.05 || p2 < 0.05 || p1 > 0.95 || p2 > 0.95 {
			rep.Warnings = append(rep.Warnings, warn(ExtremeProportion, model.SeverityInfo,
				"Proportions near 0 or 1 may require special consideration (e.g., exact tests)."))
		}
	}

	mu1, hasMu1 := in.Num("mu1")
	mu2, hasMu2 := in.Num("mu2")
	if hasMu1 && hasMu2 && in.Truthy("sd1") && in.Truthy("sd2") {
		sd1, _ := in.Num("sd1")
		sd2, _ := in.Num("sd2")
		d := math.Abs(mu1-mu2) / math.Sqrt((sd1*sd1+sd2*sd2)/2)
		if d < 0.1 {
			rep.Warnings = append(rep.Warnings, warn(TinyEffect, model.SeverityWarning,
				"Effect size (Cohen's d = %.2f) is very small. This may require an extremely large sample.", d))
		}
		if d > 2 {
			rep.Warnings = append(rep.Warnings, warn(HugeEffect, model.SeverityInfo,
				"Effect size (Cohen's d = %.2f) is very large. Small sample may suffice, but verify assumptions.", d))
		}
	}

	if in.Truthy("dropoutRate") {
		rate, _ := in.Num("dropoutRate")
		if rate > 0.5 {
			rep.Warnings = append(rep.Warnings, warn(HighAttrition, model.SeverityWarning,
				"Dropout rate of %.0f%% is very high. Consider study design improvements.", rate*100))
		}
	}

	if v, ok := in["twoTailed"].(bool); ok && !v {
		rep.Warnings = append(rep.Warnings, warn(OneTailed, model.SeverityInfo,
			"One-tailed test assumes directional hypothesis. Ensure this is appropriate for your research question."))
	}
	return rep
}

// fieldErrors runs the proportion validator over every probability-bounded
// proportion input the design declares, pairing each failure with a hint.
func fieldErrors(in model.Inputs, key string) ([]string, []Hint) {
	d, ok := calc.Lookup(key)
	if !ok {
		return nil, nil
	}
	var (
		errs  []string
		hints []Hint
	)
	for _, f := range d.Fields {
		if !isProportion(f) {
			continue
		}
		v, ok := in.Num(f.Name)
		if !ok {
			continue
		}
		if msg := ValidateField(FieldProportion, v); msg != "" {
			errs = append(errs, f.Name+": "+msg)
			hints = append(hints, Hint{Field: f.Name, Suggestion: Suggestion(FieldProportion)})
		}
	}
	return errs, hints
}

func isProportion(f calc.Field) bool {
	if f.Min == nil || f.Max == nil || *f.Min != 0 || *f.Max != 1 {
		return false
	}
	switch f.Name {
	case "p", "p0", "pa", "p1", "p2":
		return true
	}
	return false
}

// CheckResult reviews a calculated result. Error results are reported as
// invalid with no warnings.
func CheckResult(r model.Result) ResultReport {
	rep := ResultReport{Warnings: []model.Warning{}}
	if !r.OK() {
		return rep
	}
	rep.Valid = true

	v, _ := r.Primary()
	if v == 0 || r.Shape() == model.ShapePower {
		return rep
	}
	if v > 50000 {
		rep.Warnings = append(rep.Warnings, warn(ExtremelyLarge, model.SeverityWarning,
			"Calculated sample size is extremely large. Verify inputs and consider if this is practical."))
	}
	if v < 3 {
		rep.Warnings = append(rep.Warnings, warn(TooSmall, model.SeverityWarning,
			"Calculated sample size is very small. Statistical assumptions may not hold."))
	}
	return rep
}

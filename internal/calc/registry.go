package calc

import "github.com/m-aljasem/Sample-Size-Calculator/internal/model"

// Design keys. These are the only keys the registry advertises.
const (
	KeyEstimateProportion       = "estimateProportion"
	KeyEstimateMean             = "estimateMean"
	KeyEstimateDiff2Proportions = "estimateDiff2Proportions"
	KeyEstimateOddsRatio        = "estimateOddsRatio"
	KeyEstimateRelativeRisk     = "estimateRelativeRisk"
	KeyEstimateCorrelation      = "estimateCorrelation"
	KeyTestProportion           = "testProportion"
	KeyTest2Proportions         = "test2Proportions"
	KeyTest2Means               = "test2Means"
	KeyTest2Correlations        = "test2Correlations"
	KeyTest2Rates               = "test2Rates"
	KeyPowerTestProportion      = "powerTestProportion"
	KeyPowerTest2Proportions    = "powerTest2Proportions"
	KeyPowerTest2Means          = "powerTest2Means"
)

// Group clusters designs for display.
type Group string

const (
	GroupEstimation Group = "estimation"
	GroupHypothesis Group = "hypothesis"
	GroupRates      Group = "rates"
	GroupPower      Group = "power"
)

// Field describes one input of a design for form rendering.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Tooltip     string   `json:"tooltip"`
	Placeholder string   `json:"placeholder,omitempty"`
	Step        float64  `json:"step"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}

// Variable explains one symbol of a formula.
type Variable struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Formula is the human-readable form of a design's calculation.
type Formula struct {
	Expression string     `json:"expression"`
	Variables  []Variable `json:"variables"`
}

// Design is a registered calculator with its display metadata and example
// inputs.
type Design struct {
	Key         string       `json:"key"`
	Group       Group        `json:"group"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Usage       string       `json:"usage,omitempty"`
	Example     string       `json:"example,omitempty"`
	Fields      []Field      `json:"fields"`
	Defaults    model.Inputs `json:"defaults"`
	Formula     Formula      `json:"formula"`
	Func        Func         `json:"-"`
}

func bound(v float64) *float64 { return &v }

var (
	zero   = bound(0)
	one    = bound(1)
	negOne = bound(-1)
)

var (
	alphaField = Field{Name: "alpha", Label: "α (Alpha)", Tooltip: "Significance level (e.g., 0.05 for 95% confidence)", Placeholder: "0.05", Step: 0.01, Min: zero, Max: one}
	betaField  = Field{Name: "beta", Label: "β (Beta)", Tooltip: "Type II error rate (e.g., 0.2 for 80% power)", Placeholder: "0.2", Step: 0.01, Min: zero, Max: one}
	nField     = Field{Name: "n", Label: "n (Sample Size Per Group)", Tooltip: "The sample size already chosen or collected", Placeholder: "100", Step: 1, Min: zero}

	allocationField = Field{Name: "allocationRatio", Label: "Allocation Ratio (n₂/n₁)", Tooltip: "Ratio of group 2 size to group 1 size (1 for equal groups)", Placeholder: "1", Step: 0.1, Min: zero}
	dropoutField    = Field{Name: "dropoutRate", Label: "Dropout Rate", Tooltip: "Expected fraction of subjects lost before completion", Placeholder: "0.1", Step: 0.01, Min: zero, Max: one}
)

var (
	varN      = Variable{Symbol: "n", Name: "Sample Size"}
	varZ      = Variable{Symbol: "Z", Name: "Critical value for α"}
	varZAlpha = Variable{Symbol: "Zα", Name: "Critical value for α"}
	varZBeta  = Variable{Symbol: "Zβ", Name: "Quantile for power 1−β"}
)

func designs(e *Engine) []Design {
	return []Design{
		{
			Key:         KeyEstimateProportion,
			Group:       GroupEstimation,
			Title:       "Single Proportion",
			Description: "Calculates the sample size needed to estimate a population proportion with a specified margin of error.",
			Usage:       "Prevalence studies, surveys, or quality control where you need to know what percentage of a population has a characteristic.",
			Example:     "Estimating the prevalence of diabetes in a city.",
			Fields: []Field{
				alphaField,
				{Name: "p", Label: "p (Expected Proportion)", Tooltip: "Estimated proportion in the population (use 0.5 if unknown)", Placeholder: "0.5", Step: 0.01, Min: zero, Max: one},
				{Name: "d", Label: "d (Margin of Error)", Tooltip: "The desired precision (e.g., 0.03 for ±3%)", Placeholder: "0.05", Step: 0.01, Min: zero},
			},
			Defaults: model.Inputs{"alpha": 0.05, "p": 0.5, "d": 0.05},
			Formula: Formula{
				Expression: "n = (Z² × p × (1-p)) / d²",
				Variables:  []Variable{varN, varZ, {"p", "Expected Proportion"}, {"d", "Margin of Error"}},
			},
			Func: e.EstimateProportion,
		},
		{
			Key:         KeyEstimateMean,
			Group:       GroupEstimation,
			Title:       "Single Mean",
			Description: "Calculates the sample size needed to estimate a population mean with a specified margin of error.",
			Usage:       "Estimating the average of a continuous variable when its standard deviation is known or can be estimated.",
			Example:     "Estimating the average blood pressure in adults.",
			Fields: []Field{
				alphaField,
				{Name: "sd", Label: "σ (Standard Deviation)", Tooltip: "Estimated standard deviation of the population", Placeholder: "e.g., 15", Step: 0.01, Min: zero},
				{Name: "d", Label: "d (Margin of Error)", Tooltip: "The desired precision", Placeholder: "e.g., 2", Step: 0.01, Min: zero},
			},
			Defaults: model.Inputs{"alpha": 0.05, "sd": 15.0, "d": 2.0},
			Formula: Formula{
				Expression: "n = (Z² × σ²) / d²",
				Variables:  []Variable{varN, varZ, {"σ", "Standard Deviation"}, {"d", "Margin of Error"}},
			},
			Func: e.EstimateMean,
		},
		{
			Key:         KeyEstimateDiff2Proportions,
			Group:       GroupEstimation,
			Title:       "Difference Between 2 Proportions",
			Description: "Calculates the sample size per group to estimate the difference between two population proportions.",
			Usage:       "Estimating the difference in proportions between two independent groups with a specified precision.",
			Example:     "Comparing smoking rates between men and women.",
			Fields: []Field{
				alphaField,
				{Name: "p1", Label: "p₁ (Proportion Group 1)", Tooltip: "Expected proportion in the first group", Placeholder: "0.5", Step: 0.01, Min: zero, Max: one},
				{Name: "p2", Label: "p₂ (Proportion Group 2)", Tooltip: "Expected proportion in the second group", Placeholder: "0.4", Step: 0.01, Min: zero, Max: one},
				{Name: "d", Label: "d (Margin of Error)", Tooltip: "Desired precision for the difference", Placeholder: "0.05", Step: 0.01, Min: zero},
			},
			Defaults: model.Inputs{"alpha": 0.05, "p1": 0.5, "p2": 0.4, "d": 0.05},
			Formula: Formula{
				Expression: "n = Z² × [p₁(1-p₁) + p₂(1-p₂)] / d²",
				Variables:  []Variable{varN, varZ, {"p₁, p₂", "Group Proportions"}, {"d", "Margin of Error"}},
			},
			Func: e.EstimateDiff2Proportions,
		},
		{
			Key:         KeyEstimateOddsRatio,
			Group:       GroupEstimation,
			Title:       "Odds Ratio",
			Description: "Calculates sample size for estimating an Odds Ratio with specified relative precision.",
			Usage:       "Case-control studies estimating the strength of association between exposure and outcome.",
			Example:     "Estimating the association between smoking and lung cancer.",
			Fields: []Field{
				alphaField,
				{Name: "p2", Label: "p₂ (Proportion in Controls)", Tooltip: "Proportion of exposure in the control group", Placeholder: "0.3", Step: 0.01, Min: zero, Max: one},
				{Name: "or", Label: "OR (Expected Odds Ratio)", Tooltip: "The anticipated Odds Ratio", Placeholder: "2", Step: 0.1, Min: zero},
				{Name: "epsilon", Label: "ε (Relative Precision)", Tooltip: "e.g., 0.2 for 20% precision", Placeholder: "0.2", Step: 0.01, Min: zero, Max: one},
			},
			Defaults: model.Inputs{"alpha": 0.05, "p2": 0.3, "or": 2.0, "epsilon": 0.2},
			Formula: Formula{
				Expression: "n = Z² / [ln(1-ε)]² × [1/(p₁(1-p₁)) + 1/(p₂(1-p₂))], p₁ = OR·p₂ / (1 - p₂ + OR·p₂)",
				Variables:  []Variable{varN, varZ, {"OR", "Odds Ratio"}, {"ε", "Relative Precision"}},
			},
			Func: e.EstimateOddsRatio,
		},
		{
			Key:         KeyEstimateRelativeRisk,
			Group:       GroupEstimation,
			Title:       "Relative Risk",
			Description: "Calculates sample size for estimating a Relative Risk with specified relative precision.",
			Usage:       "Cohort studies or clinical trials estimating a risk ratio with a specific precision.",
			Example:     "Comparing infection rates between vaccinated and unvaccinated groups.",
			Fields: []Field{
				alphaField,
				{Name: "p2", Label: "p₂ (Proportion in Unexposed)", Tooltip: "Proportion of outcome in the unexposed group", Placeholder: "0.2", Step: 0.01, Min: zero, Max: one},
				{Name: "rr", Label: "RR (Expected Relative Risk)", Tooltip: "The anticipated Relative Risk", Placeholder: "2", Step: 0.1, Min: zero},
				{Name: "epsilon", Label: "ε (Relative Precision)", Tooltip: "e.g., 0.2 for 20% precision", Placeholder: "0.2", Step: 0.01, Min: zero, Max: one},
			},
			Defaults: model.Inputs{"alpha": 0.05, "p2": 0.2, "rr": 2.0, "epsilon": 0.2},
			Formula: Formula{
				Expression: "n = Z² / [ln(1-ε)]² × [(1-p₁)/p₁ + (1-p₂)/p₂], p₁ = p₂·RR",
				Variables:  []Variable{varN, varZ, {"RR", "Relative Risk"}, {"ε", "Relative Precision"}},
			},
			Func: e.EstimateRelativeRisk,
		},
		{
			Key:         KeyEstimateCorrelation,
			Group:       GroupEstimation,
			Title:       "Correlation Coefficient",
			Description: "Calculates sample size needed to estimate a correlation coefficient.",
			Usage:       "Observational studies estimating the strength of a linear relationship between two continuous variables.",
			Example:     "Estimating the correlation between age and blood pressure.",
			Fields: []Field{
				alphaField,
				{Name: "r", Label: "r (Expected Correlation)", Tooltip: "The expected correlation coefficient (between -1 and 1)", Placeholder: "0.3", Step: 0.01, Min: negOne, Max: one},
			},
			Defaults: model.Inputs{"alpha": 0.05, "r": 0.3},
			Formula: Formula{
				Expression: "n = 3 + (Z / Zr)², Zr = 0.5 × ln((1+r)/(1-r))",
				Variables:  []Variable{varN, varZ, {"Zr", "Fisher Z-transformation"}},
			},
			Func: e.EstimateCorrelation,
		},
		{
			Key:         KeyTestProportion,
			Group:       GroupHypothesis,
			Title:       "Single Proportion",
			Description: "Compares an observed proportion to a hypothesized population proportion.",
			Usage:       "Testing whether a population proportion differs from a specific hypothesized value.",
			Example:     "Testing if a new drug has a success rate different from the standard 50%.",
			Fields: []Field{
				alphaField, betaField,
				{Name: "p0", Label: "p₀ (Null Hypothesis Proportion)", Tooltip: "The proportion under the null hypothesis", Placeholder: "0.5", Step: 0.01, Min: zero, Max: one},
				{Name: "pa", Label: "pₐ (Alternative Hypothesis Proportion)", Tooltip: "The proportion under the alternative hypothesis", Placeholder: "0.6", Step: 0.01, Min: zero, Max: one},
				dropoutField,
			},
			Defaults: model.Inputs{"alpha": 0.05, "beta": 0.2, "p0": 0.5, "pa": 0.6},
			Formula: Formula{
				Expression: "n = [Zα√(p₀q₀) + Zβ√(pₐqₐ)]² / (p₀ - pₐ)²",
				Variables:  []Variable{varN, varZAlpha, varZBeta, {"p₀", "Null Proportion"}, {"pₐ", "Alternative Proportion"}},
			},
			Func: e.TestProportion,
		},
		{
			Key:         KeyTest2Proportions,
			Group:       GroupHypothesis,
			Title:       "Two Proportions",
			Description: "Compares proportions between two independent groups.",
			Usage:       "Clinical trials and epidemiological studies comparing proportions between two independent groups.",
			Example:     "Comparing cure rates between treatment and control groups.",
			Fields: []Field{
				alphaField, betaField,
				{Name: "p1", Label: "p₁ (Proportion Group 1)", Tooltip: "Expected proportion in group 1", Placeholder: "0.6", Step: 0.01, Min: zero, Max: one},
				{Name: "p2", Label: "p₂ (Proportion Group 2)", Tooltip: "Expected proportion in group 2", Placeholder: "0.4", Step: 0.01, Min: zero, Max: one},
				allocationField, dropoutField,
			},
			Defaults: model.Inputs{"alpha": 0.05, "beta": 0.2, "p1": 0.6, "p2": 0.4},
			Formula: Formula{
				Expression: "n = [Zα√(2p̄q̄) + Zβ√(p₁q₁ + p₂q₂)]² / (p₁ - p₂)², p̄ = (p₁ + p₂)/2",
				Variables:  []Variable{varN, varZAlpha, varZBeta, {"p̄", "Pooled Proportion"}},
			},
			Func: e.Test2Proportions,
		},
		{
			Key:         KeyTest2Means,
			Group:       GroupHypothesis,
			Title:       "Two Means",
			Description: "Compares the means of two independent groups.",
			Usage:       "Comparing the average of a continuous outcome between two independent groups.",
			Example:     "Comparing mean blood pressure reduction between two medications.",
			Fields: []Field{
				alphaField, betaField,
				{Name: "mu1", Label: "μ₁ (Mean Group 1)", Tooltip: "Expected mean for group 1", Placeholder: "e.g., 100", Step: 0.01},
				{Name: "mu2", Label: "μ₂ (Mean Group 2)", Tooltip: "Expected mean for group 2", Placeholder: "e.g., 95", Step: 0.01},
				{Name: "sd1", Label: "σ₁ (SD Group 1)", Tooltip: "Standard deviation for group 1", Placeholder: "e.g., 15", Step: 0.01, Min: zero},
				{Name: "sd2", Label: "σ₂ (SD Group 2)", Tooltip: "Standard deviation for group 2", Placeholder: "e.g., 15", Step: 0.01, Min: zero},
				allocationField, dropoutField,
			},
			Defaults: model.Inputs{"alpha": 0.05, "beta": 0.2, "mu1": 100.0, "mu2": 95.0, "sd1": 15.0, "sd2": 15.0},
			Formula: Formula{
				Expression: "n = (σ₁² + σ₂²)(Zα + Zβ)² / (μ₁ - μ₂)²",
				Variables:  []Variable{varN, varZAlpha, varZBeta, {"μ₁, μ₂", "Group Means"}, {"σ₁, σ₂", "Group Standard Deviations"}},
			},
			Func: e.Test2Means,
		},
		{
			Key:         KeyTest2Correlations,
			Group:       GroupHypothesis,
			Title:       "Two Correlation Coefficients",
			Description: "Compares correlation coefficients between two independent groups.",
			Usage:       "Testing whether the strength of a linear relationship differs between two populations.",
			Example:     "Comparing the exercise/blood pressure correlation between young and elderly adults.",
			Fields: []Field{
				alphaField, betaField,
				{Name: "r1", Label: "r₁ (Correlation Group 1)", Tooltip: "Expected correlation in group 1", Placeholder: "0.5", Step: 0.01, Min: negOne, Max: one},
				{Name: "r2", Label: "r₂ (Correlation Group 2)", Tooltip: "Expected correlation in group 2", Placeholder: "0.3", Step: 0.01, Min: negOne, Max: one},
				allocationField, dropoutField,
			},
			Defaults: model.Inputs{"alpha": 0.05, "beta": 0.2, "r1": 0.5, "r2": 0.3},
			Formula: Formula{
				Expression: "n = ((Zα + Zβ) / (Zr₁ - Zr₂))² + 3",
				Variables:  []Variable{varN, varZAlpha, varZBeta, {"Zr₁, Zr₂", "Fisher Z-transformations"}},
			},
			Func: e.Test2Correlations,
		},
		{
			Key:         KeyTest2Rates,
			Group:       GroupRates,
			Title:       "Two Incidence Rates",
			Description: "Compares incidence rates between two groups (e.g., in a cohort study). Calculates required events per group.",
			Usage:       "Cohort studies or trials comparing the rate at which events occur over time between two groups.",
			Example:     "Comparing hospitalization rates between treated and untreated groups.",
			Fields: []Field{
				alphaField, betaField,
				{Name: "lambda1", Label: "λ₁ (Rate Group 1)", Tooltip: "Incidence rate in group 1 (events per person-year)", Placeholder: "e.g., 0.05", Step: 0.01, Min: zero},
				{Name: "lambda2", Label: "λ₂ (Rate Group 2)", Tooltip: "Incidence rate in group 2", Placeholder: "e.g., 0.03", Step: 0.01, Min: zero},
				{Name: "k", Label: "k (Allocation Ratio)", Tooltip: "Ratio of subjects in group 2 to group 1 (e.g., 1 for equal groups)", Placeholder: "1", Step: 0.1, Min: zero},
				dropoutField,
			},
			Defaults: model.Inputs{"alpha": 0.05, "beta": 0.2, "lambda1": 0.05, "lambda2": 0.03, "k": 1.0},
			Formula: Formula{
				Expression: "E₁ = [Zα√((k+1)/k × λ̄) + Zβ√(λ₁ + λ₂/k)]² / (λ₁ - λ₂)², E₂ = k × E₁",
				Variables:  []Variable{{"E₁, E₂", "Events per Group"}, varZAlpha, varZBeta, {"λ̄", "Pooled Rate"}, {"k", "Allocation Ratio"}},
			},
			Func: e.Test2Rates,
		},
		{
			Key:         KeyPowerTestProportion,
			Group:       GroupPower,
			Title:       "Power: Single Proportion",
			Description: "Estimates the power of a single-proportion test for a fixed sample size.",
			Fields: []Field{
				alphaField, nField,
				{Name: "p0", Label: "p₀ (Null Hypothesis Proportion)", Tooltip: "The proportion under the null hypothesis", Placeholder: "0.5", Step: 0.01, Min: zero, Max: one},
				{Name: "pa", Label: "pₐ (Alternative Hypothesis Proportion)", Tooltip: "The proportion under the alternative hypothesis", Placeholder: "0.6", Step: 0.01, Min: zero, Max: one},
			},
			Defaults: model.Inputs{"alpha": 0.05, "n": 200.0, "p0": 0.5, "pa": 0.6},
			Formula: Formula{
				Expression: "power ≈ Φ(|p₀ - pₐ| / SE - Zα)",
				Variables:  []Variable{{"SE", "√(p₀q₀/n + pₐqₐ/n)"}, varZAlpha},
			},
			Func: e.PowerTestProportion,
		},
		{
			Key:         KeyPowerTest2Proportions,
			Group:       GroupPower,
			Title:       "Power: Two Proportions",
			Description: "Estimates the power of a two-proportion test for a fixed per-group sample size.",
			Fields: []Field{
				alphaField, nField,
				{Name: "p1", Label: "p₁ (Proportion Group 1)", Tooltip: "Expected proportion in group 1", Placeholder: "0.6", Step: 0.01, Min: zero, Max: one},
				{Name: "p2", Label: "p₂ (Proportion Group 2)", Tooltip: "Expected proportion in group 2", Placeholder: "0.4", Step: 0.01, Min: zero, Max: one},
			},
			Defaults: model.Inputs{"alpha": 0.05, "n": 100.0, "p1": 0.6, "p2": 0.4},
			Formula: Formula{
				Expression: "power ≈ Φ(|p₁ - p₂| / SE - Zα)",
				Variables:  []Variable{{"SE", "√(p̄q̄ × 2/n)"}, varZAlpha},
			},
			Func: e.PowerTest2Proportions,
		},
		{
			Key:         KeyPowerTest2Means,
			Group:       GroupPower,
			Title:       "Power: Two Means",
			Description: "Estimates the power of a two-mean test for a fixed per-group sample size.",
			Fields: []Field{
				alphaField, nField,
				{Name: "mu1", Label: "μ₁ (Mean Group 1)", Tooltip: "Expected mean for group 1", Placeholder: "e.g., 100", Step: 0.01},
				{Name: "mu2", Label: "μ₂ (Mean Group 2)", Tooltip: "Expected mean for group 2", Placeholder: "e.g., 95", Step: 0.01},
				{Name: "sd1", Label: "σ₁ (SD Group 1)", Tooltip: "Standard deviation for group 1", Placeholder: "e.g., 15", Step: 0.01, Min: zero},
				{Name: "sd2", Label: "σ₂ (SD Group 2)", Tooltip: "Standard deviation for group 2", Placeholder: "e.g., 15", Step: 0.01, Min: zero},
			},
			Defaults: model.Inputs{"alpha": 0.05, "n": 100.0, "mu1": 100.0, "mu2": 95.0, "sd1": 15.0, "sd2": 15.0},
			Formula: Formula{
				Expression: "power ≈ Φ(|μ₁ - μ₂| / SE - Zα)",
				Variables:  []Variable{{"SE", "√((σ₁² + σ₂²)/2) × √(2/n)"}, varZAlpha},
			},
			Func: e.PowerTest2Means,
		},
	}
}

// Designs returns every design bound to e, in display order.
func (e *Engine) Designs() []Design {
	return designs(e)
}

// Funcs returns the calculators of e keyed by design key.
func (e *Engine) Funcs() map[string]Func {
	ds := designs(e)
	out := make(map[string]Func, len(ds))
	for _, d := range ds {
		out[d.Key] = d.Func
	}
	return out
}

// Lookup returns the design registered under key.
func (e *Engine) Lookup(key string) (Design, bool) {
	for _, d := range designs(e) {
		if d.Key == key {
			return d, true
		}
	}
	return Design{}, false
}

// Registry returns the designs of the Default engine.
func Registry() []Design {
	return Default.Designs()
}

// Lookup returns the Default engine's design for key.
func Lookup(key string) (Design, bool) {
	return Default.Lookup(key)
}

// Funcs returns the Default engine's calculators keyed by design key.
func Funcs() map[string]Func {
	return Default.Funcs()
}

// ByGroup returns the designs of g in display order.
func ByGroup(g Group) []Design {
	var out []Design
	for _, d := range Registry() {
		if d.Group == g {
			out = append(out, d)
		}
	}
	return out
}

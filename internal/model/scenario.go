package model

// Scenario is a named input set bound to one calculator design. Scenarios
// are immutable once created; identity is the ID.
type Scenario struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Inputs        Inputs `json:"inputs" yaml:"inputs"`
	CalculatorKey string `json:"calculatorKey" yaml:"calculator"`
	Timestamp     string `json:"timestamp" yaml:"timestamp"`
}

// Summary is the design-independent view of a comparison row.
type Summary struct {
	SampleSize         *float64 `json:"sampleSize"`
	SampleSizeAdjusted *float64 `json:"sampleSizeAdjusted"`
	Total              *float64 `json:"total"`
	Error              *string  `json:"error"`
}

// Comparison pairs a scenario with its calculator result. Result is nil when
// the scenario's calculator could not be found.
type Comparison struct {
	Scenario Scenario `json:"scenario"`
	Result   *Result  `json:"result"`
	Summary  Summary  `json:"summary"`
}

// SweepPoint is one evaluation of a sensitivity sweep.
type SweepPoint struct {
	ParamValue         float64  `json:"paramValue"`
	SampleSize         float64  `json:"sampleSize"`
	SampleSizeAdjusted *float64 `json:"sampleSizeAdjusted,omitempty"`
	Value1             *float64 `json:"value1,omitempty"`
	Value2             *float64 `json:"value2,omitempty"`
	Total              *float64 `json:"total,omitempty"`
}

// ParamSweep holds the sweep of a single parameter.
type ParamSweep struct {
	ParamName  string       `json:"paramName"`
	ParamLabel string       `json:"paramLabel"`
	Results    []SweepPoint `json:"results"`
	MinValue   float64      `json:"minValue"`
	MaxValue   float64      `json:"maxValue"`
}

// SweepExtremes is the global min/max sample size across sweeps.
type SweepExtremes struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Range float64 `json:"range"`
}

// Severity grades an advisory warning.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Warning is a non-blocking advisory about questionable inputs or results.
type Warning struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

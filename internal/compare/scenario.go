// Package compare evaluates named scenarios side by side and exports the
// comparison as CSV, JSON or a spreadsheet.
package compare

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var now = time.Now

// NewScenario returns a scenario with a fresh time-ordered ID.
func NewScenario(name string, inputs model.Inputs, key string) model.Scenario {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return model.Scenario{
		ID:            id.String(),
		Name:          name,
		Inputs:        inputs,
		CalculatorKey: key,
		Timestamp:     now().UTC().Format(TimestampLayout),
	}
}

// LoadScenarioFile reads scenarios from a YAML file of the form
//
//	scenarios:
//	  - name: baseline
//	    calculator: test2Proportions
//	    inputs: {alpha: 0.05, beta: 0.2, p1: 0.6, p2: 0.4}
//
// Each entry gets a new ID and timestamp.
func LoadScenarioFile(path string) ([]model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "compare: read scenario file %s", path)
	}

	var doc struct {
		Scenarios []struct {
			Name       string       `yaml:"name"`
			Calculator string       `yaml:"calculator"`
			Inputs     model.Inputs `yaml:"inputs"`
		} `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "compare: parse scenario file")
	}

	out := make([]model.Scenario, 0, len(doc.Scenarios))
	for i, s := range doc.Scenarios {
		if s.Calculator == "" {
			return nil, eris.Errorf("compare: scenario %d (%q) has no calculator", i+1, s.Name)
		}
		name := s.Name
		if name == "" {
			name = s.Calculator
		}
		if s.Inputs == nil {
			s.Inputs = model.Inputs{}
		}
		out = append(out, NewScenario(name, s.Inputs, s.Calculator))
	}
	return out, nil
}

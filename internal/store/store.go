package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// ErrNotFound is returned (wrapped) when a scenario or preference does not
// exist. Match with eris.Is or errors.Is.
var ErrNotFound = eris.New("not found")

// ScenarioFilter specifies criteria for listing scenarios.
type ScenarioFilter struct {
	CalculatorKey string `json:"calculator_key,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}

// Store persists saved scenarios and UI preferences. Nothing in the
// calculation engine reads from it; callers save and load explicitly.
type Store interface {
	// Scenarios
	SaveScenario(ctx context.Context, sc model.Scenario) error
	GetScenario(ctx context.Context, id string) (*model.Scenario, error)
	ListScenarios(ctx context.Context, filter ScenarioFilter) ([]model.Scenario, error)
	DeleteScenario(ctx context.Context, id string) error

	// Preferences (language, theme, default export format, ...)
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 100

func (f ScenarioFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

func (f ScenarioFilter) offset() int {
	if f.Offset < 0 {
		return 0
	}
	return f.Offset
}

func validateScenario(sc model.Scenario) error {
	if sc.ID == "" {
		return eris.New("store: scenario id is required")
	}
	if sc.CalculatorKey == "" {
		return eris.Errorf("store: scenario %s has no calculator", sc.ID)
	}
	return nil
}

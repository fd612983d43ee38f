package compare

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// ErrNotFound is the summary error for a scenario whose calculator key is
// not in the function map.
const ErrNotFound = "Calculator function not found"

// Compare evaluates each scenario with its calculator from funcs. Output
// order matches input order.
func Compare(scenarios []model.Scenario, funcs map[string]calc.Func) []model.Comparison {
	out := make([]model.Comparison, len(scenarios))
	for i, s := range scenarios {
		out[i] = evaluate(s, funcs)
	}
	return out
}

// CompareParallel is Compare with at most limit scenarios evaluated at once.
// A limit <= 0 means no bound.
func CompareParallel(ctx context.Context, scenarios []model.Scenario, funcs map[string]calc.Func, limit int) ([]model.Comparison, error) {
	out := make([]model.Comparison, len(scenarios))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, s := range scenarios {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = evaluate(s, funcs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "compare: evaluate scenarios")
	}

	zap.L().Debug("compare: scenarios evaluated",
		zap.Int("count", len(scenarios)),
		zap.Int("limit", limit),
	)
	return out, nil
}

func evaluate(s model.Scenario, funcs map[string]calc.Func) model.Comparison {
	fn, ok := funcs[s.CalculatorKey]
	if !ok || fn == nil {
		msg := ErrNotFound
		return model.Comparison{Scenario: s, Summary: model.Summary{Error: &msg}}
	}
	r := fn(s.Inputs)
	return model.Comparison{Scenario: s, Result: &r, Summary: Summarize(r)}
}

// Summarize reduces a result to the comparison summary. Zero values count
// as absent, and the total falls back to value+value2 and then to value.
func Summarize(r model.Result) model.Summary {
	var s model.Summary
	if r.Error != "" {
		msg := r.Error
		s.Error = &msg
	}

	value, _ := r.Primary()
	if value != 0 {
		s.SampleSize = &value
	}
	if adj, ok := r.AdjustedValue(); ok && adj != 0 {
		s.SampleSizeAdjusted = &adj
	}

	total, _ := r.TotalValue()
	if total == 0 {
		v2, _ := r.Secondary()
		if value != 0 && v2 != 0 {
			total = value + v2
		} else {
			total = value
		}
	}
	if total != 0 {
		s.Total = &total
	}
	return s
}

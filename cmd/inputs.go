package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// parseSets applies repeated name=value flags on top of base. Values are
// true, false or a number.
func parseSets(base model.Inputs, sets []string) (model.Inputs, error) {
	in := base.Clone()
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, eris.Errorf("invalid --set %q, want name=value", s)
		}
		raw = strings.TrimSpace(raw)
		switch strings.ToLower(raw) {
		case "true":
			in[name] = true
			continue
		case "false":
			in[name] = false
			continue
		}
		f, err := parseNumber(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid value for %s", name)
		}
		in[name] = f
	}
	return in, nil
}

// parseNumber parses a finite float. Inf and NaN are rejected since no input
// accepts them and they cannot be rendered as JSON.
func parseNumber(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Errorf("%q is not a number", raw)
	}
	if !finite(f) {
		return 0, eris.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}

package model

import (
	"encoding/json"
	"math"
)

// Inputs is the named-parameter bag passed to every calculator. Values are
// numbers (any Go numeric kind) or booleans such as "twoTailed". Keys a
// calculator does not recognize are ignored.
type Inputs map[string]any

// Num returns the value for key as a float64. ok is false when the key is
// missing, nil, non-numeric, or NaN.
func (in Inputs) Num(key string) (float64, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Truthy reports whether key holds a usable non-zero number. A zero, missing,
// or NaN value is treated as not supplied.
func (in Inputs) Truthy(key string) bool {
	f, ok := in.Num(key)
	return ok && f != 0
}

// Flag returns the boolean value for key. Numbers are accepted (non-zero is
// true) so that flags survive transports that only carry numbers.
func (in Inputs) Flag(key string, def bool) bool {
	v, ok := in[key]
	if !ok || v == nil {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return def
}

// Clone returns a shallow copy of in.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

// With returns a copy of in with key set to v.
func (in Inputs) With(key string, v any) Inputs {
	out := in.Clone()
	out[key] = v
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

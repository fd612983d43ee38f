package advisory

// Field validator names.
const (
	FieldAlpha      = "alpha"
	FieldProportion = "proportion"
	FieldEffectSize = "effectSize"
)

type fieldValidator struct {
	check      func(float64) string
	suggestion string
}

var validators = map[string]fieldValidator{
	FieldAlpha: {
		check: func(v float64) string {
			if v <= 0 || v >= 1 {
				return "Alpha must be between 0 and 1 (exclusive)"
			}
			return ""
		},
		suggestion: "Common values: 0.05 (95% confidence), 0.01 (99% confidence)",
	},
	FieldProportion: {
		check: func(v float64) string {
			if v < 0 || v > 1 {
				return "Proportion must be between 0 and 1"
			}
			return ""
		},
		suggestion: "Use 0.5 if unknown (most conservative estimate)",
	},
	FieldEffectSize: {
		check: func(v float64) string {
			if v <= 0 {
				return "Effect size must be positive"
			}
			return ""
		},
		suggestion: "Small: 0.2, Medium: 0.5, Large: 0.8 (Cohen's conventions)",
	},
}

// ValidateField returns a message when v is not acceptable for the named
// field kind, or "" when it is (or the kind is unknown).
func ValidateField(name string, v float64) string {
	fv, ok := validators[name]
	if !ok {
		return ""
	}
	return fv.check(v)
}

// Suggestion returns typical values for the named field kind.
func Suggestion(name string) string {
	return validators[name].suggestion
}

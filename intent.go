package tripgraph

// Intent categories produced by the external NLU front end.
const (
	IntentSearch         = "search"
	IntentRecommendation = "recommendation"
	IntentQuestion       = "question"
)

// Intent is the classified category of a user query. Classification
// itself happens outside this module; the planner only consumes the
// result.
type Intent struct {
	Category string `json:"category"`
}

// Entities is the sparse slot→value mapping extracted from a user query
// by the external NLU layer. Values arrive as loosely typed data
// (typically decoded JSON: float64 for numbers, []any for lists), so
// access goes through the typed accessors below.
type Entities map[string]any

// String returns the named slot as a non-empty string.
func (e Entities) String(key string) (string, bool) {
	v, ok := e[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}

	return s, true
}

// Float returns the named slot as a float64, accepting any numeric
// representation the NLU layer may hand over.
func (e Entities) Float(key string) (float64, bool) {
	v, ok := e[key]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	return 0, false
}

// Int returns the named slot as an int, truncating fractional values.
func (e Entities) Int(key string) (int, bool) {
	f, ok := e.Float(key)
	if !ok {
		return 0, false
	}

	return int(f), true
}

// Strings returns the named slot as a non-empty list of strings.
// Non-string elements of a mixed list are skipped.
func (e Entities) Strings(key string) ([]string, bool) {
	v, ok := e[key]
	if !ok {
		return nil, false
	}

	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil, false
		}

		return list, true
	case []any:
		out := make([]string, 0, len(list))

		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		if len(out) == 0 {
			return nil, false
		}

		return out, true
	}

	return nil, false
}

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition operator keys as stored in node configs.
const (
	OperatorGleich       = "gleich"
	OperatorUngleich     = "ungleich"
	OperatorGroesser     = "groesser"
	OperatorKleiner      = "kleiner"
	OperatorEnthaelt     = "enthaelt"
	OperatorIstLeer      = "ist_leer"
	OperatorIstNichtLeer = "ist_nicht_leer"
)

// OperatorFunc evaluates one condition operator against a resolved field
// value and the configured comparison value.
type OperatorFunc func(fieldValue, compareValue any) bool

var operators = map[string]OperatorFunc{
	OperatorGleich:       equals,
	OperatorUngleich:     func(a, b any) bool { return !equals(a, b) },
	OperatorGroesser:     greaterThan,
	OperatorKleiner:      lessThan,
	OperatorEnthaelt:     contains,
	OperatorIstLeer:      func(a, _ any) bool { return isEmpty(a) },
	OperatorIstNichtLeer: func(a, _ any) bool { return !isEmpty(a) },
}

// Operator returns the evaluator for an operator key.
func Operator(key string) (OperatorFunc, bool) {
	op, ok := operators[key]

	return op, ok
}

// Equality is string-based: a numeric 42 and the configured "42" compare
// equal, matching how configs arrive from form inputs.
func equals(fieldValue, compareValue any) bool {
	return stringify(fieldValue) == stringify(compareValue)
}

func greaterThan(fieldValue, compareValue any) bool {
	a, aok := toFloat(fieldValue)
	b, bok := toFloat(compareValue)

	return aok && bok && a > b
}

func lessThan(fieldValue, compareValue any) bool {
	a, aok := toFloat(fieldValue)
	b, bok := toFloat(compareValue)

	return aok && bok && a < b
}

func contains(fieldValue, compareValue any) bool {
	return strings.Contains(
		strings.ToLower(stringify(fieldValue)),
		strings.ToLower(stringify(compareValue)),
	)
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)

		return f, err == nil
	default:
		return 0, false
	}
}

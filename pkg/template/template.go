// Package template resolves {{path}} placeholders in action configuration
// strings against the execution context.
package template

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([\w.]+)\s*\}\}`)

// Resolve replaces every {{path}} token with the value the dotted path
// resolves to in the execution context. Tokens whose path resolves to
// nothing are left intact so unresolved placeholders stay visible instead
// of silently blanking out.
func Resolve(input string, execCtx *models.ExecutionContext) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(token string) string {
		path := placeholderPattern.FindStringSubmatch(token)[1]

		value, ok := execCtx.Lookup(path)
		if !ok || value == nil {
			return token
		}

		return Stringify(value)
	})
}

// Stringify renders a resolved context value for interpolation. Floats drop
// the trailing ".0" that map[string]any JSON decoding introduces.
func Stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

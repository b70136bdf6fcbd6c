package models

import "strings"

// ExecutionContext is the mutable variable bag and per-node result cache
// threaded through one execution. It exists only for the lifetime of a
// single run.
type ExecutionContext struct {
	Variables   map[string]any            `json:"variables"`
	Results     map[string]map[string]any `json:"results"`
	TriggerData map[string]any            `json:"trigger_data"`
}

// NewExecutionContext seeds the variable bag from the trigger payload. The
// payload itself stays reachable as a read-only fallback for field lookups.
func NewExecutionContext(triggerData map[string]any) *ExecutionContext {
	variables := make(map[string]any, len(triggerData))
	for k, v := range triggerData {
		variables[k] = v
	}

	return &ExecutionContext{
		Variables:   variables,
		Results:     make(map[string]map[string]any),
		TriggerData: triggerData,
	}
}

// Lookup resolves a dotted path ("a.b.c") first against Variables and, if
// any segment is missing there, retries the same path against TriggerData.
func (c *ExecutionContext) Lookup(path string) (any, bool) {
	if value, ok := lookupPath(c.Variables, path); ok {
		return value, true
	}

	return lookupPath(c.TriggerData, path)
}

func lookupPath(root map[string]any, path string) (any, bool) {
	if root == nil {
		return nil, false
	}

	segments := strings.Split(path, ".")

	var current any = root

	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Package condition implements the condition node handler. It resolves the
// configured field by dotted path against the execution context and applies
// one of the catalog's comparison operators; the engine routes the walk
// through the ja or nein port based on the result.
package condition

import (
	"context"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

// ResultKeyMet is the result key the engine reads to pick the branch port.
const ResultKeyMet = "erfuellt"

type Action struct{}

func NewAction() *Action {
	return &Action{}
}

func (a *Action) Execute(_ context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	feld, _ := config["feld"].(string)
	operatorKey, _ := config["operator"].(string)
	wert := config["wert"]

	fieldValue, _ := execCtx.Lookup(feld)

	met := false

	if operator, ok := catalog.Operator(operatorKey); ok {
		met = operator(fieldValue, wert)
	} else {
		logger.Warn("Unknown condition operator, evaluating to false", "operator", operatorKey)
	}

	return map[string]any{
		protocol.ResultSuccess: true,
		ResultKeyMet:           met,
		"feld":                 feld,
		"operator":             operatorKey,
		"feldWert":             fieldValue,
	}, nil
}

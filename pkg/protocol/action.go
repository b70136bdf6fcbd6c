// Package protocol defines the contract between the execution engine and
// the action handlers.
package protocol

import (
	"context"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
)

// Result keys shared across handlers. A handler reports an unmet
// precondition by returning a result with Success=false rather than an
// error; a returned error aborts the whole execution.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Action is the behavior bound to one action catalog key. Execute receives
// the node config and the shared execution context; handlers enrich
// execCtx.Variables with their outputs (angebot, auftrag, rechnung, ...).
type Action interface {
	Execute(ctx context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error)
}

// Failure builds the conventional non-fatal failure result.
func Failure(message string) map[string]any {
	return map[string]any{ResultSuccess: false, ResultError: message}
}

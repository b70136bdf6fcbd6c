// Package persistence provides the data storage abstraction for workflows
// and execution history.
package persistence

import (
	"context"
	"errors"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
)

// ErrWorkflowNotFound is returned when a workflow id is unknown.
var ErrWorkflowNotFound = errors.New("workflow not found")

// Persistence stores the workflow collection and the execution history,
// each serialized as a flat list under its own storage key. Implementations
// must serialize mutation internally; callers may write from concurrent
// executions.
type Persistence interface {
	Workflows(ctx context.Context) ([]*models.Workflow, error)
	WorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	SaveWorkflow(ctx context.Context, workflow *models.Workflow) error
	DeleteWorkflow(ctx context.Context, id string) error

	Executions(ctx context.Context) ([]*models.Execution, error)
	SaveExecutions(ctx context.Context, executions []*models.Execution) error

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// IsWorkflowNotFound reports whether err wraps ErrWorkflowNotFound.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// Package services implements the business operations on workflow
// aggregates: CRUD, duplication, node and connection mutation with the
// structural invariants, and the activation lifecycle.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
)

// ErrWorkflowNotFound is re-exported for callers that only import services.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

// Timers is the scheduling resource a workflow activation may hold (cron
// entries for schedule triggers). Deactivation must release it.
type Timers interface {
	Activate(workflow *models.Workflow) error
	Deactivate(workflowID string)
}

// CreateWorkflowRequest carries the caller-supplied fields of a new
// workflow; everything else is defaulted.
type CreateWorkflowRequest struct {
	Name        string `validate:"required,min=1"`
	Description string
}

// UpdateWorkflowRequest is a partial update. Nil fields are left untouched;
// ID and CreatedAt are protected and cannot be patched.
type UpdateWorkflowRequest struct {
	Name        *string `validate:"omitempty,min=1"`
	Description *string
	IsActive    *bool
}

// Workflow is the workflow aggregate service.
type Workflow struct {
	persistence persistence.Persistence
	catalog     *catalog.Catalog
	timers      Timers
	logger      *slog.Logger
}

func NewWorkflow(p persistence.Persistence, cat *catalog.Catalog, timers Timers, logger *slog.Logger) *Workflow {
	return &Workflow{
		persistence: p,
		catalog:     cat,
		timers:      timers,
		logger:      logger.With("module", "workflow_service"),
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if err := w.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every workflow.
func (w *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	return w.persistence.Workflows(ctx)
}

// FetchByID retrieves a workflow by its id.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.WorkflowByID(ctx, id)
}

// Create assigns a generated id and defaults, persists, and returns the new
// aggregate. New workflows start inactive at version 1.
func (w *Workflow) Create(ctx context.Context, req CreateWorkflowRequest) (*models.Workflow, error) {
	now := time.Now().UTC()

	name := req.Name
	if name == "" {
		name = "Neuer Workflow"
	}

	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		Nodes:       []*models.Node{},
		Connections: []*models.Connection{},
		IsActive:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
		RunCount:    0,
		Version:     1,
	}

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return workflow, nil
}

// Update merges the patch into the workflow, bumps UpdatedAt and Version,
// and persists. Activation changes engage or release the timer resource.
func (w *Workflow) Update(ctx context.Context, id string, patch UpdateWorkflowRequest) (*models.Workflow, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		workflow.Name = *patch.Name
	}

	if patch.Description != nil {
		workflow.Description = *patch.Description
	}

	if patch.IsActive != nil && *patch.IsActive != workflow.IsActive {
		workflow.IsActive = *patch.IsActive
		w.syncTimers(workflow)
	}

	w.touch(workflow, true)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	return workflow, nil
}

// Activate marks the workflow active and registers any schedule trigger.
func (w *Workflow) Activate(ctx context.Context, id string) (*models.Workflow, error) {
	active := true

	return w.Update(ctx, id, UpdateWorkflowRequest{IsActive: &active})
}

// Deactivate marks the workflow inactive and releases its timer resource.
// An in-flight execution is not aborted; deactivation only prevents future
// trigger matches.
func (w *Workflow) Deactivate(ctx context.Context, id string) (*models.Workflow, error) {
	active := false

	return w.Update(ctx, id, UpdateWorkflowRequest{IsActive: &active})
}

// Delete deactivates the workflow first, releasing any scheduled resource,
// then removes the aggregate. Deleting an unknown id is an idempotent no-op
// returning false.
func (w *Workflow) Delete(ctx context.Context, id string) (bool, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return false, nil
		}

		return false, err
	}

	if workflow.IsActive {
		workflow.IsActive = false
		w.syncTimers(workflow)
	}

	if err := w.persistence.DeleteWorkflow(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete workflow: %w", err)
	}

	return true, nil
}

// Duplicate deep-copies the workflow's nodes and connections into a new
// inactive aggregate with a fresh id, timestamps, and version. Node and
// connection ids are preserved from the source; ids are only ever compared
// within one workflow, so the copies cannot collide.
func (w *Workflow) Duplicate(ctx context.Context, id string) (*models.Workflow, error) {
	source, err := w.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	duplicate := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        source.Name + " (Kopie)",
		Description: source.Description,
		Nodes:       make([]*models.Node, 0, len(source.Nodes)),
		Connections: make([]*models.Connection, 0, len(source.Connections)),
		IsActive:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	for _, node := range source.Nodes {
		copied := *node
		copied.Config = copyMap(node.Config)
		duplicate.Nodes = append(duplicate.Nodes, &copied)
	}

	for _, conn := range source.Connections {
		copied := *conn
		duplicate.Connections = append(duplicate.Connections, &copied)
	}

	if err := w.persistence.SaveWorkflow(ctx, duplicate); err != nil {
		return nil, fmt.Errorf("failed to duplicate workflow: %w", err)
	}

	return duplicate, nil
}

func (w *Workflow) touch(workflow *models.Workflow, bumpVersion bool) {
	workflow.UpdatedAt = time.Now().UTC()

	if bumpVersion {
		workflow.Version++
	}
}

func (w *Workflow) syncTimers(workflow *models.Workflow) {
	if w.timers == nil {
		return
	}

	if workflow.IsActive {
		if err := w.timers.Activate(workflow); err != nil {
			w.logger.Error("Failed to register workflow timers", "workflow_id", workflow.ID, "error", err)
		}

		return
	}

	w.timers.Deactivate(workflow.ID)
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

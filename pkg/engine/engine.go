// Package engine executes workflow graphs. Given a workflow and a trigger
// payload it walks the graph depth-first from the trigger node, dispatches
// each node to its action handler, branches on condition nodes, and records
// a full execution trace with isolated per-node failure handling.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	conditionaction "github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/condition"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/otelhelper"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/registry"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/services"
)

// ErrNoTrigger marks a workflow executed without a trigger node. It fails
// the whole execution, not a single node.
var ErrNoTrigger = errors.New("no trigger defined")

// Engine runs workflows. One engine serves arbitrarily many concurrent
// executions; each execution's graph walk is strictly sequential.
type Engine struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	history     *services.History
	logger      *slog.Logger
	tracer      trace.Tracer
}

func NewEngine(p persistence.Persistence, reg *registry.Registry, history *services.History, logger *slog.Logger, tracer trace.Tracer) *Engine {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("engine")
	}

	return &Engine{
		persistence: p,
		registry:    reg,
		history:     history,
		logger:      logger.With("module", "engine"),
		tracer:      tracer,
	}
}

// ExecuteWorkflow runs one workflow against a trigger payload. The
// execution trace is appended to history regardless of outcome; run
// statistics are updated on the workflow only when the whole graph
// succeeded. The returned error is the run error, already captured in the
// execution record.
func (e *Engine) ExecuteWorkflow(ctx context.Context, workflowID string, triggerData map[string]any) (*models.Execution, error) {
	logger := e.logger.With("workflow_id", workflowID)

	workflow, err := e.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		logger.Error("Failed to resolve workflow", "error", err)

		return nil, fmt.Errorf("failed to resolve workflow %s: %w", workflowID, err)
	}

	execution := &models.Execution{
		ID:           "exec-" + uuid.New().String()[:8],
		WorkflowID:   workflow.ID,
		WorkflowName: workflow.Name,
		Status:       models.ExecutionStatusRunning,
		TriggerData:  triggerData,
		NodeResults:  []models.NodeResult{},
		StartedAt:    time.Now().UTC(),
	}

	logger = logger.With("execution_id", execution.ID)
	logger.Info("Starting workflow execution")

	ctx, span := e.tracer.Start(ctx, "workflow.execute", trace.WithAttributes(
		attribute.String("workflow.id", workflow.ID),
		attribute.String("execution.id", execution.ID),
	))
	defer span.End()

	runErr := e.run(ctx, workflow, triggerData, execution, logger)

	finished := time.Now().UTC()
	execution.FinishedAt = &finished

	if runErr != nil {
		execution.Status = models.ExecutionStatusError
		execution.Error = runErr.Error()

		otelhelper.RecordFailure(span, runErr)
		logger.Error("Workflow execution failed", "error", runErr)
	} else {
		execution.Status = models.ExecutionStatusCompleted

		workflow.LastRun = &finished
		workflow.RunCount++

		if err := e.persistence.SaveWorkflow(ctx, workflow); err != nil {
			logger.Error("Failed to persist run statistics", "error", err)
		}

		logger.Info("Workflow execution completed", "nodes_executed", len(execution.NodeResults))
	}

	if err := e.history.Append(ctx, execution); err != nil {
		logger.Error("Failed to append execution history", "error", err)
	}

	return execution, runErr
}

func (e *Engine) run(ctx context.Context, workflow *models.Workflow, triggerData map[string]any, execution *models.Execution, logger *slog.Logger) error {
	trigger := workflow.TriggerNode()
	if trigger == nil {
		return ErrNoTrigger
	}

	execCtx := models.NewExecutionContext(triggerData)

	return e.executeFrom(ctx, workflow, trigger, execCtx, execution, logger)
}

// executeFrom executes the node and recurses into its downstream subtrees.
// Condition nodes follow only their ja or nein port; every other node fans
// out over all outgoing connections in declaration order, each subtree
// completing before the next starts. A handler error aborts the walk after
// the failing node's result is recorded.
func (e *Engine) executeFrom(ctx context.Context, workflow *models.Workflow, node *models.Node, execCtx *models.ExecutionContext, execution *models.Execution, logger *slog.Logger) error {
	start := time.Now()
	result, err := e.executeNode(ctx, node, execCtx, logger)

	nodeResult := models.NodeResult{
		NodeID:    node.ID,
		NodeLabel: node.Label,
		Action:    node.Action,
		Duration:  time.Since(start).Milliseconds(),
		Timestamp: time.Now().UTC(),
	}

	if err != nil {
		nodeResult.Status = models.NodeStatusError
		nodeResult.Error = err.Error()
		execution.NodeResults = append(execution.NodeResults, nodeResult)

		return fmt.Errorf("node %s (%s) failed: %w", node.ID, node.Action, err)
	}

	nodeResult.Status = models.NodeStatusSuccess
	nodeResult.Result = result
	execution.NodeResults = append(execution.NodeResults, nodeResult)

	execCtx.Results[node.ID] = result

	if node.Type == models.NodeTypeCondition {
		return e.followConditionBranch(ctx, workflow, node, result, execCtx, execution, logger)
	}

	for _, conn := range workflow.ConnectionsFrom(node.ID) {
		next := workflow.NodeByID(conn.ToNodeID)
		if next == nil {
			logger.Warn("Connection references missing node", "connection_id", conn.ID, "to_node_id", conn.ToNodeID)

			continue
		}

		if err := e.executeFrom(ctx, workflow, next, execCtx, execution, logger); err != nil {
			return err
		}
	}

	return nil
}

// followConditionBranch routes the walk through the ja or nein port. A
// branch whose port has no connection simply terminates.
func (e *Engine) followConditionBranch(ctx context.Context, workflow *models.Workflow, node *models.Node, result map[string]any, execCtx *models.ExecutionContext, execution *models.Execution, logger *slog.Logger) error {
	met, _ := result[conditionaction.ResultKeyMet].(bool)

	port := models.PortNein
	if met {
		port = models.PortJa
	}

	conn := workflow.ConnectionFromPort(node.ID, port)
	if conn == nil {
		logger.Debug("Condition port has no connection, branch ends", "node_id", node.ID, "port", port)

		return nil
	}

	next := workflow.NodeByID(conn.ToNodeID)
	if next == nil {
		logger.Warn("Connection references missing node", "connection_id", conn.ID, "to_node_id", conn.ToNodeID)

		return nil
	}

	return e.executeFrom(ctx, workflow, next, execCtx, execution, logger)
}

// executeNode dispatches one node to its handler. Trigger nodes are pure
// entry points and pass the trigger payload through; unrecognized action
// kinds return a neutral skipped result instead of failing the run.
func (e *Engine) executeNode(ctx context.Context, node *models.Node, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	nodeLogger := logger.With("node_id", node.ID, "action", node.Action)

	if node.Type == models.NodeTypeTrigger {
		return map[string]any{
			"triggered": true,
			"data":      execCtx.TriggerData,
		}, nil
	}

	handler, ok := e.registry.Handler(node.Action)
	if !ok {
		nodeLogger.Warn("No handler registered for action kind, skipping node")

		return map[string]any{
			"skipped": true,
			"action":  node.Action,
		}, nil
	}

	ctx, span := e.tracer.Start(ctx, "node.execute", trace.WithAttributes(
		attribute.String("node.id", node.ID),
		attribute.String("node.action", node.Action),
	))
	defer span.End()

	result, err := handler.Execute(ctx, node.Config, execCtx, nodeLogger)
	if err != nil {
		otelhelper.RecordFailure(span, err)
	}

	return result, err
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/graph"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
)

// AddNodeRequest carries the fields of a new node. ID, Config, and Label
// are optional and defaulted; Type is derived from the catalog entry for
// the action kind.
type AddNodeRequest struct {
	ID       string
	Action   string `validate:"required"`
	Config   map[string]any
	Position models.Position
	Label    string
}

// UpdateNodeRequest is a partial node update.
type UpdateNodeRequest struct {
	Config   map[string]any
	Position *models.Position
	Label    *string
}

// AddNode inserts a node into the workflow. A workflow has at most one
// trigger: adding a second trigger removes the existing one together with
// its connections before the insert.
func (w *Workflow) AddNode(ctx context.Context, workflowID string, req AddNodeRequest) (*models.Node, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	nodeType, ok := w.catalog.NodeType(req.Action)
	if !ok {
		nodeType = models.NodeTypeAction
	}

	if err := w.catalog.ValidateConfig(req.Action, req.Config); err != nil {
		return nil, err
	}

	node := &models.Node{
		ID:       req.ID,
		Type:     nodeType,
		Action:   req.Action,
		Config:   req.Config,
		Position: req.Position,
		Label:    req.Label,
	}

	if node.ID == "" {
		node.ID = uuid.New().String()
	}

	if node.Config == nil {
		node.Config = map[string]any{}
	}

	if node.Label == "" {
		node.Label = w.catalog.Label(node.Action)
	}

	if node.Type == models.NodeTypeTrigger {
		if existing := workflow.TriggerNode(); existing != nil {
			w.logger.Info("Replacing existing trigger node",
				"workflow_id", workflowID, "old_trigger", existing.ID, "new_trigger", node.ID)
			removeNodeFromWorkflow(workflow, existing.ID)
		}
	}

	workflow.Nodes = append(workflow.Nodes, node)
	w.touch(workflow, false)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save node: %w", err)
	}

	return node, nil
}

// UpdateNode applies a partial update to a node.
func (w *Workflow) UpdateNode(ctx context.Context, workflowID, nodeID string, req UpdateNodeRequest) (*models.Node, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node := workflow.NodeByID(nodeID)
	if node == nil {
		return nil, fmt.Errorf("node %s not found in workflow %s", nodeID, workflowID)
	}

	if req.Config != nil {
		if err := w.catalog.ValidateConfig(node.Action, req.Config); err != nil {
			return nil, err
		}

		node.Config = req.Config
	}

	if req.Position != nil {
		node.Position = *req.Position
	}

	if req.Label != nil {
		node.Label = *req.Label
	}

	w.touch(workflow, false)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to update node: %w", err)
	}

	return node, nil
}

// RemoveNode deletes a node and, cascading, every connection that touches
// it. Removing an unknown node returns false.
func (w *Workflow) RemoveNode(ctx context.Context, workflowID, nodeID string) (bool, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return false, err
	}

	if !removeNodeFromWorkflow(workflow, nodeID) {
		return false, nil
	}

	w.touch(workflow, false)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return false, fmt.Errorf("failed to remove node: %w", err)
	}

	return true, nil
}

// AddConnection validates the three structural gates in order (self-loop,
// duplicate, cycle) and persists the edge. A violating request returns nil
// with a warning log; the caller must check for nil.
func (w *Workflow) AddConnection(ctx context.Context, workflowID string, conn models.Connection) (*models.Connection, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if conn.FromPort == "" {
		conn.FromPort = models.PortOutput
	}

	if conn.ToPort == "" {
		conn.ToPort = models.PortInput
	}

	if conn.FromNodeID == conn.ToNodeID {
		w.logger.Warn("Rejected self-connection", "workflow_id", workflowID, "node_id", conn.FromNodeID)

		return nil, nil
	}

	if graph.IsDuplicateConnection(workflow, conn.FromNodeID, conn.ToNodeID, conn.FromPort) {
		w.logger.Warn("Rejected duplicate connection",
			"workflow_id", workflowID, "from", conn.FromNodeID, "to", conn.ToNodeID, "port", conn.FromPort)

		return nil, nil
	}

	if graph.WouldCreateCycle(workflow, conn.FromNodeID, conn.ToNodeID) {
		w.logger.Warn("Rejected connection that would create a cycle",
			"workflow_id", workflowID, "from", conn.FromNodeID, "to", conn.ToNodeID)

		return nil, nil
	}

	if conn.ID == "" {
		conn.ID = uuid.New().String()
	}

	workflow.Connections = append(workflow.Connections, &conn)
	w.touch(workflow, false)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}

	return &conn, nil
}

// RemoveConnection deletes a connection by id, returning false for an
// unknown id.
func (w *Workflow) RemoveConnection(ctx context.Context, workflowID, connectionID string) (bool, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return false, err
	}

	kept := workflow.Connections[:0]

	for _, conn := range workflow.Connections {
		if conn.ID != connectionID {
			kept = append(kept, conn)
		}
	}

	if len(kept) == len(workflow.Connections) {
		return false, nil
	}

	workflow.Connections = kept
	w.touch(workflow, false)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return false, fmt.Errorf("failed to remove connection: %w", err)
	}

	return true, nil
}

func removeNodeFromWorkflow(workflow *models.Workflow, nodeID string) bool {
	nodes := workflow.Nodes[:0]
	removed := false

	for _, node := range workflow.Nodes {
		if node.ID == nodeID {
			removed = true

			continue
		}

		nodes = append(nodes, node)
	}

	if !removed {
		return false
	}

	workflow.Nodes = nodes

	connections := workflow.Connections[:0]

	for _, conn := range workflow.Connections {
		if conn.FromNodeID == nodeID || conn.ToNodeID == nodeID {
			continue
		}

		connections = append(connections, conn)
	}

	workflow.Connections = connections

	return true
}

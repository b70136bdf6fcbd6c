// Package models defines the core domain models for node-based workflow automation.
package models

import "time"

// NodeType is the coarse discriminant for a workflow node.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"   // Graph entry point, bound to a domain event type
	NodeTypeAction    NodeType = "action"    // Effectful step
	NodeTypeCondition NodeType = "condition" // Branching step with ja/nein output ports
)

// Reserved port names. Condition nodes route through the ja/nein ports,
// every other node uses the default output port.
const (
	PortOutput = "output"
	PortInput  = "input"
	PortJa     = "ja"
	PortNein   = "nein"
)

// Position is a 2D layout hint for visual editors. It has no effect on
// execution.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node represents a single step in a workflow graph. Action holds the
// catalog key identifying the node behavior; Type is derived from the
// catalog definition when the node is added.
type Node struct {
	ID       string         `json:"id"       validate:"required"`
	Type     NodeType       `json:"type"     validate:"required,oneof=trigger action condition"`
	Action   string         `json:"action"   validate:"required"`
	Config   map[string]any `json:"config"`
	Position Position       `json:"position"`
	Label    string         `json:"label"`
}

// Connection is a directed edge between two node ports.
type Connection struct {
	ID         string `json:"id"`
	FromNodeID string `json:"from_node_id" validate:"required"`
	ToNodeID   string `json:"to_node_id"   validate:"required"`
	FromPort   string `json:"from_port"`
	ToPort     string `json:"to_port"`
	Label      string `json:"label,omitempty"`
}

// Workflow is a user-authored automation graph of nodes and connections.
type Workflow struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"        validate:"required,min=1"`
	Description string        `json:"description"`
	Nodes       []*Node       `json:"nodes"`
	Connections []*Connection `json:"connections"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	LastRun     *time.Time    `json:"last_run,omitempty"`
	RunCount    int           `json:"run_count"`
	Version     int           `json:"version"`
}

// TriggerNode returns the workflow's unique trigger node, or nil when the
// workflow has none.
func (w *Workflow) TriggerNode() *Node {
	for _, node := range w.Nodes {
		if node.Type == NodeTypeTrigger {
			return node
		}
	}

	return nil
}

// NodeByID returns the node with the given id, or nil.
func (w *Workflow) NodeByID(id string) *Node {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// ConnectionsFrom returns every connection whose source is the given node,
// in declaration order. The stable order is what makes the depth-first walk
// deterministic.
func (w *Workflow) ConnectionsFrom(nodeID string) []*Connection {
	var out []*Connection

	for _, conn := range w.Connections {
		if conn.FromNodeID == nodeID {
			out = append(out, conn)
		}
	}

	return out
}

// ConnectionFromPort returns the single outgoing connection leaving nodeID
// through the named port, or nil when that port is unconnected.
func (w *Workflow) ConnectionFromPort(nodeID, port string) *Connection {
	for _, conn := range w.Connections {
		if conn.FromNodeID == nodeID && conn.FromPort == port {
			return conn
		}
	}

	return nil
}

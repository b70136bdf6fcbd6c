package models

import "time"

// ExecutionStatus is the lifecycle state of one workflow run. Runs are
// terminal after completed or error; there are no retries or resumptions.
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusError     ExecutionStatus = "error"
)

// NodeStatus is the outcome of a single node visit.
type NodeStatus string

const (
	NodeStatusSuccess NodeStatus = "success"
	NodeStatusError   NodeStatus = "error"
)

// NodeResult is one entry in an execution trace.
type NodeResult struct {
	NodeID    string         `json:"node_id"`
	NodeLabel string         `json:"node_label"`
	Action    string         `json:"action"`
	Status    NodeStatus     `json:"status"`
	Result    map[string]any `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	Duration  int64          `json:"duration_ms"`
	Timestamp time.Time      `json:"timestamp"`
}

// Execution records one run of a workflow from its trigger, with an ordered
// trace of per-node results. WorkflowName is a denormalized snapshot so the
// history stays readable after the workflow is renamed or deleted.
type Execution struct {
	ID           string          `json:"id"`
	WorkflowID   string          `json:"workflow_id"`
	WorkflowName string          `json:"workflow_name"`
	Status       ExecutionStatus `json:"status"`
	TriggerData  map[string]any  `json:"trigger_data,omitempty"`
	NodeResults  []NodeResult    `json:"node_results"`
	Error        string          `json:"error,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}

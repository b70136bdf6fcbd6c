// Package events defines the domain events exchanged between receivers,
// the scheduler and the dispatcher.
package events

import (
	"time"
)

const (
	// Topic is the single event topic all domain events travel on.
	Topic = "flowd.events"

	// EventTypeMetadataKey carries the event type in message metadata so
	// consumers can route without unmarshalling the payload.
	EventTypeMetadataKey = "event_type"
)

// PayloadWorkflowID is the payload key schedule events use to address a
// single workflow.
const PayloadWorkflowID = "workflow_id"

// DomainEvent is a business occurrence that may start workflows, such as a
// new anfrage or an overdue rechnung. The Type matches the event type bound
// to a trigger kind in the catalog.
type DomainEvent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

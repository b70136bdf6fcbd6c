// Package dispatcher matches incoming domain events against active workflows
// and starts one execution per match.
package dispatcher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/events"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
)

// Executor starts a workflow run. Satisfied by engine.Engine.
type Executor interface {
	ExecuteWorkflow(ctx context.Context, workflowID string, triggerData map[string]any) (*models.Execution, error)
}

type Dispatcher struct {
	persistence persistence.Persistence
	executor    Executor
	catalog     *catalog.Catalog
	logger      *slog.Logger

	wg sync.WaitGroup
}

func NewDispatcher(
	persistence persistence.Persistence,
	executor Executor,
	cat *catalog.Catalog,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		persistence: persistence,
		executor:    executor,
		catalog:     cat,
		logger:      logger.With("module", "dispatcher"),
	}
}

// HandleEvent starts an execution for every active workflow whose trigger
// listens for eventType and returns how many were started. Each run happens
// on its own goroutine; a failing run is logged and never affects the
// others.
func (d *Dispatcher) HandleEvent(ctx context.Context, eventType string, payload map[string]any) int {
	workflows, err := d.persistence.Workflows(ctx)
	if err != nil {
		d.logger.Error("Failed to load workflows", "error", err)

		return 0
	}

	started := 0

	for _, workflow := range workflows {
		if !d.matches(workflow, eventType, payload) {
			continue
		}

		started++

		d.logger.Info("Event matched workflow",
			"event_type", eventType,
			"workflow_id", workflow.ID,
			"workflow_name", workflow.Name,
		)

		d.wg.Add(1)

		go func(workflowID string) {
			defer d.wg.Done()

			_, err := d.executor.ExecuteWorkflow(context.WithoutCancel(ctx), workflowID, payload)
			if err != nil {
				d.logger.Error("Workflow execution failed",
					"workflow_id", workflowID,
					"event_type", eventType,
					"error", err,
				)
			}
		}(workflow.ID)
	}

	return started
}

// HandleBusEvent adapts HandleEvent to the event bus handler signature.
func (d *Dispatcher) HandleBusEvent(ctx context.Context, event events.DomainEvent) error {
	d.HandleEvent(ctx, event.Type, event.Payload)

	return nil
}

// Drain blocks until all in-flight executions finish.
func (d *Dispatcher) Drain() {
	d.wg.Wait()
}

func (d *Dispatcher) matches(workflow *models.Workflow, eventType string, payload map[string]any) bool {
	if !workflow.IsActive {
		return false
	}

	trigger := workflow.TriggerNode()
	if trigger == nil {
		return false
	}

	triggerEventType, ok := d.catalog.EventType(trigger.Action)
	if !ok || triggerEventType != eventType {
		return false
	}

	// Schedule events are addressed to one workflow; everything else fans
	// out to all listeners.
	if eventType == catalog.EventSchedule {
		workflowID, _ := payload[events.PayloadWorkflowID].(string)

		return workflowID == workflow.ID
	}

	return true
}

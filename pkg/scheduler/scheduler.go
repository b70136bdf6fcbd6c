// Package scheduler turns schedule trigger nodes into cron entries that
// publish schedule events addressed to their workflow.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/eventbus"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/events"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
)

// Scheduler keeps one cron entry per active workflow with a schedule
// trigger. It implements services.Timers so workflow activation and
// deactivation keep the entries in sync.
type Scheduler struct {
	publisher eventbus.EventPublisher
	logger    *slog.Logger
	cron      *cron.Cron
	entries   map[string]cron.EntryID // workflow id -> cron entry
	mutex     sync.Mutex
}

func NewScheduler(publisher eventbus.EventPublisher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		publisher: publisher,
		logger:    logger.With("module", "scheduler"),
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		)),
		entries: make(map[string]cron.EntryID),
	}
}

// Start loads the currently active workflows and begins firing schedule
// events.
func (s *Scheduler) Start(ctx context.Context, p persistence.Persistence) error {
	workflows, err := p.Workflows(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workflows: %w", err)
	}

	for _, workflow := range workflows {
		if !workflow.IsActive {
			continue
		}

		if err := s.Activate(workflow); err != nil {
			s.logger.Error("Failed to schedule workflow", "workflow_id", workflow.ID, "error", err)
		}
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", "entries", len(s.entries))

	return nil
}

// Activate registers a cron entry for the workflow's schedule trigger, if it
// has one. Re-activating replaces any previous entry, so edited cron
// expressions take effect.
func (s *Scheduler) Activate(workflow *models.Workflow) error {
	trigger := workflow.TriggerNode()
	if trigger == nil || trigger.Action != catalog.TriggerSchedule {
		return nil
	}

	cronExpr, _ := trigger.Config["cron"].(string)
	if cronExpr == "" {
		return fmt.Errorf("workflow %s has a schedule trigger without a cron expression", workflow.ID)
	}

	if _, err := cron.ParseStandard(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	s.Deactivate(workflow.ID)

	workflowID := workflow.ID
	entryID, err := s.cron.AddFunc(cronExpr, func() {
		s.fire(workflowID, cronExpr)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron entry: %w", err)
	}

	s.mutex.Lock()
	s.entries[workflowID] = entryID
	s.mutex.Unlock()

	s.logger.Info("Scheduled workflow", "workflow_id", workflowID, "cron", cronExpr)

	return nil
}

// Deactivate removes the workflow's cron entry, if any.
func (s *Scheduler) Deactivate(workflowID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entryID, ok := s.entries[workflowID]
	if !ok {
		return
	}

	s.cron.Remove(entryID)
	delete(s.entries, workflowID)

	s.logger.Info("Unscheduled workflow", "workflow_id", workflowID)
}

func (s *Scheduler) fire(workflowID, cronExpr string) {
	event := events.DomainEvent{
		Type: catalog.EventSchedule,
		Payload: map[string]any{
			events.PayloadWorkflowID: workflowID,
			"cron":                   cronExpr,
			"timestamp":              time.Now().UTC().Format(time.RFC3339),
		},
	}

	if err := s.publisher.Publish(context.Background(), event); err != nil {
		s.logger.Error("Failed to publish schedule event", "workflow_id", workflowID, "error", err)
	}
}

func (s *Scheduler) Stop(_ context.Context) error {
	s.logger.Info("Stopping scheduler")

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	s.mutex.Lock()
	s.entries = make(map[string]cron.EntryID)
	s.mutex.Unlock()

	return nil
}

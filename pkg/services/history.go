package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
)

// MaxHistoryEntries bounds the execution history; the oldest entry is
// evicted first when the buffer is full.
const MaxHistoryEntries = 200

// History is the process-wide execution history service. Entries are stored
// newest first with no per-workflow partitioning beyond the workflow id
// filter at read time.
type History struct {
	persistence persistence.Persistence
	mu          sync.Mutex
}

func NewHistory(p persistence.Persistence) *History {
	return &History{persistence: p}
}

// Append prepends the execution, trims the buffer to MaxHistoryEntries, and
// persists. Concurrent executions appending are serialized here so the
// read-modify-write on the shared list does not race.
func (h *History) Append(ctx context.Context, execution *models.Execution) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	executions, err := h.persistence.Executions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load execution history: %w", err)
	}

	executions = append([]*models.Execution{execution}, executions...)

	if len(executions) > MaxHistoryEntries {
		executions = executions[:MaxHistoryEntries]
	}

	if err := h.persistence.SaveExecutions(ctx, executions); err != nil {
		return fmt.Errorf("failed to save execution history: %w", err)
	}

	return nil
}

// List returns the history newest first, optionally filtered by workflow
// id.
func (h *History) List(ctx context.Context, workflowID string) ([]*models.Execution, error) {
	executions, err := h.persistence.Executions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load execution history: %w", err)
	}

	if workflowID == "" {
		return executions, nil
	}

	filtered := make([]*models.Execution, 0, len(executions))

	for _, execution := range executions {
		if execution.WorkflowID == workflowID {
			filtered = append(filtered, execution)
		}
	}

	return filtered, nil
}

// Package file provides file-based persistence for workflows and execution
// history. Each collection lives in its own JSON file under the root
// directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
)

const (
	workflowsFile  = "workflows.json"
	executionsFile = "executions.json"
)

// Persistence implements persistence.Persistence on the file system. A
// single mutex serializes all reads and writes; concurrent executions
// appending history share this persistence and must not interleave file
// writes.
type Persistence struct {
	root string
	mu   sync.Mutex
}

// NewPersistence creates a file persistence rooted at the given directory,
// accepting both plain paths and file:// URLs.
func NewPersistence(root string) (*Persistence, error) {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	if err := os.MkdirAll(cleanRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create persistence root %s: %w", cleanRoot, err)
	}

	return &Persistence{root: cleanRoot}, nil
}

func (p *Persistence) Workflows(_ context.Context) ([]*models.Workflow, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var workflows []*models.Workflow
	if err := p.readFile(workflowsFile, &workflows); err != nil {
		return nil, err
	}

	return workflows, nil
}

func (p *Persistence) WorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflows, err := p.Workflows(ctx)
	if err != nil {
		return nil, err
	}

	for _, workflow := range workflows {
		if workflow.ID == id {
			return workflow, nil
		}
	}

	return nil, persistence.ErrWorkflowNotFound
}

func (p *Persistence) SaveWorkflow(_ context.Context, workflow *models.Workflow) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var workflows []*models.Workflow
	if err := p.readFile(workflowsFile, &workflows); err != nil {
		return err
	}

	replaced := false

	for i, existing := range workflows {
		if existing.ID == workflow.ID {
			workflows[i] = workflow
			replaced = true

			break
		}
	}

	if !replaced {
		workflows = append(workflows, workflow)
	}

	return p.writeFile(workflowsFile, workflows)
}

func (p *Persistence) DeleteWorkflow(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var workflows []*models.Workflow
	if err := p.readFile(workflowsFile, &workflows); err != nil {
		return err
	}

	kept := workflows[:0]

	for _, workflow := range workflows {
		if workflow.ID != id {
			kept = append(kept, workflow)
		}
	}

	if len(kept) == len(workflows) {
		return persistence.ErrWorkflowNotFound
	}

	return p.writeFile(workflowsFile, kept)
}

func (p *Persistence) Executions(_ context.Context) ([]*models.Execution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var executions []*models.Execution
	if err := p.readFile(executionsFile, &executions); err != nil {
		return nil, err
	}

	return executions, nil
}

func (p *Persistence) SaveExecutions(_ context.Context, executions []*models.Execution) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.writeFile(executionsFile, executions)
}

func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	return nil
}

func (p *Persistence) readFile(name string, target any) error {
	data, err := os.ReadFile(filepath.Join(p.root, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return nil
}

func (p *Persistence) writeFile(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(p.root, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return os.Rename(tmp, path)
}

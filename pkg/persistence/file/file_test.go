package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
)

func newTestPersistence(t *testing.T) *Persistence {
	t.Helper()

	p, err := NewPersistence(t.TempDir())
	require.NoError(t, err)

	return p
}

func TestWorkflowRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newTestPersistence(t)

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Angebotsprozess",
		Nodes: []*models.Node{
			{ID: "n1", Type: models.NodeTypeTrigger, Action: "anfrage_created"},
		},
	}

	require.NoError(t, p.SaveWorkflow(ctx, workflow))

	loaded, err := p.WorkflowByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Angebotsprozess", loaded.Name)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, models.NodeTypeTrigger, loaded.Nodes[0].Type)
}

func TestSaveWorkflowReplacesExisting(t *testing.T) {
	ctx := context.Background()
	p := newTestPersistence(t)

	require.NoError(t, p.SaveWorkflow(ctx, &models.Workflow{ID: "wf-1", Name: "Alt"}))
	require.NoError(t, p.SaveWorkflow(ctx, &models.Workflow{ID: "wf-1", Name: "Neu"}))

	workflows, err := p.Workflows(ctx)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, "Neu", workflows[0].Name)
}

func TestWorkflowByIDNotFound(t *testing.T) {
	p := newTestPersistence(t)

	_, err := p.WorkflowByID(context.Background(), "missing")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestDeleteWorkflow(t *testing.T) {
	ctx := context.Background()
	p := newTestPersistence(t)

	require.NoError(t, p.SaveWorkflow(ctx, &models.Workflow{ID: "wf-1", Name: "X"}))
	require.NoError(t, p.DeleteWorkflow(ctx, "wf-1"))

	err := p.DeleteWorkflow(ctx, "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestExecutionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newTestPersistence(t)

	executions, err := p.Executions(ctx)
	require.NoError(t, err)
	assert.Empty(t, executions)

	require.NoError(t, p.SaveExecutions(ctx, []*models.Execution{
		{ID: "exec-1", WorkflowID: "wf-1", Status: models.ExecutionStatusCompleted},
	}))

	executions, err = p.Executions(ctx)
	require.NoError(t, err)
	require.Len(t, executions, 1)
	assert.Equal(t, "exec-1", executions[0].ID)
}

func TestRecordsRoundTrip(t *testing.T) {
	p := newTestPersistence(t)

	records, err := p.Records()
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, p.SaveRecords(map[string][]map[string]any{
		"angebote": {{"id": "ang-1", "status": "offen"}},
	}))

	records, err = p.Records()
	require.NoError(t, err)
	require.Len(t, records["angebote"], 1)
	assert.Equal(t, "ang-1", records["angebote"][0]["id"])
}

func TestFileURLPrefix(t *testing.T) {
	dir := t.TempDir()

	p, err := NewPersistence("file://" + dir)
	require.NoError(t, err)
	assert.NoError(t, p.HealthCheck(context.Background()))
}

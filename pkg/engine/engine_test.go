package engine

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence/file"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/registry"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/services"
)

func newTestEngine(t *testing.T) (*Engine, persistence.Persistence, *collab.RecordStore, *services.History) {
	t.Helper()

	p, err := file.NewPersistence(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	records := collab.NewRecordStore(nil)

	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultActions(records, collab.Services{})

	history := services.NewHistory(p)

	return NewEngine(p, reg, history, logger, nil), p, records, history
}

func saveWorkflow(t *testing.T, p persistence.Persistence, workflow *models.Workflow) {
	t.Helper()
	require.NoError(t, p.SaveWorkflow(context.Background(), workflow))
}

func anfrageTriggerData() map[string]any {
	return map[string]any{
		"record": map[string]any{
			"id":    "anf-1",
			"kunde": "Firma Meier",
			"email": "meier@example.com",
			"positionen": []any{
				map[string]any{"beschreibung": "Dachziegel", "menge": float64(100), "preis": float64(2.5)},
			},
		},
	}
}

func TestExecuteWorkflowHappyPath(t *testing.T) {
	ctx := context.Background()
	eng, p, records, history := newTestEngine(t)

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Angebotsprozess",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerAnfrageCreated, Label: "Neue Anfrage"},
			{ID: "q", Type: models.NodeTypeAction, Action: catalog.ActionCreateQuote, Config: map[string]any{}, Label: "Angebot erstellen"},
			{ID: "m", Type: models.NodeTypeAction, Action: catalog.ActionSendEmail, Config: map[string]any{
				"empfaenger": "{{anfrage.email}}",
				"betreff":    "Angebot für {{anfrage.kunde}}",
				"text":       "Ihr Angebot {{angebot.id}}",
			}, Label: "E-Mail senden"},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "q", FromPort: models.PortOutput, ToPort: models.PortInput},
			{ID: "c2", FromNodeID: "q", ToNodeID: "m", FromPort: models.PortOutput, ToPort: models.PortInput},
		},
		IsActive: true,
	}
	saveWorkflow(t, p, workflow)

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", anfrageTriggerData())
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionStatusCompleted, execution.Status)
	require.Len(t, execution.NodeResults, 3)
	assert.Equal(t, "t", execution.NodeResults[0].NodeID)
	assert.Equal(t, "q", execution.NodeResults[1].NodeID)
	assert.Equal(t, "m", execution.NodeResults[2].NodeID)

	for _, result := range execution.NodeResults {
		assert.Equal(t, models.NodeStatusSuccess, result.Status)
	}

	// The quote landed in the record store.
	angebote := records.Records(collab.CollectionAngebote)
	require.Len(t, angebote, 1)
	assert.Equal(t, "Firma Meier", angebote[0]["kunde"])
	assert.Equal(t, "offen", angebote[0]["status"])

	// Run statistics are updated on success.
	loaded, err := p.WorkflowByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.RunCount)
	assert.NotNil(t, loaded.LastRun)

	// And the execution is on the history.
	executions, err := history.List(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, executions, 1)
	assert.Equal(t, execution.ID, executions[0].ID)
}

func TestExecuteWorkflowFullChain(t *testing.T) {
	ctx := context.Background()
	eng, p, records, _ := newTestEngine(t)

	// Request to quote to email to order to invoice, in one straight chain.
	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Komplettprozess",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerAnfrageCreated},
			{ID: "q", Type: models.NodeTypeAction, Action: catalog.ActionCreateQuote, Config: map[string]any{}},
			{ID: "m", Type: models.NodeTypeAction, Action: catalog.ActionSendEmail, Config: map[string]any{
				"empfaenger": "{{record.email}}",
				"betreff":    "Ihr Angebot {{angebot.id}}",
			}},
			{ID: "o", Type: models.NodeTypeAction, Action: catalog.ActionCreateOrder, Config: map[string]any{}},
			{ID: "r", Type: models.NodeTypeAction, Action: catalog.ActionCreateInvoice, Config: map[string]any{}},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "q", FromPort: models.PortOutput},
			{ID: "c2", FromNodeID: "q", ToNodeID: "m", FromPort: models.PortOutput},
			{ID: "c3", FromNodeID: "m", ToNodeID: "o", FromPort: models.PortOutput},
			{ID: "c4", FromNodeID: "o", ToNodeID: "r", FromPort: models.PortOutput},
		},
	}
	saveWorkflow(t, p, workflow)

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", anfrageTriggerData())
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionStatusCompleted, execution.Status)
	require.Len(t, execution.NodeResults, 5)

	for _, result := range execution.NodeResults {
		assert.Equal(t, models.NodeStatusSuccess, result.Status, result.NodeID)
	}

	// Each record collection got its entry.
	assert.Len(t, records.Records(collab.CollectionAngebote), 1)
	assert.Len(t, records.Records(collab.CollectionAuftraege), 1)
	assert.Len(t, records.Records(collab.CollectionRechnungen), 1)

	// The invoice references the order created two nodes earlier.
	auftrag := records.Records(collab.CollectionAuftraege)[0]
	rechnung := records.Records(collab.CollectionRechnungen)[0]
	assert.Equal(t, auftrag["id"], rechnung["auftragId"])
}

func TestExecuteWorkflowWithoutTrigger(t *testing.T) {
	ctx := context.Background()
	eng, p, _, _ := newTestEngine(t)

	saveWorkflow(t, p, &models.Workflow{
		ID:    "wf-1",
		Name:  "Kaputt",
		Nodes: []*models.Node{{ID: "q", Type: models.NodeTypeAction, Action: catalog.ActionCreateQuote}},
	})

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTrigger)
	assert.Equal(t, models.ExecutionStatusError, execution.Status)
}

func TestExecuteWorkflowUnknownID(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	execution, err := eng.ExecuteWorkflow(context.Background(), "missing", nil)
	assert.Error(t, err)
	assert.Nil(t, execution)
}

func TestConditionRoutesJaBranch(t *testing.T) {
	ctx := context.Background()
	eng, p, _, _ := newTestEngine(t)

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Bedingung",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerManual},
			{ID: "c", Type: models.NodeTypeCondition, Action: catalog.ActionCondition, Config: map[string]any{
				"feld":     "record.status",
				"operator": catalog.OperatorGleich,
				"wert":     "offen",
			}},
			{ID: "ja", Type: models.NodeTypeAction, Action: catalog.ActionSendNotification, Config: map[string]any{}},
			{ID: "nein", Type: models.NodeTypeAction, Action: catalog.ActionSendNotification, Config: map[string]any{}},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "c", FromPort: models.PortOutput},
			{ID: "c2", FromNodeID: "c", ToNodeID: "ja", FromPort: models.PortJa},
			{ID: "c3", FromNodeID: "c", ToNodeID: "nein", FromPort: models.PortNein},
		},
	}
	saveWorkflow(t, p, workflow)

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", map[string]any{
		"record": map[string]any{"status": "offen"},
	})
	require.NoError(t, err)

	require.Len(t, execution.NodeResults, 3)
	assert.Equal(t, "ja", execution.NodeResults[2].NodeID)

	execution, err = eng.ExecuteWorkflow(ctx, "wf-1", map[string]any{
		"record": map[string]any{"status": "bezahlt"},
	})
	require.NoError(t, err)

	require.Len(t, execution.NodeResults, 3)
	assert.Equal(t, "nein", execution.NodeResults[2].NodeID)
}

func TestConditionUnconnectedPortEndsBranchSilently(t *testing.T) {
	ctx := context.Background()
	eng, p, _, _ := newTestEngine(t)

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Halboffen",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerManual},
			{ID: "c", Type: models.NodeTypeCondition, Action: catalog.ActionCondition, Config: map[string]any{
				"feld":     "record.status",
				"operator": catalog.OperatorGleich,
				"wert":     "offen",
			}},
			{ID: "ja", Type: models.NodeTypeAction, Action: catalog.ActionSendNotification, Config: map[string]any{}},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "c", FromPort: models.PortOutput},
			{ID: "c2", FromNodeID: "c", ToNodeID: "ja", FromPort: models.PortJa},
		},
	}
	saveWorkflow(t, p, workflow)

	// Condition not met and the nein port is unconnected: the run still
	// completes.
	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", map[string]any{
		"record": map[string]any{"status": "storniert"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionStatusCompleted, execution.Status)
	assert.Len(t, execution.NodeResults, 2)
}

func TestFanOutRunsSubtreesSequentially(t *testing.T) {
	ctx := context.Background()
	eng, p, _, _ := newTestEngine(t)

	// t fans out to b and c; b has a child d. Expected order: t, b, d, c.
	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Verzweigt",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerManual},
			{ID: "b", Type: models.NodeTypeAction, Action: catalog.ActionSendNotification, Config: map[string]any{}},
			{ID: "c", Type: models.NodeTypeAction, Action: catalog.ActionSendNotification, Config: map[string]any{}},
			{ID: "d", Type: models.NodeTypeAction, Action: catalog.ActionSendNotification, Config: map[string]any{}},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "b", FromPort: models.PortOutput},
			{ID: "c2", FromNodeID: "t", ToNodeID: "c", FromPort: models.PortOutput},
			{ID: "c3", FromNodeID: "b", ToNodeID: "d", FromPort: models.PortOutput},
		},
	}
	saveWorkflow(t, p, workflow)

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", nil)
	require.NoError(t, err)

	require.Len(t, execution.NodeResults, 4)

	order := make([]string, 0, 4)
	for _, result := range execution.NodeResults {
		order = append(order, result.NodeID)
	}

	assert.Equal(t, []string{"t", "b", "d", "c"}, order)
}

func TestAIGenerateWithoutProviderAbortsRun(t *testing.T) {
	ctx := context.Background()
	eng, p, _, _ := newTestEngine(t)

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "KI",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerManual},
			{ID: "ki", Type: models.NodeTypeAction, Action: catalog.ActionAIGenerate, Config: map[string]any{
				"prompt": "Schreibe eine Angebotsmail",
			}},
			{ID: "m", Type: models.NodeTypeAction, Action: catalog.ActionSendEmail, Config: map[string]any{}},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "ki", FromPort: models.PortOutput},
			{ID: "c2", FromNodeID: "ki", ToNodeID: "m", FromPort: models.PortOutput},
		},
	}
	saveWorkflow(t, p, workflow)

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", nil)
	require.Error(t, err)

	assert.Equal(t, models.ExecutionStatusError, execution.Status)
	require.Len(t, execution.NodeResults, 2)
	assert.Equal(t, models.NodeStatusError, execution.NodeResults[1].Status)
	assert.NotEmpty(t, execution.NodeResults[1].Error)

	// Downstream of the failing node never ran, and no run statistics were
	// recorded.
	loaded, err := p.WorkflowByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Zero(t, loaded.RunCount)
	assert.Nil(t, loaded.LastRun)
}

func TestUnregisteredActionIsSkippedNotFatal(t *testing.T) {
	ctx := context.Background()
	eng, p, _, _ := newTestEngine(t)

	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Zukunft",
		Nodes: []*models.Node{
			{ID: "t", Type: models.NodeTypeTrigger, Action: catalog.TriggerManual},
			{ID: "x", Type: models.NodeTypeAction, Action: "not-yet-invented", Config: map[string]any{}},
		},
		Connections: []*models.Connection{
			{ID: "c1", FromNodeID: "t", ToNodeID: "x", FromPort: models.PortOutput},
		},
	}
	saveWorkflow(t, p, workflow)

	execution, err := eng.ExecuteWorkflow(ctx, "wf-1", nil)
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionStatusCompleted, execution.Status)
	require.Len(t, execution.NodeResults, 2)
	assert.Equal(t, models.NodeStatusSuccess, execution.NodeResults[1].Status)
	assert.Equal(t, true, execution.NodeResults[1].Result["skipped"])
}

package invoice

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	records := collab.NewRecordStore(nil)
	action := NewAction(records)

	execCtx := models.NewExecutionContext(nil)
	execCtx.Variables["auftrag"] = map[string]any{
		"id":    "auf-1",
		"kunde": "Firma Meier",
		"positionen": []any{
			map[string]any{"menge": float64(100), "preis": float64(2.5)},
			map[string]any{"menge": float64(2), "preis": float64(374.99)},
		},
	}

	result, err := action.Execute(context.Background(), map[string]any{}, execCtx, testLogger())
	require.NoError(t, err)
	assert.Equal(t, true, result[protocol.ResultSuccess])

	rechnungen := records.Records(collab.CollectionRechnungen)
	require.Len(t, rechnungen, 1)

	rechnung := rechnungen[0]
	assert.Equal(t, "auf-1", rechnung["auftragId"])
	assert.Equal(t, 999.98, rechnung["netto"])
	assert.Equal(t, 190.0, rechnung["mwst"])
	assert.Equal(t, 1189.98, rechnung["brutto"])
	assert.Equal(t, "offen", rechnung["status"])

	// Rounded totals always add up.
	netto := rechnung["netto"].(float64)
	mwst := rechnung["mwst"].(float64)
	brutto := rechnung["brutto"].(float64)
	assert.InDelta(t, netto+mwst, brutto, 0.001)

	// Downstream nodes can reach the invoice.
	assert.Equal(t, rechnung, execCtx.Variables["rechnung"])
}

func TestCreateInvoiceWithoutOrder(t *testing.T) {
	action := NewAction(collab.NewRecordStore(nil))

	result, err := action.Execute(context.Background(), map[string]any{}, models.NewExecutionContext(nil), testLogger())
	require.NoError(t, err)

	assert.Equal(t, false, result[protocol.ResultSuccess])
	assert.Equal(t, "kein Auftrag im Kontext", result[protocol.ResultError])
}

func TestCreateInvoiceWithoutLineItems(t *testing.T) {
	action := NewAction(collab.NewRecordStore(nil))

	execCtx := models.NewExecutionContext(nil)
	execCtx.Variables["auftrag"] = map[string]any{"id": "auf-1", "positionen": []any{}}

	result, err := action.Execute(context.Background(), map[string]any{}, execCtx, testLogger())
	require.NoError(t, err)

	assert.Equal(t, false, result[protocol.ResultSuccess])
}

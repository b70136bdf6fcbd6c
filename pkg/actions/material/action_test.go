package material

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

type recordingInventory struct {
	materialID string
	quantity   float64
	orderID    string
	err        error
}

func (i *recordingInventory) ReserveMaterial(_ context.Context, materialID string, quantity float64, orderID string) error {
	i.materialID = materialID
	i.quantity = quantity
	i.orderID = orderID

	return i.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestReserveMaterialForOrder(t *testing.T) {
	inventory := &recordingInventory{}
	action := NewAction(inventory)

	execCtx := models.NewExecutionContext(nil)
	execCtx.Variables["auftrag"] = map[string]any{"id": "auf-1"}

	result, err := action.Execute(context.Background(), map[string]any{
		"materialId": "mat-7",
		"menge":      float64(12),
	}, execCtx, testLogger())

	require.NoError(t, err)
	assert.Equal(t, true, result[protocol.ResultSuccess])
	assert.Equal(t, "mat-7", inventory.materialID)
	assert.Equal(t, float64(12), inventory.quantity)
	assert.Equal(t, "auf-1", inventory.orderID)
}

func TestReserveMaterialQuantityDefaultsToOne(t *testing.T) {
	inventory := &recordingInventory{}
	action := NewAction(inventory)

	result, err := action.Execute(context.Background(), map[string]any{
		"materialId": "mat-7",
	}, models.NewExecutionContext(nil), testLogger())

	require.NoError(t, err)
	assert.Equal(t, true, result[protocol.ResultSuccess])
	assert.Equal(t, float64(1), inventory.quantity)
	assert.Equal(t, float64(1), result["menge"])
}

func TestReserveMaterialWithoutMaterialID(t *testing.T) {
	action := NewAction(&recordingInventory{})

	result, err := action.Execute(context.Background(), map[string]any{},
		models.NewExecutionContext(nil), testLogger())

	require.NoError(t, err)
	assert.Equal(t, false, result[protocol.ResultSuccess])
	assert.Equal(t, "kein Material konfiguriert", result[protocol.ResultError])
}

func TestReserveMaterialCollaboratorErrorIsSwallowed(t *testing.T) {
	action := NewAction(&recordingInventory{err: errors.New("stock service down")})

	result, err := action.Execute(context.Background(), map[string]any{
		"materialId": "mat-9",
	}, models.NewExecutionContext(nil), testLogger())

	require.NoError(t, err)
	assert.Equal(t, true, result[protocol.ResultSuccess])
}

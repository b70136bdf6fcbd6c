// Package material implements the reserve-material action backed by the
// inventory collaborator.
package material

import (
	"context"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

type Action struct {
	inventory collab.Inventory
}

func NewAction(inventory collab.Inventory) *Action {
	return &Action{inventory: inventory}
}

func (a *Action) Execute(ctx context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	materialID, _ := config["materialId"].(string)
	if materialID == "" {
		return protocol.Failure("kein Material konfiguriert"), nil
	}

	menge, ok := asFloat(config["menge"])
	if !ok || menge <= 0 {
		menge = 1
	}

	orderID := ""
	if auftrag, ok := execCtx.Variables["auftrag"].(map[string]any); ok {
		orderID, _ = auftrag["id"].(string)
	}

	if a.inventory != nil {
		if err := a.inventory.ReserveMaterial(ctx, materialID, menge, orderID); err != nil {
			logger.Error("Inventory collaborator failed, continuing", "error", err)
		}
	} else {
		logger.Info("No inventory collaborator configured, simulating reservation",
			"material_id", materialID, "quantity", menge)
	}

	return map[string]any{
		protocol.ResultSuccess: true,
		"materialId":           materialID,
		"menge":                menge,
		"auftragId":            orderID,
	}, nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

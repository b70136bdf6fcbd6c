// Package order implements the create-order action: it converts the quote
// in the execution context into an order with a computed start date.
package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

const defaultStartOffsetDays = 7

type Action struct {
	records *collab.RecordStore
}

func NewAction(records *collab.RecordStore) *Action {
	return &Action{records: records}
}

func (a *Action) Execute(_ context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	angebot := resolveAngebot(execCtx)
	if angebot == nil {
		logger.Warn("create-order skipped, no quote in context")

		return protocol.Failure("kein Angebot im Kontext"), nil
	}

	offsetDays := defaultStartOffsetDays
	if d, ok := asFloat(config["startOffsetTage"]); ok && d > 0 {
		offsetDays = int(d)
	}

	auftrag := map[string]any{
		"id":         a.records.GenerateID("auf"),
		"angebotId":  angebot["id"],
		"kunde":      angebot["kunde"],
		"positionen": angebot["positionen"],
		"start":      time.Now().AddDate(0, 0, offsetDays).Format("2006-01-02"),
		"status":     "geplant",
	}

	a.records.Append(collab.CollectionAuftraege, auftrag)

	if err := a.records.Save(); err != nil {
		logger.Error("Failed to persist order", "error", err)
	}

	execCtx.Variables["auftrag"] = auftrag

	logger.Info("Created order", "auftrag_id", auftrag["id"])

	return map[string]any{
		protocol.ResultSuccess: true,
		"auftragId":            auftrag["id"],
	}, nil
}

func resolveAngebot(execCtx *models.ExecutionContext) map[string]any {
	if angebot, ok := execCtx.Variables["angebot"].(map[string]any); ok {
		return angebot
	}

	if record, ok := execCtx.TriggerData["record"].(map[string]any); ok {
		return record
	}

	return nil
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

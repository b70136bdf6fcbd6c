// Package quote implements the create-quote action: it turns a request
// record from the execution context into a quote, stores it, and exposes it
// to downstream nodes as the "angebot" variable.
package quote

import (
	"context"
	"log/slog"
	"time"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

const defaultValidityDays = 30

type Action struct {
	records *collab.RecordStore
}

func NewAction(records *collab.RecordStore) *Action {
	return &Action{records: records}
}

func (a *Action) Execute(_ context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	anfrage := resolveAnfrage(execCtx)
	if anfrage == nil {
		logger.Warn("create-quote skipped, no request in context")

		return protocol.Failure("keine Anfrage im Kontext"), nil
	}

	validityDays := defaultValidityDays
	if d, ok := asFloat(config["gueltigkeitTage"]); ok && d > 0 {
		validityDays = int(d)
	}

	rabatt, _ := asFloat(config["rabatt"])

	angebot := map[string]any{
		"id":         a.records.GenerateID("ang"),
		"anfrageId":  anfrage["id"],
		"kunde":      anfrage["kunde"],
		"positionen": anfrage["positionen"],
		"rabatt":     rabatt,
		"gueltigBis": time.Now().AddDate(0, 0, validityDays).Format("2006-01-02"),
		"status":     "offen",
	}

	a.records.Append(collab.CollectionAngebote, angebot)

	if err := a.records.Save(); err != nil {
		logger.Error("Failed to persist quote", "error", err)
	}

	execCtx.Variables["angebot"] = angebot

	logger.Info("Created quote", "angebot_id", angebot["id"])

	return map[string]any{
		protocol.ResultSuccess: true,
		"angebotId":            angebot["id"],
	}, nil
}

// resolveAnfrage finds the request record the quote is based on: an earlier
// node may have put it into the variables, otherwise the trigger payload
// carries it as "record".
func resolveAnfrage(execCtx *models.ExecutionContext) map[string]any {
	if anfrage, ok := execCtx.Variables["anfrage"].(map[string]any); ok {
		return anfrage
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

// Package invoice implements the create-invoice action: it sums the order's
// line items, applies the fixed tax rate, and stores the invoice.
package invoice

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

const (
	taxRate               = 0.19
	defaultPaymentDueDays = 14
)

type Action struct {
	records *collab.RecordStore
}

func NewAction(records *collab.RecordStore) *Action {
	return &Action{records: records}
}

func (a *Action) Execute(_ context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	auftrag := resolveAuftrag(execCtx)
	if auftrag == nil {
		logger.Warn("create-invoice skipped, no order in context")

		return protocol.Failure("kein Auftrag im Kontext"), nil
	}

	positionen, ok := auftrag["positionen"].([]any)
	if !ok || len(positionen) == 0 {
		return protocol.Failure("Auftrag hat keine Positionen"), nil
	}

	netto := 0.0

	for _, raw := range positionen {
		position, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		menge, _ := asFloat(position["menge"])
		preis, _ := asFloat(position["preis"])
		netto += menge * preis
	}

	netto = round2(netto)
	mwst := round2(netto * taxRate)
	brutto := round2(netto + mwst)

	dueDays := defaultPaymentDueDays
	if d, ok := asFloat(config["zahlungszielTage"]); ok && d > 0 {
		dueDays = int(d)
	}

	rechnung := map[string]any{
		"id":        a.records.GenerateID("rg"),
		"auftragId": auftrag["id"],
		"kunde":     auftrag["kunde"],
		"netto":     netto,
		"mwst":      mwst,
		"brutto":    brutto,
		"faellig":   time.Now().AddDate(0, 0, dueDays).Format("2006-01-02"),
		"status":    "offen",
	}

	a.records.Append(collab.CollectionRechnungen, rechnung)

	if err := a.records.Save(); err != nil {
		logger.Error("Failed to persist invoice", "error", err)
	}

	execCtx.Variables["rechnung"] = rechnung

	logger.Info("Created invoice", "rechnung_id", rechnung["id"], "brutto", brutto)

	return map[string]any{
		protocol.ResultSuccess: true,
		"rechnungId":           rechnung["id"],
		"brutto":               brutto,
	}, nil
}

func resolveAuftrag(execCtx *models.ExecutionContext) map[string]any {
	if auftrag, ok := execCtx.Variables["auftrag"].(map[string]any); ok {
		return auftrag
	}

	if record, ok := execCtx.TriggerData["record"].(map[string]any); ok {
		return record
	}

	return nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
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

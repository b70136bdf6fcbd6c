// Package status implements the update-status action: it looks up the
// target record named by the config in the matching collection and mutates
// its status field.
package status

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

// Entity kind in the config to record collection.
var collections = map[string]string{
	"anfrage":  collab.CollectionAnfragen,
	"angebot":  collab.CollectionAngebote,
	"auftrag":  collab.CollectionAuftraege,
	"rechnung": collab.CollectionRechnungen,
}

type Action struct {
	records *collab.RecordStore
}

func NewAction(records *collab.RecordStore) *Action {
	return &Action{records: records}
}

func (a *Action) Execute(_ context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	entity, _ := config["entitaet"].(string)
	newStatus, _ := config["status"].(string)

	collection, ok := collections[entity]
	if !ok {
		return protocol.Failure(fmt.Sprintf("unbekannte Entität %q", entity)), nil
	}

	recordID := resolveRecordID(execCtx, entity)
	if recordID == "" {
		return protocol.Failure(fmt.Sprintf("kein %s im Kontext", entity)), nil
	}

	found := a.records.UpdateByID(collection, recordID, func(record map[string]any) {
		record["status"] = newStatus
	})
	if !found {
		return protocol.Failure(fmt.Sprintf("%s %s nicht gefunden", entity, recordID)), nil
	}

	if err := a.records.Save(); err != nil {
		logger.Error("Failed to persist status update", "error", err)
	}

	logger.Info("Updated record status", "entity", entity, "record_id", recordID, "status", newStatus)

	return map[string]any{
		protocol.ResultSuccess: true,
		"entitaet":             entity,
		"recordId":             recordID,
		"status":               newStatus,
	}, nil
}

// resolveRecordID finds the id of the target record: the context variable
// named like the entity kind wins, the trigger payload's record is the
// fallback.
func resolveRecordID(execCtx *models.ExecutionContext, entity string) string {
	if record, ok := execCtx.Variables[entity].(map[string]any); ok {
		if id, ok := record["id"].(string); ok {
			return id
		}
	}

	if record, ok := execCtx.TriggerData["record"].(map[string]any); ok {
		if id, ok := record["id"].(string); ok {
			return id
		}
	}

	return ""
}

// Package notification implements the send-notification action backed by
// the notifier collaborator.
package notification

import (
	"context"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/template"
)

type Action struct {
	notifier collab.Notifier
}

func NewAction(notifier collab.Notifier) *Action {
	return &Action{notifier: notifier}
}

func (a *Action) Execute(ctx context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	titel := template.Resolve(configString(config, "titel"), execCtx)
	nachricht := template.Resolve(configString(config, "nachricht"), execCtx)

	if a.notifier != nil {
		if err := a.notifier.Notify(ctx, titel, nachricht); err != nil {
			logger.Error("Notifier collaborator failed, continuing", "error", err)
		}
	} else {
		logger.Info("No notifier collaborator configured, simulating notification",
			"title", titel)
	}

	return map[string]any{
		protocol.ResultSuccess: true,
		"titel":                titel,
		"nachricht":            nachricht,
	}, nil
}

func configString(config map[string]any, key string) string {
	s, _ := config[key].(string)

	return s
}

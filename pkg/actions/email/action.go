// Package email implements the send-email action. It resolves {{path}}
// placeholders in the subject and body against the execution context and
// delegates to the email collaborator when one is configured. The action
// never fails a workflow: collaborator errors are swallowed and logged.
package email

import (
	"context"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/template"
)

type Action struct {
	sender collab.EmailSender
}

func NewAction(sender collab.EmailSender) *Action {
	return &Action{sender: sender}
}

func (a *Action) Execute(ctx context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	empfaenger := template.Resolve(configString(config, "empfaenger"), execCtx)
	betreff := template.Resolve(configString(config, "betreff"), execCtx)
	text := template.Resolve(configString(config, "text"), execCtx)
	vorlage := configString(config, "vorlage")

	mail := collab.Email{
		To:       empfaenger,
		Subject:  betreff,
		Body:     text,
		Template: vorlage,
	}

	if a.sender != nil {
		if err := a.sender.SendEmail(ctx, mail); err != nil {
			logger.Error("Email collaborator failed, continuing", "error", err)
		}
	} else {
		logger.Info("No email collaborator configured, simulating send",
			"to", empfaenger, "subject", betreff)
	}

	execCtx.Variables["lastEmail"] = map[string]any{
		"empfaenger": empfaenger,
		"betreff":    betreff,
		"text":       text,
	}

	return map[string]any{
		protocol.ResultSuccess: true,
		"empfaenger":           empfaenger,
		"betreff":              betreff,
	}, nil
}

func configString(config map[string]any, key string) string {
	s, _ := config[key].(string)

	return s
}

// Package aigenerate implements the ai-generate action. Unlike every other
// handler it fails the node when no text-generation collaborator is
// configured or when primary and fallback providers both error: the action
// has no core effect of its own, and storing placeholder text would
// silently corrupt downstream nodes.
package aigenerate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/template"
)

const defaultVariable = "generierterText"

// ErrNoProvider is returned when no text-generation collaborator is
// configured.
var ErrNoProvider = errors.New("no text-generation provider configured")

type Action struct {
	primary  collab.TextGenerator
	fallback collab.TextGenerator
}

func NewAction(primary, fallback collab.TextGenerator) *Action {
	return &Action{primary: primary, fallback: fallback}
}

func (a *Action) Execute(ctx context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	if a.primary == nil && a.fallback == nil {
		return nil, ErrNoProvider
	}

	prompt := template.Resolve(configString(config, "prompt"), execCtx)

	text, err := a.generate(ctx, prompt, logger)
	if err != nil {
		return nil, err
	}

	variable := configString(config, "variable")
	if variable == "" {
		variable = defaultVariable
	}

	execCtx.Variables[variable] = text

	return map[string]any{
		protocol.ResultSuccess: true,
		"variable":             variable,
		"text":                 text,
	}, nil
}

func (a *Action) generate(ctx context.Context, prompt string, logger *slog.Logger) (string, error) {
	var primaryErr error

	if a.primary != nil {
		text, err := a.primary.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		primaryErr = err

		logger.Warn("Primary text provider failed, trying fallback", "error", err)
	}

	if a.fallback != nil {
		text, err := a.fallback.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		if primaryErr != nil {
			return "", fmt.Errorf("both text providers failed: %w; fallback: %w", primaryErr, err)
		}

		return "", fmt.Errorf("text provider failed: %w", err)
	}

	return "", fmt.Errorf("text provider failed: %w", primaryErr)
}

func configString(config map[string]any, key string) string {
	s, _ := config[key].(string)

	return s
}

// Package wait implements the wait action. The sleep is capped at 30
// seconds regardless of the configured duration so that demo and test runs
// stay bounded; a production scheduler would persist a resumption timestamp
// instead of blocking.
package wait

import (
	"context"
	"log/slog"
	"time"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

// MaxDuration bounds every wait.
const MaxDuration = 30 * time.Second

var units = map[string]time.Duration{
	"sekunden": time.Second,
	"minuten":  time.Minute,
	"stunden":  time.Hour,
	"tage":     24 * time.Hour,
}

type Action struct{}

func NewAction() *Action {
	return &Action{}
}

func (a *Action) Execute(ctx context.Context, config map[string]any, _ *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	requested := requestedDuration(config)

	capped := requested
	if capped > MaxDuration {
		capped = MaxDuration

		logger.Warn("Wait duration capped", "requested", requested, "capped", capped)
	}

	start := time.Now()
	waited := capped

	select {
	case <-time.After(capped):
	case <-ctx.Done():
		// Cut short: report how long we actually waited.
		waited = min(time.Since(start), capped)
	}

	return map[string]any{
		protocol.ResultSuccess: true,
		"gewartetMs":           waited.Milliseconds(),
	}, nil
}

func requestedDuration(config map[string]any) time.Duration {
	dauer, ok := asFloat(config["dauer"])
	if !ok || dauer <= 0 {
		return 0
	}

	unit, ok := units[configString(config, "einheit")]
	if !ok {
		unit = time.Second
	}

	return time.Duration(dauer * float64(unit))
}

func configString(config map[string]any, key string) string {
	s, _ := config[key].(string)

	return s
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

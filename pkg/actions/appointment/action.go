// Package appointment implements the create-appointment action backed by
// the calendar collaborator.
package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/template"
)

const (
	defaultOffsetDays   = 1
	defaultDurationMins = 60
)

type Action struct {
	calendar collab.Calendar
}

func NewAction(calendar collab.Calendar) *Action {
	return &Action{calendar: calendar}
}

func (a *Action) Execute(ctx context.Context, config map[string]any, execCtx *models.ExecutionContext, logger *slog.Logger) (map[string]any, error) {
	titel := template.Resolve(configString(config, "titel"), execCtx)
	if titel == "" {
		titel = "Termin"
	}

	offsetDays := defaultOffsetDays
	if d, ok := asFloat(config["offsetTage"]); ok && d > 0 {
		offsetDays = int(d)
	}

	durationMins := defaultDurationMins
	if d, ok := asFloat(config["dauerMinuten"]); ok && d > 0 {
		durationMins = int(d)
	}

	appointment := collab.Appointment{
		Title:        titel,
		Date:         time.Now().AddDate(0, 0, offsetDays).Format("2006-01-02"),
		DurationMins: durationMins,
	}

	if auftrag, ok := execCtx.Variables["auftrag"].(map[string]any); ok {
		appointment.Reference, _ = auftrag["id"].(string)
	}

	appointmentID := ""

	if a.calendar != nil {
		id, err := a.calendar.AddAppointment(ctx, appointment)
		if err != nil {
			logger.Error("Calendar collaborator failed, continuing", "error", err)
		} else {
			appointmentID = id
		}
	} else {
		logger.Info("No calendar collaborator configured, simulating appointment",
			"title", titel, "date", appointment.Date)
	}

	termin := map[string]any{
		"id":           appointmentID,
		"titel":        titel,
		"datum":        appointment.Date,
		"dauerMinuten": durationMins,
	}
	execCtx.Variables["termin"] = termin

	return map[string]any{
		protocol.ResultSuccess: true,
		"terminId":             appointmentID,
		"datum":                appointment.Date,
	}, nil
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

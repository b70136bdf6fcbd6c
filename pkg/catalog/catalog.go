// Package catalog holds the static registry of trigger, action, and
// condition node definitions: catalog key, category, configuration schema,
// and declared output ports. Pure data apart from the condition operator
// evaluators.
package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/models"
)

// Trigger catalog keys. Each trigger kind declares the domain event type
// that fires it; for most kinds the key and the event type coincide.
const (
	TriggerAnfrageCreated   = "anfrage_created"
	TriggerAuftragCreated   = "auftrag_created"
	TriggerAuftragCompleted = "auftrag_completed"
	TriggerRechnungOverdue  = "rechnung_overdue"
	TriggerTerminReminder   = "termin_reminder"
	TriggerManual           = "manual"
	TriggerSchedule         = "schedule"
)

// EventSchedule is the event type schedule triggers listen for. Unlike the
// other event types, schedule events address exactly one workflow.
const EventSchedule = "schedule"

// Action catalog keys.
const (
	ActionCreateQuote       = "create-quote"
	ActionCreateOrder       = "create-order"
	ActionCreateInvoice     = "create-invoice"
	ActionSendEmail         = "send-email"
	ActionUpdateStatus      = "update-status"
	ActionAIGenerate        = "ai-generate"
	ActionWait              = "wait"
	ActionCondition         = "condition"
	ActionCreateAppointment = "create-appointment"
	ActionReserveMaterial   = "reserve-material"
	ActionSendNotification  = "send-notification"
)

// Definition describes one catalog entry.
type Definition struct {
	Key          string
	Type         models.NodeType
	Label        string
	EventType    string   // trigger kinds only
	OutputPorts  []string // condition kinds route through ja/nein
	ConfigSchema map[string]any
}

// Catalog is the static node definition registry.
type Catalog struct {
	definitions map[string]Definition
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{definitions: make(map[string]Definition)}

	for _, def := range builtinDefinitions() {
		c.definitions[def.Key] = def
	}

	return c
}

// Definition returns the entry for a catalog key.
func (c *Catalog) Definition(key string) (Definition, bool) {
	def, ok := c.definitions[key]

	return def, ok
}

// Definitions returns every catalog entry, triggers first, for API listings.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.definitions))

	for _, t := range []models.NodeType{models.NodeTypeTrigger, models.NodeTypeAction, models.NodeTypeCondition} {
		for _, def := range builtinDefinitions() {
			if def.Type == t {
				out = append(out, c.definitions[def.Key])
			}
		}
	}

	return out
}

// EventType returns the domain event type a trigger kind is bound to.
func (c *Catalog) EventType(key string) (string, bool) {
	def, ok := c.definitions[key]
	if !ok || def.Type != models.NodeTypeTrigger {
		return "", false
	}

	return def.EventType, true
}

// Label returns the display label for a catalog key, falling back to the
// key itself for unknown kinds.
func (c *Catalog) Label(key string) string {
	if def, ok := c.definitions[key]; ok {
		return def.Label
	}

	return key
}

// NodeType returns the node category a catalog key belongs to.
func (c *Catalog) NodeType(key string) (models.NodeType, bool) {
	def, ok := c.definitions[key]

	return def.Type, ok
}

// ValidateConfig checks a node config against the declared configuration
// fields of its catalog entry. Unknown kinds pass unchecked so that user
// data written by a newer catalog still loads.
func (c *Catalog) ValidateConfig(key string, config map[string]any) error {
	def, ok := c.definitions[key]
	if !ok || def.ConfigSchema == nil {
		return nil
	}

	if config == nil {
		config = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(def.ConfigSchema),
		gojsonschema.NewGoLoader(config),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config for %q: %w", key, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("invalid config for %q: %s", key, strings.Join(details, "; "))
	}

	return nil
}

func configSchema(properties map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func triggerDefinition(key, label, eventType string) Definition {
	return Definition{
		Key:          key,
		Type:         models.NodeTypeTrigger,
		Label:        label,
		EventType:    eventType,
		OutputPorts:  []string{models.PortOutput},
		ConfigSchema: configSchema(map[string]any{}),
	}
}

func builtinDefinitions() []Definition {
	return []Definition{
		triggerDefinition(TriggerAnfrageCreated, "Neue Anfrage", "anfrage_created"),
		triggerDefinition(TriggerAuftragCreated, "Neuer Auftrag", "auftrag_created"),
		triggerDefinition(TriggerAuftragCompleted, "Auftrag abgeschlossen", "auftrag_completed"),
		triggerDefinition(TriggerRechnungOverdue, "Rechnung überfällig", "rechnung_overdue"),
		triggerDefinition(TriggerTerminReminder, "Termin-Erinnerung", "termin_reminder"),
		triggerDefinition(TriggerManual, "Manuell", "manual"),
		{
			Key:         TriggerSchedule,
			Type:        models.NodeTypeTrigger,
			Label:       "Zeitplan",
			EventType:   EventSchedule,
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"cron": map[string]any{"type": "string"},
			}),
		},
		{
			Key:         ActionCreateQuote,
			Type:        models.NodeTypeAction,
			Label:       "Angebot erstellen",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"rabatt":          map[string]any{"type": "number"},
				"gueltigkeitTage": map[string]any{"type": "number"},
			}),
		},
		{
			Key:         ActionCreateOrder,
			Type:        models.NodeTypeAction,
			Label:       "Auftrag erstellen",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"startOffsetTage": map[string]any{"type": "number"},
			}),
		},
		{
			Key:         ActionCreateInvoice,
			Type:        models.NodeTypeAction,
			Label:       "Rechnung erstellen",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"zahlungszielTage": map[string]any{"type": "number"},
			}),
		},
		{
			Key:         ActionSendEmail,
			Type:        models.NodeTypeAction,
			Label:       "E-Mail senden",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"empfaenger": map[string]any{"type": "string"},
				"betreff":    map[string]any{"type": "string"},
				"vorlage":    map[string]any{"type": "string"},
				"text":       map[string]any{"type": "string"},
			}),
		},
		{
			Key:         ActionUpdateStatus,
			Type:        models.NodeTypeAction,
			Label:       "Status ändern",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"entitaet": map[string]any{"type": "string"},
				"status":   map[string]any{"type": "string"},
			}),
		},
		{
			Key:         ActionAIGenerate,
			Type:        models.NodeTypeAction,
			Label:       "Text generieren (KI)",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"prompt":   map[string]any{"type": "string"},
				"variable": map[string]any{"type": "string"},
			}),
		},
		{
			Key:         ActionWait,
			Type:        models.NodeTypeAction,
			Label:       "Warten",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"dauer":   map[string]any{"type": "number"},
				"einheit": map[string]any{"type": "string", "enum": []string{"sekunden", "minuten", "stunden", "tage"}},
			}),
		},
		{
			Key:         ActionCreateAppointment,
			Type:        models.NodeTypeAction,
			Label:       "Termin anlegen",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"titel":        map[string]any{"type": "string"},
				"offsetTage":   map[string]any{"type": "number"},
				"dauerMinuten": map[string]any{"type": "number"},
			}),
		},
		{
			Key:         ActionReserveMaterial,
			Type:        models.NodeTypeAction,
			Label:       "Material reservieren",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"materialId": map[string]any{"type": "string"},
				"menge":      map[string]any{"type": "number"},
			}),
		},
		{
			Key:         ActionSendNotification,
			Type:        models.NodeTypeAction,
			Label:       "Benachrichtigung senden",
			OutputPorts: []string{models.PortOutput},
			ConfigSchema: configSchema(map[string]any{
				"titel":     map[string]any{"type": "string"},
				"nachricht": map[string]any{"type": "string"},
			}),
		},
		{
			Key:         ActionCondition,
			Type:        models.NodeTypeCondition,
			Label:       "Bedingung",
			OutputPorts: []string{models.PortJa, models.PortNein},
			ConfigSchema: configSchema(map[string]any{
				"feld":     map[string]any{"type": "string"},
				"operator": map[string]any{"type": "string"},
				"wert":     map[string]any{},
			}),
		},
	}
}

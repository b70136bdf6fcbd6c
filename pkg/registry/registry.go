// Package registry maps action catalog keys to their handlers. Handlers are
// resolved once at registration time; the engine dispatches through a plain
// map lookup instead of a per-call switch over action kinds.
package registry

import (
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/protocol"
)

type Registry struct {
	logger   *slog.Logger
	handlers map[string]protocol.Action
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger,
		handlers: make(map[string]protocol.Action),
	}
}

// Register binds an action kind to its handler. Registering the same kind
// twice replaces the earlier handler.
func (r *Registry) Register(kind string, handler protocol.Action) {
	r.handlers[kind] = handler
}

// Handler returns the handler for an action kind.
func (r *Registry) Handler(kind string) (protocol.Action, bool) {
	handler, ok := r.handlers[kind]

	return handler, ok
}

// Kinds returns the registered action kinds.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}

	return kinds
}

// HealthCheck reports whether the registry holds any handlers.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.handlers) == 0 {
		return "No action handlers registered", false
	}

	return "Action handler registry is healthy", true
}

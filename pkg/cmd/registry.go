// Package cmd provides common initialization for the command-line binary.
package cmd

import (
	"log/slog"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/registry"
)

// NewRegistry creates an action registry with all built-in handlers bound to
// the record store and collaborator services.
func NewRegistry(logger *slog.Logger, records *collab.RecordStore, services collab.Services) *registry.Registry {
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultActions(records, services)

	return reg
}

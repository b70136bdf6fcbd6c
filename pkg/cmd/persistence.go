package cmd

import (
	"fmt"

	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/persistence/file"
)

// NewPersistence creates the persistence layer for a database URL. Only the
// file provider is implemented; the URL form leaves room for database
// backends.
func NewPersistence(databaseURL string) persistence.Persistence {
	p, err := file.NewPersistence(databaseURL)
	if err != nil {
		panic(fmt.Errorf("failed to initialize persistence: %w", err))
	}

	return p
}

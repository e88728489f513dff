// Package storage implements the persistence bridge: the whole store
// snapshot is serialized after every change and read back once at startup.
// Two backends are provided, a single JSON file and an embedded BadgerDB,
// both holding the same JSON document.
package storage

import (
	"context"

	"github.com/complianceos/complianceos/internal/models"
)

// Storage persists and restores full snapshots.
type Storage interface {
	// Load reads the persisted snapshot. The second return value is false
	// when no snapshot has ever been saved.
	Load(ctx context.Context) (models.Snapshot, bool, error)

	// Save writes the full snapshot, replacing any previous one.
	Save(ctx context.Context, snap models.Snapshot) error

	// Close releases backend resources.
	Close() error
}

// Package store persists generated artifacts under their identifiers.
package store

import (
	"fmt"

	"beadatelier/pkg/domain"
)

// Store is the artifact repository. Records are write-once: SaveArtifact
// never overwrites and nothing updates a record in place.
type Store interface {
	// SaveArtifact stores a new record. The caller assigns ID and CreatedAt.
	SaveArtifact(a domain.Artifact) error
	// GetArtifact returns the record and whether it exists.
	GetArtifact(id string) (domain.Artifact, bool, error)
	// CountArtifacts returns the number of stored records.
	CountArtifacts() (int, error)
}

// StorageError wraps a failure in a persistent store backend. The in-memory
// store never produces one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

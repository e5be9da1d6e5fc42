// Package store defines the persistence interface for active slots and the
// archive. The two collections live in separate targets; each is loaded
// once at startup and saved after every successful mutation.
package store

import (
	"fmt"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

// Store is the persistence interface for brewlog state.
type Store interface {
	// LoadSlots returns the active slots. A missing target yields
	// (nil, nil); the caller seeds the default slot set. A malformed
	// target yields a *CorruptionError.
	LoadSlots() ([]*model.Slot, error)
	SaveSlots(slots []*model.Slot) error

	// LoadArchive returns the archived records, newest first. Missing and
	// malformed targets behave as for LoadSlots.
	LoadArchive() ([]*model.ArchiveRecord, error)
	SaveArchive(records []*model.ArchiveRecord) error

	Close() error
}

// CorruptionError indicates a persisted target is unreadable or
// schema-invalid. The caller recovers by starting from an empty default
// state; the corrupt target is preserved until the next successful save.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupt state file %s: %v", e.Path, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// IOError indicates a write or rename could not complete. The save attempt
// is aborted; in-memory state is retained so the caller can retry.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Package mem implements an in-memory store, used by tests and as scratch
// state when no data directory is wanted.
package mem

import (
	"github.com/alfredjeanlab/brewlog/internal/model"
)

// Store holds slots and archive in memory. Saves deep-copy the state so
// callers cannot alias stored records.
type Store struct {
	slots   []*model.Slot
	archive []*model.ArchiveRecord

	// FailSaves makes every save return the given error, for testing the
	// retain-in-memory-on-IOError path.
	FailSaves error

	SlotSaves    int
	ArchiveSaves int
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{}
}

func (s *Store) LoadSlots() ([]*model.Slot, error) {
	return model.CloneSlots(s.slots), nil
}

func (s *Store) SaveSlots(slots []*model.Slot) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.slots = model.CloneSlots(slots)
	s.SlotSaves++
	return nil
}

func (s *Store) LoadArchive() ([]*model.ArchiveRecord, error) {
	return model.CloneArchive(s.archive), nil
}

func (s *Store) SaveArchive(records []*model.ArchiveRecord) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.archive = model.CloneArchive(records)
	s.ArchiveSaves++
	return nil
}

func (s *Store) Close() error { return nil }

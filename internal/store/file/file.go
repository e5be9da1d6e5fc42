// Package file implements the store on two local JSON targets: the
// active-slots file and the archive file. Saves are crash-safe: content is
// written to a temp file in the same directory, flushed, then renamed over
// the target, so a crash leaves either the prior or the new complete file.
package file

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/alfredjeanlab/brewlog/internal/model"
	"github.com/alfredjeanlab/brewlog/internal/store"
)

// Store persists slots and archive as JSON files.
type Store struct {
	slotsPath   string
	archivePath string
}

// New returns a Store bound to the given file paths. Files are created on
// first save; a missing file loads as empty state.
func New(slotsPath, archivePath string) *Store {
	return &Store{slotsPath: slotsPath, archivePath: archivePath}
}

// LoadSlots reads the active-slots file. It understands the current named
// slot format and the legacy format (a bare list of brew records).
func (s *Store) LoadSlots() ([]*model.Slot, error) {
	data, err := os.ReadFile(s.slotsPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &store.IOError{Op: "read", Path: s.slotsPath, Err: err}
	}
	slots, err := decodeSlots(data)
	if err != nil {
		return nil, &store.CorruptionError{Path: s.slotsPath, Err: err}
	}
	return slots, nil
}

// SaveSlots durably writes the active-slots file.
func (s *Store) SaveSlots(slots []*model.Slot) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return &store.IOError{Op: "encode", Path: s.slotsPath, Err: err}
	}
	return writeAtomic(s.slotsPath, data)
}

// LoadArchive reads the archive file, newest record first.
func (s *Store) LoadArchive() ([]*model.ArchiveRecord, error) {
	data, err := os.ReadFile(s.archivePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &store.IOError{Op: "read", Path: s.archivePath, Err: err}
	}
	records, err := decodeArchive(data)
	if err != nil {
		return nil, &store.CorruptionError{Path: s.archivePath, Err: err}
	}
	return records, nil
}

// SaveArchive durably writes the archive file.
func (s *Store) SaveArchive(records []*model.ArchiveRecord) error {
	if records == nil {
		records = []*model.ArchiveRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &store.IOError{Op: "encode", Path: s.archivePath, Err: err}
	}
	return writeAtomic(s.archivePath, data)
}

// Close implements store.Store. File handles are not held open.
func (s *Store) Close() error { return nil }

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename. The temp file is fsynced before the rename so a
// power loss cannot leave a truncated target.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &store.IOError{Op: "create temp for", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return &store.IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return &store.IOError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &store.IOError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return &store.IOError{Op: "chmod", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &store.IOError{Op: "rename", Path: path, Err: err}
	}
	removeStaleTemps(path)
	return nil
}

// removeStaleTemps clears temp files left behind by crashed saves. Loads
// never read temp files, so this is housekeeping only.
func removeStaleTemps(path string) {
	matches, err := filepath.Glob(path + ".tmp-*")
	if err != nil {
		return
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
}

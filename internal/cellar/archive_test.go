package cellar

import (
	"errors"
	"testing"

	"github.com/alfredjeanlab/brewlog/internal/model"
	"github.com/alfredjeanlab/brewlog/internal/store"
)

func TestArchive(t *testing.T) {
	m, st := testManager(t)
	createTestBrew(t, m, 0)
	fg := 1.010
	if err := m.UpdateMetrics(0, MetricsParams{FG: &fg}); err != nil {
		t.Fatalf("UpdateMetrics: %v", err)
	}

	record, err := m.Archive(0)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	// The originating slot reads empty.
	s, _ := m.Slot(0)
	if !s.Empty() {
		t.Error("slot should be empty after archival")
	}

	// The record carries the full event history plus the archival entry.
	records := m.ArchiveRecords()
	if len(records) != 1 {
		t.Fatalf("archive has %d records, want 1", len(records))
	}
	r := records[0]
	if r.ID != record.ID {
		t.Error("ArchiveRecords should return the archived record")
	}
	if r.Log.Len() != 3 { // lifecycle + fg reading + archived
		t.Errorf("archived log has %d entries, want 3", r.Log.Len())
	}
	last := r.Log.Entries[r.Log.Len()-1]
	if last.Type != model.EventLifecycle || last.Text != "Archived to History" {
		t.Errorf("last archived event = %+v, want archival lifecycle entry", last)
	}
	if r.ArchivedFrom != "Fermenter 1" {
		t.Errorf("ArchivedFrom = %q, want Fermenter 1", r.ArchivedFrom)
	}
	if !r.ArchivedAt.Equal(testNow) {
		t.Errorf("ArchivedAt = %v, want %v", r.ArchivedAt, testNow)
	}
	if st.ArchiveSaves != 1 {
		t.Errorf("archive saves = %d, want 1", st.ArchiveSaves)
	}
}

func TestArchive_NewestFirst(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	if _, err := m.Archive(0); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateBrew(0, CreateParams{Name: "Plum Wine", Category: "Wine", OG: 1.090, Volume: 10}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Archive(0); err != nil {
		t.Fatal(err)
	}
	records := m.ArchiveRecords()
	if len(records) != 2 || records[0].Name != "Plum Wine" {
		t.Error("archive should list the newest record first")
	}
}

func TestArchive_EmptySlot(t *testing.T) {
	m, _ := testManager(t)
	_, err := m.Archive(0)
	var nfe *model.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected *NotFoundError for empty slot, got %v", err)
	}
}

func TestArchive_SaveFailureKeepsSlot(t *testing.T) {
	m, st := testManager(t)
	createTestBrew(t, m, 0)
	st.FailSaves = &store.IOError{Op: "write", Path: "brew_history.json", Err: errors.New("disk full")}

	if _, err := m.Archive(0); err == nil {
		t.Fatal("expected IO error")
	}
	// Nothing committed: the brew is still in its slot, the archive empty.
	s, _ := m.Slot(0)
	if s.Empty() {
		t.Error("failed archive must leave the slot occupied")
	}
	if len(m.ArchiveRecords()) != 0 {
		t.Error("failed archive must not add a record")
	}
}

func TestEditArchive(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	record, err := m.Archive(0)
	if err != nil {
		t.Fatal(err)
	}
	logLen := record.Log.Len()

	name := "Cascade Pale Ale (2026)"
	fg := 1.012
	if err := m.EditArchive(record.ID, EditParams{Name: &name, FG: &fg}); err != nil {
		t.Fatalf("EditArchive: %v", err)
	}
	got, err := m.ArchiveRecordByID(record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != name || got.FG == nil || *got.FG != 1.012 {
		t.Errorf("edit did not apply: %+v", got)
	}
	if got.Log.Len() != logLen {
		t.Error("archive edits must not append events")
	}
}

func TestEditArchive_SaveFailureRollsBack(t *testing.T) {
	m, st := testManager(t)
	createTestBrew(t, m, 0)
	record, err := m.Archive(0)
	if err != nil {
		t.Fatal(err)
	}
	st.FailSaves = &store.IOError{Op: "write", Path: "brew_history.json", Err: errors.New("disk full")}

	name := "Cascade Pale Ale (2026)"
	if err := m.EditArchive(record.ID, EditParams{Name: &name}); err == nil {
		t.Fatal("expected IO error")
	}
	got, _ := m.ArchiveRecordByID(record.ID)
	if got.Name != "Cascade Pale Ale" {
		t.Errorf("failed save must restore the record, got name %q", got.Name)
	}

	// The edit goes through once the store recovers.
	st.FailSaves = nil
	if err := m.EditArchive(record.ID, EditParams{Name: &name}); err != nil {
		t.Fatalf("EditArchive after recovery: %v", err)
	}
	got, _ = m.ArchiveRecordByID(record.ID)
	if got.Name != name {
		t.Errorf("got name %q, want %q", got.Name, name)
	}
}

func TestEditArchive_Validates(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	record, err := m.Archive(0)
	if err != nil {
		t.Fatal(err)
	}

	badOG := 2.5
	err = m.EditArchive(record.ID, EditParams{OG: &badOG})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	got, _ := m.ArchiveRecordByID(record.ID)
	if got.OG != 1.050 {
		t.Error("failed edit must not change the record")
	}

	err = m.EditArchive("brew-missing000", EditParams{Name: &record.Name})
	var nfe *model.NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("expected *NotFoundError, got %v", err)
	}
}

func TestSearchArchive(t *testing.T) {
	m, _ := testManager(t)
	names := []string{"Cascade Pale Ale", "Heritage Cider", "CASCADE Imperial"}
	for _, n := range names {
		if _, err := m.CreateBrew(0, CreateParams{Name: n, Category: "Beer", OG: 1.050, Volume: 10}); err != nil {
			t.Fatal(err)
		}
		if _, err := m.Archive(0); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for r := range m.SearchArchive("cascade") {
		got = append(got, r.Name)
	}
	// Case-insensitive, archive order (newest first) preserved among matches.
	if len(got) != 2 || got[0] != "CASCADE Imperial" || got[1] != "Cascade Pale Ale" {
		t.Errorf("search returned %v", got)
	}

	// Restartable: a second range over the same sequence works.
	seq := m.SearchArchive("cascade")
	count := 0
	for range seq {
		count++
		break
	}
	count = 0
	for range seq {
		count++
	}
	if count != 2 {
		t.Errorf("restarted search yielded %d, want 2", count)
	}

	all := 0
	for range m.SearchArchive("") {
		all++
	}
	if all != 3 {
		t.Errorf("empty query matched %d, want 3", all)
	}
}

func TestArchiveElapsed(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	record, err := m.Archive(0)
	if err != nil {
		t.Fatal(err)
	}
	// Fixed clock: created and archived at the same instant.
	if got := ArchiveElapsed(record); got != "0h 0m" {
		t.Errorf("ArchiveElapsed = %q, want 0h 0m", got)
	}
}

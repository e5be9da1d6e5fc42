package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/alfredjeanlab/brewlog/internal/model"
	"github.com/alfredjeanlab/brewlog/internal/store"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "brews.json"), filepath.Join(dir, "brew_history.json")), dir
}

func emptySlots(n int) []*model.Slot {
	slots := make([]*model.Slot, n)
	for i := range slots {
		slots[i] = &model.Slot{Name: fmt.Sprintf("Fermenter %d", i+1)}
	}
	return slots
}

func sampleSlots() []*model.Slot {
	fg := 1.010
	ph := 3.4
	brew := &model.Brew{
		ID:             "brew-a1b2c3d4e5",
		Name:           "Cascade Pale Ale",
		Category:       "Beer",
		Stage:          "Secondary",
		Vessel:         "Fermenter 1",
		Recipe:         "5kg pale malt",
		Notes:          "fast start",
		OG:             1.050,
		FG:             &fg,
		PH:             &ph,
		Volume:         18.5,
		OriginalVolume: 20,
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	brew.Log.Append(&model.Event{
		Type: model.EventLifecycle,
		At:   brew.CreatedAt,
		Text: "Created: Cascade Pale Ale. Start Vol: 20L",
	})
	brew.Log.Append(&model.Event{
		Type:     model.EventTransfer,
		At:       brew.CreatedAt.AddDate(0, 0, 10),
		Text:     "Transferred Fermenter 1 -> Fermenter 2",
		Transfer: &model.TransferDetail{FromVessel: "Fermenter 1", ToVessel: "Fermenter 2", VolumeLoss: 1.5},
	})
	return []*model.Slot{
		{Name: "Fermenter 1", Brew: brew},
		{Name: "Fermenter 2"},
	}
}

func TestRoundTrip_Slots(t *testing.T) {
	s, _ := testStore(t)
	want := sampleSlots()
	if err := s.SaveSlots(want); err != nil {
		t.Fatalf("SaveSlots: %v", err)
	}
	got, err := s.LoadSlots()
	if err != nil {
		t.Fatalf("LoadSlots: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got[0].Brew, want[0].Brew)
	}
}

func TestRoundTrip_Archive(t *testing.T) {
	s, _ := testStore(t)
	slots := sampleSlots()
	want := []*model.ArchiveRecord{{
		Brew:         *slots[0].Brew,
		ArchivedAt:   time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		ArchivedFrom: "Fermenter 1",
	}}
	if err := s.SaveArchive(want); err != nil {
		t.Fatalf("SaveArchive: %v", err)
	}
	got, err := s.LoadArchive()
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got[0], want[0])
	}
	if got[0].Log.Len() != 2 {
		t.Errorf("archived event log has %d entries, want 2", got[0].Log.Len())
	}
}

func TestRoundTrip_EmptyState(t *testing.T) {
	s, _ := testStore(t)
	if err := s.SaveSlots(emptySlots(5)); err != nil {
		t.Fatalf("SaveSlots: %v", err)
	}
	if err := s.SaveArchive(nil); err != nil {
		t.Fatalf("SaveArchive: %v", err)
	}
	slots, err := s.LoadSlots()
	if err != nil {
		t.Fatalf("LoadSlots: %v", err)
	}
	if len(slots) != 5 {
		t.Fatalf("loaded %d slots, want 5", len(slots))
	}
	for i, sl := range slots {
		if !sl.Empty() {
			t.Errorf("slot %d should be empty", i)
		}
	}
	records, err := s.LoadArchive()
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("loaded %d archive records, want 0", len(records))
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	s, _ := testStore(t)
	slots, err := s.LoadSlots()
	if err != nil || slots != nil {
		t.Errorf("LoadSlots on missing file = (%v, %v), want (nil, nil)", slots, err)
	}
	records, err := s.LoadArchive()
	if err != nil || records != nil {
		t.Errorf("LoadArchive on missing file = (%v, %v), want (nil, nil)", records, err)
	}
}

func TestLoad_CorruptFilePreserved(t *testing.T) {
	s, _ := testStore(t)
	if err := os.WriteFile(s.slotsPath, []byte(`{"not":"an array`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.LoadSlots()
	var ce *store.CorruptionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CorruptionError, got %v", err)
	}
	// The corrupt file must survive the failed load untouched.
	data, err := os.ReadFile(s.slotsPath)
	if err != nil || string(data) != `{"not":"an array` {
		t.Error("corrupt file was modified by a failed load")
	}
}

func TestLoad_ShapeCheck(t *testing.T) {
	s, _ := testStore(t)
	if err := os.WriteFile(s.slotsPath, []byte(`[{"foo": 1}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.LoadSlots()
	var ce *store.CorruptionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CorruptionError for unrecognized shape, got %v", err)
	}
}

func TestCrashMidSave_LoadsCommittedState(t *testing.T) {
	s, _ := testStore(t)
	want := sampleSlots()
	if err := s.SaveSlots(want); err != nil {
		t.Fatalf("SaveSlots: %v", err)
	}
	// Simulate a crash during a later save: a partial temp file exists
	// alongside the committed target.
	if err := os.WriteFile(s.slotsPath+".tmp-123456", []byte(`[{"name": "Ferm`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadSlots()
	if err != nil {
		t.Fatalf("LoadSlots after simulated crash: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("load after simulated crash did not return the committed state")
	}
	// The next successful save clears the stale temp file.
	if err := s.SaveSlots(want); err != nil {
		t.Fatalf("SaveSlots: %v", err)
	}
	matches, _ := filepath.Glob(s.slotsPath + ".tmp-*")
	if len(matches) != 0 {
		t.Errorf("stale temp files remain after save: %v", matches)
	}
}

func TestSave_UnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })
	s := New(filepath.Join(dir, "brews.json"), filepath.Join(dir, "brew_history.json"))
	err := s.SaveSlots(emptySlots(1))
	var ioe *store.IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected *IOError, got %v", err)
	}
}

// Legacy pre-v3 state file: a bare list of brew records, zero metrics
// meaning unset, naive timestamps, and an event log without ids.
const legacyState = `[
  {
    "id": "brew_1709294400000",
    "name": "Heritage Cider",
    "category": "Cider",
    "recipe": "",
    "notes": "",
    "start_date": "2026-03-01T12:00:00",
    "stage": "Primary",
    "volume": 19.0,
    "og": 1.052,
    "fg": 0.0,
    "ph": 0.0,
    "temp": 0.0,
    "log": [
      {"time": "2026-03-01T12:00:00", "type": "Lifecycle", "text": "Created: Heritage Cider. Start Vol: 19.0L"},
      {"time": "2026-03-04T08:15:00+00:00", "type": "Gravity Reading", "text": "1.030"}
    ]
  },
  null
]`

func TestLoad_LegacyMigration(t *testing.T) {
	s, _ := testStore(t)
	if err := os.WriteFile(s.slotsPath, []byte(legacyState), 0o644); err != nil {
		t.Fatal(err)
	}
	slots, err := s.LoadSlots()
	if err != nil {
		t.Fatalf("LoadSlots legacy: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("loaded %d slots, want 2", len(slots))
	}
	if slots[0].Name != "Fermenter 1" || slots[1].Name != "Fermenter 2" {
		t.Errorf("legacy slots should get default names, got %q, %q", slots[0].Name, slots[1].Name)
	}
	if !slots[1].Empty() {
		t.Error("null legacy slot should load as empty")
	}

	b := slots[0].Brew
	if b == nil {
		t.Fatal("legacy brew did not load")
	}
	if b.FG != nil || b.PH != nil || b.Temp != nil {
		t.Error("zero-valued legacy metrics should load as unset")
	}
	if b.OriginalVolume != 19.0 {
		t.Errorf("missing original_volume should default to volume, got %g", b.OriginalVolume)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !b.CreatedAt.Equal(want) {
		t.Errorf("naive start_date parsed as %v, want %v", b.CreatedAt, want)
	}
	if b.Log.Len() != 2 {
		t.Fatalf("legacy log has %d entries, want 2", b.Log.Len())
	}
	if b.Log.Entries[0].ID != 1 || b.Log.Entries[1].ID != 2 {
		t.Error("legacy log entries should be assigned sequential ids")
	}
	if b.Log.NextID != 3 {
		t.Errorf("NextID after legacy migration = %d, want 3", b.Log.NextID)
	}

	// Saving and reloading produces the current format with ids intact.
	if err := s.SaveSlots(slots); err != nil {
		t.Fatalf("SaveSlots: %v", err)
	}
	again, err := s.LoadSlots()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(again, slots) {
		t.Error("migrated state did not survive a save/load cycle")
	}
}

func TestLoad_LegacyArchive(t *testing.T) {
	s, _ := testStore(t)
	legacy := `[
	  {
	    "id": "brew_1700000000000",
	    "name": "Old Mead",
	    "category": "Mead",
	    "start_date": "2025-11-14T22:13:20",
	    "stage": "Bottled",
	    "volume": 4.5,
	    "original_volume": 5.0,
	    "og": 1.120,
	    "fg": 1.005,
	    "log": [{"time": "2025-11-14T22:13:20", "type": "Lifecycle", "text": "Created"}],
	    "archived_from": "Carboy 2"
	  }
	]`
	if err := os.WriteFile(s.archivePath, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := s.LoadArchive()
	if err != nil {
		t.Fatalf("LoadArchive legacy: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}
	r := records[0]
	if r.ArchivedFrom != "Carboy 2" {
		t.Errorf("ArchivedFrom = %q, want Carboy 2", r.ArchivedFrom)
	}
	if !r.ArchivedAt.IsZero() {
		t.Error("legacy record without archived_at should load with zero time")
	}
	if r.FG == nil || *r.FG != 1.005 {
		t.Error("legacy fg did not load")
	}
}

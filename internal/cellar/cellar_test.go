package cellar

import (
	"errors"
	"testing"
	"time"

	"github.com/alfredjeanlab/brewlog/internal/clock"
	"github.com/alfredjeanlab/brewlog/internal/model"
	"github.com/alfredjeanlab/brewlog/internal/store"
	"github.com/alfredjeanlab/brewlog/internal/store/mem"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testManager(t *testing.T) (*Manager, *mem.Store) {
	t.Helper()
	st := mem.New()
	m, err := New(model.DefaultBrewConfig(), clock.Fixed(testNow, nil), st, nil, DefaultSlotCount)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, st
}

func createTestBrew(t *testing.T, m *Manager, idx int) *model.Brew {
	t.Helper()
	b, err := m.CreateBrew(idx, CreateParams{
		Name:     "Cascade Pale Ale",
		Category: "Beer",
		OG:       1.050,
		Volume:   20,
	})
	if err != nil {
		t.Fatalf("CreateBrew: %v", err)
	}
	return b
}

func TestNew_SeedsDefaultSlots(t *testing.T) {
	m, _ := testManager(t)
	slots := m.Slots()
	if len(slots) != DefaultSlotCount {
		t.Fatalf("got %d slots, want %d", len(slots), DefaultSlotCount)
	}
	if slots[0].Name != "Fermenter 1" || slots[4].Name != "Fermenter 5" {
		t.Errorf("unexpected default names: %q ... %q", slots[0].Name, slots[4].Name)
	}
	for i, s := range slots {
		if !s.Empty() {
			t.Errorf("slot %d should start empty", i)
		}
	}
}

func TestNew_SeedsConfiguredSlotCount(t *testing.T) {
	m, err := New(model.DefaultBrewConfig(), clock.Fixed(testNow, nil), mem.New(), nil, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	slots := m.Slots()
	if len(slots) != 8 {
		t.Fatalf("got %d slots, want 8", len(slots))
	}
	if slots[7].Name != "Fermenter 8" {
		t.Errorf("last slot named %q, want Fermenter 8", slots[7].Name)
	}

	// Persisted slots win over the configured count.
	st := mem.New()
	if err := st.SaveSlots([]*model.Slot{{Name: "Carboy"}, {Name: "Keg"}}); err != nil {
		t.Fatalf("SaveSlots: %v", err)
	}
	m2, err := New(model.DefaultBrewConfig(), clock.Fixed(testNow, nil), st, nil, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m2.Slots(); len(got) != 2 || got[0].Name != "Carboy" {
		t.Errorf("loaded slots %v, want the two persisted slots", got)
	}
}

func TestCreateBrew(t *testing.T) {
	m, st := testManager(t)
	b := createTestBrew(t, m, 0)

	if b.ID == "" {
		t.Error("brew should get a generated id")
	}
	if b.Stage != "Primary" {
		t.Errorf("Stage = %q, want default Primary", b.Stage)
	}
	if b.Vessel != "Fermenter 1" {
		t.Errorf("Vessel = %q, want slot name", b.Vessel)
	}
	if b.OriginalVolume != 20 {
		t.Errorf("OriginalVolume = %g, want 20", b.OriginalVolume)
	}
	if !b.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", b.CreatedAt, testNow)
	}
	if b.Log.Len() != 1 || b.Log.Entries[0].Type != model.EventLifecycle {
		t.Error("new brew should open with one lifecycle event")
	}
	if st.SlotSaves != 1 {
		t.Errorf("slot saves = %d, want 1 (save on every mutation)", st.SlotSaves)
	}
}

func TestCreateBrew_Invalid(t *testing.T) {
	m, st := testManager(t)
	_, err := m.CreateBrew(0, CreateParams{Name: "", OG: 2.0, Volume: -1})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if st.SlotSaves != 0 {
		t.Error("failed create must not save")
	}
	if s, _ := m.Slot(0); !s.Empty() {
		t.Error("failed create must leave the slot empty")
	}
}

func TestCreateBrew_OccupiedSlot(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	if _, err := m.CreateBrew(0, CreateParams{Name: "Second", OG: 1.040, Volume: 10}); err == nil {
		t.Fatal("expected error creating into an occupied slot")
	}
}

func TestUpdateMetrics_AllOrNothing(t *testing.T) {
	m, st := testManager(t)
	createTestBrew(t, m, 0)
	saves := st.SlotSaves

	fg := 1.010
	badPH := 20.0
	err := m.UpdateMetrics(0, MetricsParams{FG: &fg, PH: &badPH})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	s, _ := m.Slot(0)
	if s.Brew.FG != nil {
		t.Error("valid FG must not apply when another field fails validation")
	}
	if s.Brew.Log.Len() != 1 {
		t.Error("no events may be appended on a failed save")
	}
	if st.SlotSaves != saves {
		t.Error("failed update must not save")
	}
}

func TestUpdateMetrics_LogsOneEventPerField(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)

	fg := 1.010
	ph := 3.4
	temp := 19.5
	if err := m.UpdateMetrics(0, MetricsParams{FG: &fg, PH: &ph, Temp: &temp}); err != nil {
		t.Fatalf("UpdateMetrics: %v", err)
	}
	s, _ := m.Slot(0)
	if got := s.Brew.Log.Len(); got != 4 { // lifecycle + 3 readings
		t.Fatalf("log has %d entries, want 4", got)
	}
	types := map[model.EventType]int{}
	for e := range s.Brew.Log.All() {
		types[e.Type]++
	}
	if types[model.EventGravity] != 1 || types[model.EventPH] != 1 || types[model.EventTemp] != 1 {
		t.Errorf("unexpected event mix: %v", types)
	}
	for e := range s.Brew.Log.Query(model.EventFilter{Types: []model.EventType{model.EventPH}}) {
		if e.Reading == nil || e.Reading.Field != "ph" || e.Reading.Value != 3.4 {
			t.Errorf("pH event payload = %+v, want field ph value 3.4", e.Reading)
		}
	}
}

func TestUpdateMetrics_UnchangedFieldNotLogged(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	og := 1.050 // same as current
	if err := m.UpdateMetrics(0, MetricsParams{OG: &og}); err != nil {
		t.Fatalf("UpdateMetrics: %v", err)
	}
	s, _ := m.Slot(0)
	if s.Brew.Log.Len() != 1 {
		t.Error("unchanged metric must not grow the log")
	}
}

func TestTransfer(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)

	if err := m.Transfer(0, 2, 1.5); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	src, _ := m.Slot(0)
	dest, _ := m.Slot(2)
	if !src.Empty() {
		t.Error("source slot should be empty after transfer")
	}
	if dest.Empty() {
		t.Fatal("destination slot should hold the brew")
	}
	b := dest.Brew
	if b.Volume != 18.5 {
		t.Errorf("Volume = %g, want 18.5", b.Volume)
	}
	if b.Vessel != "Fermenter 3" {
		t.Errorf("Vessel = %q, want Fermenter 3", b.Vessel)
	}
	last := b.Log.Entries[b.Log.Len()-1]
	if last.Type != model.EventTransfer || last.Transfer == nil {
		t.Fatal("transfer must append a transfer event with payload")
	}
	if last.Transfer.FromVessel != "Fermenter 1" || last.Transfer.ToVessel != "Fermenter 3" || last.Transfer.VolumeLoss != 1.5 {
		t.Errorf("transfer payload = %+v", last.Transfer)
	}
}

func TestTransfer_LossExceedsVolume(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)

	err := m.Transfer(0, 1, 25)
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	s, _ := m.Slot(0)
	if s.Empty() || s.Brew.Volume != 20 {
		t.Error("failed transfer must leave the brew and its volume unchanged")
	}
}

func TestTransfer_OccupiedDestination(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	createTestBrew(t, m, 1)
	if err := m.Transfer(0, 1, 0); err == nil {
		t.Fatal("expected error transferring onto an occupied slot")
	}
}

func TestRack_ChangesVesselInPlace(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	if err := m.Rack(0, "Carboy B", 0.5); err != nil {
		t.Fatalf("Rack: %v", err)
	}
	s, _ := m.Slot(0)
	if s.Brew.Vessel != "Carboy B" {
		t.Errorf("Vessel = %q, want Carboy B", s.Brew.Vessel)
	}
	if s.Brew.Volume != 19.5 {
		t.Errorf("Volume = %g, want 19.5", s.Brew.Volume)
	}
}

func TestAddEvent_UnknownType(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	if _, err := m.AddEvent(0, "Distillation", "nope"); err == nil {
		t.Fatal("expected error for event type outside the config")
	}
}

func TestDeleteEvent_RequiresConfirmation(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	e, err := m.AddEvent(0, "Dry Hop", "30g Citra")
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	if err := m.DeleteEvent(0, e.ID, false); err == nil {
		t.Fatal("expected error without confirmation")
	}
	s, _ := m.Slot(0)
	if s.Brew.Log.Len() != 2 {
		t.Fatal("unconfirmed delete must not remove the event")
	}

	if err := m.DeleteEvent(0, e.ID, true); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	s, _ = m.Slot(0)
	if s.Brew.Log.Len() != 1 {
		t.Error("confirmed delete should remove exactly one entry")
	}

	err = m.DeleteEvent(0, 99, true)
	var nfe *model.NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("expected *NotFoundError for absent id, got %v", err)
	}
}

func TestUpdateDetails_StageChangeLogged(t *testing.T) {
	m, _ := testManager(t)
	createTestBrew(t, m, 0)
	stage := "Secondary"
	if err := m.UpdateDetails(0, DetailsParams{Stage: &stage}); err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	s, _ := m.Slot(0)
	if s.Brew.Stage != "Secondary" {
		t.Errorf("Stage = %q, want Secondary", s.Brew.Stage)
	}
	last := s.Brew.Log.Entries[s.Brew.Log.Len()-1]
	if last.Type != model.EventStageChange {
		t.Errorf("last event type = %q, want stage change", last.Type)
	}

	notes := "tasting dry"
	if err := m.UpdateDetails(0, DetailsParams{Notes: &notes}); err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	s, _ = m.Slot(0)
	if s.Brew.Log.Len() != 2 {
		t.Error("non-stage detail edits must not grow the log")
	}
}

func TestSaveFailure_RetainsMemory(t *testing.T) {
	m, st := testManager(t)
	createTestBrew(t, m, 0)

	st.FailSaves = &store.IOError{Op: "write", Path: "brews.json", Err: errors.New("disk full")}
	fg := 1.010
	err := m.UpdateMetrics(0, MetricsParams{FG: &fg})
	var ioe *store.IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected *IOError, got %v", err)
	}
	// In-memory state keeps the pre-failure values so the user can retry.
	s, _ := m.Slot(0)
	if s.Brew.FG != nil {
		t.Error("failed save must roll back the in-memory change")
	}

	st.FailSaves = nil
	if err := m.UpdateMetrics(0, MetricsParams{FG: &fg}); err != nil {
		t.Fatalf("retry after IO error should succeed: %v", err)
	}
}

func TestSlotManagement(t *testing.T) {
	m, _ := testManager(t)

	name, err := m.AddSlot()
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if name != "Fermenter 6" || len(m.Slots()) != 6 {
		t.Errorf("AddSlot -> %q with %d slots, want Fermenter 6 and 6", name, len(m.Slots()))
	}

	if err := m.RenameSlot(5, "Keezer"); err != nil {
		t.Fatalf("RenameSlot: %v", err)
	}
	if s, _ := m.Slot(5); s.Name != "Keezer" {
		t.Errorf("renamed slot = %q, want Keezer", s.Name)
	}

	if err := m.RemoveLastSlot(); err != nil {
		t.Fatalf("RemoveLastSlot: %v", err)
	}
	if len(m.Slots()) != 5 {
		t.Errorf("got %d slots after removal, want 5", len(m.Slots()))
	}

	// An occupied last slot cannot be removed.
	createTestBrew(t, m, 4)
	if err := m.RemoveLastSlot(); err == nil {
		t.Fatal("expected error removing an occupied slot")
	}
}

func TestCorruptLoad_RecoversWithWarning(t *testing.T) {
	st := &corruptStore{}
	m, err := New(model.DefaultBrewConfig(), clock.Fixed(testNow, nil), st, nil, DefaultSlotCount)
	if err != nil {
		t.Fatalf("New should recover from corruption, got: %v", err)
	}
	if len(m.Warnings()) != 2 {
		t.Errorf("got %d warnings, want 2", len(m.Warnings()))
	}
	if len(m.Slots()) != DefaultSlotCount {
		t.Error("corrupt slots file should fall back to the default slot set")
	}
	if len(m.ArchiveRecords()) != 0 {
		t.Error("corrupt archive should fall back to empty")
	}
}

// corruptStore reports corruption on every load.
type corruptStore struct {
	mem.Store
}

func (c *corruptStore) LoadSlots() ([]*model.Slot, error) {
	return nil, &store.CorruptionError{Path: "brews.json", Err: errors.New("bad json")}
}

func (c *corruptStore) LoadArchive() ([]*model.ArchiveRecord, error) {
	return nil, &store.CorruptionError{Path: "brew_history.json", Err: errors.New("bad json")}
}

package cellar

import (
	"iter"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/alfredjeanlab/brewlog/internal/clock"
	"github.com/alfredjeanlab/brewlog/internal/events"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

// Archive snapshots the slot's brew (full event log included), stamps it,
// prepends it to the archive, and clears the slot. The archive file is
// written before the cleared slots file: a crash in between can leave the
// record in both files until the next successful save, which is preferable
// to silently losing it.
func (m *Manager) Archive(idx int) (*model.ArchiveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return nil, err
	}
	// Archival requires the fields a history record is useless without.
	var ve model.ValidationError
	if strings.TrimSpace(b.Name) == "" {
		ve.Errors = append(ve.Errors, model.FieldError{Field: "name", Message: "is required to archive"})
	}
	if err := model.ValidateGravity(b.OG); err != nil {
		ve.Errors = append(ve.Errors, model.FieldError{Field: "og", Message: "a valid original gravity is required to archive"})
	}
	if ve.HasErrors() {
		return nil, &ve
	}

	now := m.clock.Now()
	snapshot := b.Clone()
	snapshot.Log.Append(&model.Event{
		Type: model.EventLifecycle,
		At:   now,
		Text: "Archived to History",
	})
	record := &model.ArchiveRecord{
		Brew:         *snapshot,
		ArchivedAt:   now,
		ArchivedFrom: s.Name,
	}

	// Newest first.
	next := make([]*model.ArchiveRecord, 0, len(m.archive)+1)
	next = append(next, record)
	next = append(next, m.archive...)

	// Durability ordering: commit the archive before clearing the slot.
	if err := m.store.SaveArchive(next); err != nil {
		return nil, err
	}
	m.archive = next
	s.Brew = nil
	if err := m.store.SaveSlots(m.slots); err != nil {
		// The record is safely archived; the slot file still shows the brew
		// until a later save succeeds. Duplicate, not lost.
		slog.Warn("archive committed but slot save failed; record may appear in both files until the next save",
			"brew_id", record.ID, "error", err)
		return nil, err
	}
	m.publish(events.TopicBrewArchived, events.BrewArchived{SlotIndex: idx, Record: record.Clone()})
	return record.Clone(), nil
}

// ArchiveRecords returns a deep copy of the archive, newest first.
func (m *Manager) ArchiveRecords() []*model.ArchiveRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CloneArchive(m.archive)
}

// ArchiveRecordByID returns a deep copy of one archived record.
func (m *Manager) ArchiveRecordByID(id string) (*model.ArchiveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.findArchive(id)
	if err != nil {
		return nil, err
	}
	return r.Clone(), nil
}

func (m *Manager) findArchive(id string) (*model.ArchiveRecord, error) {
	for _, r := range m.archive {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, &model.NotFoundError{Kind: "archive record", ID: id}
}

// EditParams carries optional archive edits; nil fields are untouched.
type EditParams struct {
	Name     *string
	Category *string
	Stage    *string
	Recipe   *string
	Notes    *string
	OG       *float64
	FG       *float64
	Volume   *float64
	PH       *float64
	Temp     *float64
}

// EditArchive re-validates changed fields exactly like an active-brew save,
// but appends no events: the archive has no live log.
func (m *Manager) EditArchive(id string, p EditParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.findArchive(id)
	if err != nil {
		return err
	}

	next := r.Clone()
	changes := map[string]any{}
	setString := func(field string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			changes[field] = *v
		}
	}
	setFloat := func(field string, dst *float64, v *float64) {
		if v != nil {
			*dst = *v
			changes[field] = *v
		}
	}
	setOptFloat := func(field string, dst **float64, v *float64) {
		if v != nil {
			val := *v
			*dst = &val
			changes[field] = val
		}
	}
	setString("name", &next.Name, p.Name)
	setString("category", &next.Category, p.Category)
	setString("stage", &next.Stage, p.Stage)
	setString("recipe", &next.Recipe, p.Recipe)
	setString("notes", &next.Notes, p.Notes)
	setFloat("og", &next.OG, p.OG)
	setFloat("volume", &next.Volume, p.Volume)
	setOptFloat("fg", &next.FG, p.FG)
	setOptFloat("ph", &next.PH, p.PH)
	setOptFloat("temp", &next.Temp, p.Temp)
	if len(changes) == 0 {
		return nil
	}
	if err := model.ValidateBrew(m.cfg, &next.Brew); err != nil {
		return err
	}

	prev := r.Clone()
	*r = *next
	if err := m.store.SaveArchive(m.archive); err != nil {
		*r = *prev
		return err
	}
	m.publish(events.TopicArchiveEdited, events.ArchiveEdited{RecordID: id, Changes: changes})
	return nil
}

// normalizeSearch folds case and normalizes to NFC so accented names match
// regardless of how they were typed. Casers are stateful, so each call
// gets its own.
func normalizeSearch(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// SearchArchive returns a lazy, restartable sequence of archive records
// whose names contain the query, case-insensitively, preserving archive
// order among matches. An empty query matches everything.
func (m *Manager) SearchArchive(query string) iter.Seq[*model.ArchiveRecord] {
	records := m.ArchiveRecords()
	needle := normalizeSearch(query)
	return func(yield func(*model.ArchiveRecord) bool) {
		for _, r := range records {
			if needle != "" && !strings.Contains(normalizeSearch(r.Name), needle) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// ArchiveElapsed formats the duration a record spent fermenting, with
// hours+minutes precision.
func ArchiveElapsed(r *model.ArchiveRecord) string {
	if r.CreatedAt.IsZero() || r.ArchivedAt.IsZero() {
		return "-"
	}
	return clock.FormatElapsed(r.Elapsed())
}

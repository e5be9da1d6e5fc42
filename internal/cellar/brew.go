package cellar

import (
	"fmt"
	"math"

	"github.com/alfredjeanlab/brewlog/internal/events"
	"github.com/alfredjeanlab/brewlog/internal/idgen"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

// CreateParams holds the inputs for a new brew.
type CreateParams struct {
	Name     string
	Category string
	OG       float64
	Volume   float64
	Recipe   string
	Notes    string
}

// CreateBrew places a new batch into an empty slot. The brew starts in the
// default stage with the slot as its vessel, and its log opens with a
// lifecycle entry.
func (m *Manager) CreateBrew(idx int, p CreateParams) (*model.Brew, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.slot(idx)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, &model.ValidationError{Errors: []model.FieldError{{
			Field: "slot", Message: fmt.Sprintf("%s is occupied by %q", s.Name, s.Brew.Name),
		}}}
	}

	category := p.Category
	if category == "" {
		category = m.cfg.DefaultCategory()
	}
	id, err := idgen.Generate()
	if err != nil {
		return nil, err
	}
	b := &model.Brew{
		ID:             id,
		Name:           p.Name,
		Category:       category,
		Stage:          m.cfg.DefaultStage(),
		Vessel:         s.Name,
		Recipe:         p.Recipe,
		Notes:          p.Notes,
		OG:             p.OG,
		Volume:         p.Volume,
		OriginalVolume: p.Volume,
		CreatedAt:      m.clock.Now(),
	}
	if err := model.ValidateBrew(m.cfg, b); err != nil {
		return nil, err
	}
	b.Log.Append(&model.Event{
		Type: model.EventLifecycle,
		At:   b.CreatedAt,
		Text: fmt.Sprintf("Created: %s. Start Vol: %gL", b.Name, b.Volume),
	})

	s.Brew = b
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = nil
		return nil, err
	}
	m.publish(events.TopicBrewCreated, events.BrewCreated{SlotIndex: idx, Brew: b.Clone()})
	return b.Clone(), nil
}

// DetailsParams carries optional detail changes; nil fields are untouched.
type DetailsParams struct {
	Name     *string
	Category *string
	Stage    *string
	Recipe   *string
	Notes    *string
}

// UpdateDetails applies name/category/stage/recipe/notes changes. A stage
// change is recorded as an event; the other detail fields are not logged.
// Validation runs on a copy before anything is applied.
func (m *Manager) UpdateDetails(idx int, p DetailsParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return err
	}

	next := b.Clone()
	changes := map[string]any{}
	if p.Name != nil {
		next.Name = *p.Name
		changes["name"] = *p.Name
	}
	if p.Category != nil {
		next.Category = *p.Category
		changes["category"] = *p.Category
	}
	if p.Recipe != nil {
		next.Recipe = *p.Recipe
		changes["recipe"] = *p.Recipe
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
		changes["notes"] = *p.Notes
	}
	var stageChanged bool
	if p.Stage != nil && *p.Stage != b.Stage {
		next.Stage = *p.Stage
		changes["stage"] = *p.Stage
		stageChanged = true
	}
	if len(changes) == 0 {
		return nil
	}
	if err := model.ValidateBrew(m.cfg, next); err != nil {
		return err
	}
	if stageChanged {
		next.Log.Append(&model.Event{
			Type: model.EventStageChange,
			At:   m.clock.Now(),
			Text: fmt.Sprintf("Stage: %s -> %s", b.Stage, next.Stage),
		})
	}

	s.Brew = next
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = b
		return err
	}
	m.publish(events.TopicBrewUpdated, events.BrewUpdated{SlotIndex: idx, Brew: next.Clone(), Changes: changes})
	return nil
}

// MetricsParams carries optional metric changes; nil fields are untouched.
type MetricsParams struct {
	OG     *float64
	FG     *float64
	Volume *float64
	PH     *float64
	Temp   *float64
}

// UpdateMetrics validates every changed metric before any mutation: either
// all changes apply, each logged as its own event, or none do. Derived
// values (ABV, attenuation) are never stored, so they cannot go stale.
func (m *Manager) UpdateMetrics(idx int, p MetricsParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return err
	}

	// Validate all fields up front so a save is all-or-nothing.
	var ve model.ValidationError
	checkRange := func(field string, err error) {
		if err == nil {
			return
		}
		if re, ok := err.(*model.RangeError); ok {
			ve.Errors = append(ve.Errors, model.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%g outside range [%g, %g]", re.Value, re.Min, re.Max),
			})
			return
		}
		ve.Errors = append(ve.Errors, model.FieldError{Field: field, Message: err.Error()})
	}
	if p.OG != nil {
		checkRange("og", model.ValidateGravity(*p.OG))
	}
	if p.FG != nil {
		checkRange("fg", model.ValidateGravity(*p.FG))
	}
	if p.Volume != nil {
		checkRange("volume", model.ValidateVolume(*p.Volume))
	}
	if p.PH != nil {
		checkRange("ph", model.ValidatePH(*p.PH))
	}
	if p.Temp != nil {
		checkRange("temp", model.ValidateTemp(*p.Temp))
	}
	if ve.HasErrors() {
		return &ve
	}

	next := b.Clone()
	now := m.clock.Now()
	changes := map[string]any{}
	record := func(eventType model.EventType, field string, value float64) {
		changes[field] = value
		next.Log.Append(&model.Event{
			Type:    eventType,
			At:      now,
			Text:    fmt.Sprintf("%s: %g", field, value),
			Reading: &model.Reading{Field: field, Value: value},
		})
	}
	if p.OG != nil && *p.OG != next.OG {
		next.OG = *p.OG
		record(model.EventGravity, "og", *p.OG)
	}
	if p.FG != nil && (next.FG == nil || *p.FG != *next.FG) {
		v := *p.FG
		next.FG = &v
		record(model.EventGravity, "fg", v)
	}
	if p.Volume != nil && *p.Volume != next.Volume {
		next.Volume = *p.Volume
		record(model.EventGeneral, "volume", *p.Volume)
	}
	if p.PH != nil && (next.PH == nil || *p.PH != *next.PH) {
		v := *p.PH
		next.PH = &v
		record(model.EventPH, "ph", v)
	}
	if p.Temp != nil && (next.Temp == nil || *p.Temp != *next.Temp) {
		v := *p.Temp
		next.Temp = &v
		record(model.EventTemp, "temp", v)
	}
	if len(changes) == 0 {
		return nil
	}

	s.Brew = next
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = b
		return err
	}
	m.publish(events.TopicBrewUpdated, events.BrewUpdated{SlotIndex: idx, Brew: next.Clone(), Changes: changes})
	return nil
}

// Transfer moves a brew into another, empty slot, recording the loss. The
// destination slot becomes the brew's vessel.
func (m *Manager) Transfer(srcIdx, destIdx int, loss float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, b, err := m.occupiedSlot(srcIdx)
	if err != nil {
		return err
	}
	dest, err := m.slot(destIdx)
	if err != nil {
		return err
	}
	if destIdx == srcIdx {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "to_slot", Message: "source and destination are the same slot",
		}}}
	}
	if !dest.Empty() {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "to_slot", Message: fmt.Sprintf("%s is occupied", dest.Name),
		}}}
	}
	if err := model.ValidateTransferLoss(loss, b.Volume); err != nil {
		return err
	}

	next := b.Clone()
	m.rack(next, dest.Name, loss)

	dest.Brew = next
	src.Brew = nil
	if err := m.store.SaveSlots(m.slots); err != nil {
		dest.Brew = nil
		src.Brew = b
		return err
	}
	m.publish(events.TopicBrewTransferred, events.BrewTransferred{
		FromSlot: srcIdx, ToSlot: destIdx,
		FromVessel: b.Vessel, ToVessel: dest.Name, VolumeLoss: loss,
	})
	return nil
}

// Rack records a transfer into a named vessel without changing slots
// (e.g. racking onto fruit in the same position, or into a keg tracked
// under the same slot).
func (m *Manager) Rack(idx int, toVessel string, loss float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return err
	}
	if toVessel == "" {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "to_vessel", Message: "is required",
		}}}
	}
	if err := model.ValidateTransferLoss(loss, b.Volume); err != nil {
		return err
	}

	next := b.Clone()
	from := b.Vessel
	m.rack(next, toVessel, loss)

	s.Brew = next
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = b
		return err
	}
	m.publish(events.TopicBrewTransferred, events.BrewTransferred{
		FromSlot: idx, FromVessel: from, ToVessel: toVessel, VolumeLoss: loss,
	})
	return nil
}

// rack applies the transfer to the brew: decrement volume, switch vessel,
// append the transfer event. Loss is already validated.
func (m *Manager) rack(b *model.Brew, toVessel string, loss float64) {
	from := b.Vessel
	oldVol := b.Volume
	b.Volume = math.Round((oldVol-loss)*100) / 100
	b.Vessel = toVessel

	lossPct := 0.0
	if oldVol > 0 {
		lossPct = loss / oldVol * 100
	}
	b.Log.Append(&model.Event{
		Type: model.EventTransfer,
		At:   m.clock.Now(),
		Text: fmt.Sprintf("Transferred %s -> %s. Loss: %gL (%.1f%%). New Vol: %gL",
			from, toVessel, loss, lossPct, b.Volume),
		Transfer: &model.TransferDetail{FromVessel: from, ToVessel: toVessel, VolumeLoss: loss},
	})
}

// AddEvent appends a user event of a configured type to the brew's log.
func (m *Manager) AddEvent(idx int, eventType model.EventType, text string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return nil, err
	}
	if err := m.cfg.ValidateEventType(eventType); err != nil {
		return nil, err
	}

	next := b.Clone()
	e := &model.Event{Type: eventType, At: m.clock.Now(), Text: text}
	next.Log.Append(e)

	s.Brew = next
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = b
		return nil, err
	}
	m.publish(events.TopicEventAdded, events.EventAdded{SlotIndex: idx, Event: e.Clone()})
	return e.Clone(), nil
}

// DeleteEvent removes one log entry by id. The caller must pass an explicit
// confirmation; history is never truncated implicitly.
func (m *Manager) DeleteEvent(idx int, eventID int64, confirm bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return err
	}
	if !confirm {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "confirm", Message: "event deletion requires confirmation",
		}}}
	}

	next := b.Clone()
	if err := next.Log.Delete(eventID); err != nil {
		return err
	}

	s.Brew = next
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = b
		return err
	}
	m.publish(events.TopicEventDeleted, events.EventDeleted{SlotIndex: idx, EventID: eventID})
	return nil
}

// ClearSlot resets a slot to empty without archiving. Requires explicit
// confirmation; the brew and its history are discarded.
func (m *Manager) ClearSlot(idx int, confirm bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, b, err := m.occupiedSlot(idx)
	if err != nil {
		return err
	}
	if !confirm {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "confirm", Message: "clearing a slot requires confirmation",
		}}}
	}

	s.Brew = nil
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Brew = b
		return err
	}
	m.publish(events.TopicBrewCleared, events.BrewCleared{SlotIndex: idx, BrewID: b.ID})
	return nil
}

// occupiedSlot returns the slot and its brew, failing when the slot does
// not exist or is empty. Callers hold the lock.
func (m *Manager) occupiedSlot(idx int) (*model.Slot, *model.Brew, error) {
	s, err := m.slot(idx)
	if err != nil {
		return nil, nil, err
	}
	if s.Empty() {
		return nil, nil, &model.NotFoundError{Kind: "brew", ID: fmt.Sprintf("slot %d", idx+1)}
	}
	return s, s.Brew, nil
}

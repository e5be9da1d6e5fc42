// Package cellar holds the live state of the fermentation dashboard: the
// active slots and the archive. Every mutation validates first, applies,
// appends the matching log events, and durably saves before it reports
// success.
package cellar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alfredjeanlab/brewlog/internal/clock"
	"github.com/alfredjeanlab/brewlog/internal/events"
	"github.com/alfredjeanlab/brewlog/internal/model"
	"github.com/alfredjeanlab/brewlog/internal/store"
)

// DefaultSlotCount is the number of fermenter slots seeded into a fresh
// cellar.
const DefaultSlotCount = 5

// Manager owns the in-memory state and coordinates validation, event
// logging, persistence, and notifications. All operations are synchronous;
// the mutex only exists because the HTTP surface serves requests
// concurrently.
type Manager struct {
	mu    sync.Mutex
	cfg   *model.BrewConfig
	clock *clock.Clock
	store store.Store
	pub   events.Publisher

	slots   []*model.Slot
	archive []*model.ArchiveRecord

	warnings []string
}

// New loads both persistence targets and returns a ready Manager. A fresh
// cellar (no persisted slots) is seeded with slotCount empty fermenters;
// values below 1 fall back to DefaultSlotCount. A corrupt target is
// recovered by starting from the empty default state; the corrupt file
// stays on disk until the next successful save, and the recovery is
// reported via Warnings.
func New(cfg *model.BrewConfig, clk *clock.Clock, st store.Store, pub events.Publisher, slotCount int) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("brew config: %w", err)
	}
	if slotCount < 1 {
		slotCount = DefaultSlotCount
	}
	m := &Manager{cfg: cfg, clock: clk, store: st, pub: pub}

	slots, err := st.LoadSlots()
	if err != nil {
		var ce *store.CorruptionError
		if !errors.As(err, &ce) {
			return nil, err
		}
		slog.Warn("active-slots file corrupt, starting from empty state", "error", err)
		m.warnings = append(m.warnings, err.Error())
		slots = nil
	}
	if len(slots) == 0 {
		slots = defaultSlots(slotCount)
	}
	m.slots = slots

	archive, err := st.LoadArchive()
	if err != nil {
		var ce *store.CorruptionError
		if !errors.As(err, &ce) {
			return nil, err
		}
		slog.Warn("archive file corrupt, starting from empty archive", "error", err)
		m.warnings = append(m.warnings, err.Error())
		archive = nil
	}
	m.archive = archive

	return m, nil
}

func defaultSlots(n int) []*model.Slot {
	slots := make([]*model.Slot, n)
	for i := range slots {
		slots[i] = &model.Slot{Name: fmt.Sprintf("Fermenter %d", i+1)}
	}
	return slots
}

// Warnings returns recovery warnings collected at load time, for display.
func (m *Manager) Warnings() []string {
	return m.warnings
}

// Config returns the immutable brew configuration.
func (m *Manager) Config() *model.BrewConfig {
	return m.cfg
}

// Clock returns the configured clock.
func (m *Manager) Clock() *clock.Clock {
	return m.clock
}

// Slots returns a deep copy of the current slot list.
func (m *Manager) Slots() []*model.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CloneSlots(m.slots)
}

// Slot returns a deep copy of one slot.
func (m *Manager) Slot(idx int) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.slot(idx)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// slot returns the live slot record. Callers hold the lock.
func (m *Manager) slot(idx int) (*model.Slot, error) {
	if idx < 0 || idx >= len(m.slots) {
		return nil, &model.NotFoundError{Kind: "slot", ID: fmt.Sprintf("%d", idx+1)}
	}
	return m.slots[idx], nil
}

// AddSlot appends a new empty fermenter slot with a default name.
func (m *Manager) AddSlot() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := fmt.Sprintf("Fermenter %d", len(m.slots)+1)
	m.slots = append(m.slots, &model.Slot{Name: name})
	if err := m.store.SaveSlots(m.slots); err != nil {
		m.slots = m.slots[:len(m.slots)-1]
		return "", err
	}
	m.publish(events.TopicSlotAdded, events.SlotAdded{Index: len(m.slots) - 1, Name: name})
	return name, nil
}

// RemoveLastSlot removes the last slot, refusing when it is occupied.
func (m *Manager) RemoveLastSlot() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.slots) == 0 {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "slots", Message: "no slots to remove",
		}}}
	}
	last := m.slots[len(m.slots)-1]
	if !last.Empty() {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "slots", Message: fmt.Sprintf("%s is occupied", last.Name),
		}}}
	}
	m.slots = m.slots[:len(m.slots)-1]
	if err := m.store.SaveSlots(m.slots); err != nil {
		m.slots = append(m.slots, last)
		return err
	}
	m.publish(events.TopicSlotRemoved, events.SlotRemoved{Index: len(m.slots), Name: last.Name})
	return nil
}

// RenameSlot changes a slot's display name.
func (m *Manager) RenameSlot(idx int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.slot(idx)
	if err != nil {
		return err
	}
	if name == "" {
		return &model.ValidationError{Errors: []model.FieldError{{
			Field: "name", Message: "is required",
		}}}
	}
	old := s.Name
	s.Name = name
	if err := m.store.SaveSlots(m.slots); err != nil {
		s.Name = old
		return err
	}
	m.publish(events.TopicSlotRenamed, events.SlotRenamed{Index: idx, OldName: old, NewName: name})
	return nil
}

// Save durably writes both targets; used for autosave on graceful shutdown.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SaveArchive(m.archive); err != nil {
		return err
	}
	return m.store.SaveSlots(m.slots)
}

// Close saves and releases the store.
func (m *Manager) Close() error {
	if err := m.Save(); err != nil {
		return err
	}
	return m.store.Close()
}

// publish delivers a notification; failures are logged, never fatal.
func (m *Manager) publish(topic string, event any) {
	if m.pub == nil {
		return
	}
	if err := m.pub.Publish(context.Background(), topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

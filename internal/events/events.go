// Package events defines the in-process mutation notifications the cellar
// publishes. The CLI runs with the noop publisher; the HTTP server plugs in
// its SSE hub so a dashboard can live-refresh.
package events

import (
	"context"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

// Event topic constants
const (
	TopicBrewCreated     = "brewlog.brew.created"
	TopicBrewUpdated     = "brewlog.brew.updated"
	TopicBrewTransferred = "brewlog.brew.transferred"
	TopicBrewArchived    = "brewlog.brew.archived"
	TopicBrewCleared     = "brewlog.brew.cleared"

	TopicEventAdded   = "brewlog.event.added"
	TopicEventDeleted = "brewlog.event.deleted"

	TopicSlotAdded   = "brewlog.slot.added"
	TopicSlotRemoved = "brewlog.slot.removed"
	TopicSlotRenamed = "brewlog.slot.renamed"

	TopicArchiveEdited = "brewlog.archive.edited"
)

// Publisher delivers mutation notifications. Implementations must be cheap;
// publishing happens synchronously after each successful mutation.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Event payload types

type BrewCreated struct {
	SlotIndex int         `json:"slot_index"`
	Brew      *model.Brew `json:"brew"`
}

type BrewUpdated struct {
	SlotIndex int            `json:"slot_index"`
	Brew      *model.Brew    `json:"brew"`
	Changes   map[string]any `json:"changes"` // field name -> new value
}

type BrewTransferred struct {
	FromSlot   int     `json:"from_slot"`
	ToSlot     int     `json:"to_slot,omitempty"`
	FromVessel string  `json:"from_vessel"`
	ToVessel   string  `json:"to_vessel"`
	VolumeLoss float64 `json:"volume_loss"`
}

type BrewArchived struct {
	SlotIndex int                  `json:"slot_index"`
	Record    *model.ArchiveRecord `json:"record"`
}

type BrewCleared struct {
	SlotIndex int    `json:"slot_index"`
	BrewID    string `json:"brew_id"`
}

type EventAdded struct {
	SlotIndex int          `json:"slot_index"`
	Event     *model.Event `json:"event"`
}

type EventDeleted struct {
	SlotIndex int   `json:"slot_index"`
	EventID   int64 `json:"event_id"`
}

type SlotAdded struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type SlotRemoved struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type SlotRenamed struct {
	Index   int    `json:"index"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type ArchiveEdited struct {
	RecordID string         `json:"record_id"`
	Changes  map[string]any `json:"changes"`
}

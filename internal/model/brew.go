package model

import (
	"time"
)

// Brew is the core batch record: one fermenting batch occupying a slot.
type Brew struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Recipe   string `json:"recipe,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// Stage is the current fermentation stage. Stages come from the brew
	// config, not a fixed enum; transitions are user-directed and logged,
	// never enforced in order.
	Stage string `json:"stage"`

	// Vessel is the container currently holding the batch. It changes on
	// transfer and defaults to the name of the slot the brew was created in.
	Vessel string `json:"vessel,omitempty"`

	OG float64 `json:"og"`
	// FG is nil until a final gravity has been recorded. A set FG may exceed
	// OG (stuck or rising readings happen); only the global gravity bounds
	// are enforced.
	FG *float64 `json:"fg,omitempty"`

	// Volume is the current volume in liters, decremented by recorded loss
	// on each transfer. OriginalVolume is captured at creation for yield
	// reporting and never changes.
	Volume         float64 `json:"volume"`
	OriginalVolume float64 `json:"original_volume"`

	PH   *float64 `json:"ph,omitempty"`
	Temp *float64 `json:"temp,omitempty"`

	CreatedAt time.Time `json:"start_date"`

	Log EventLog `json:"log"`
}

// ABV returns the alcohol by volume derived from OG and FG.
// It is always recomputed from the stored gravities, never persisted.
func (b *Brew) ABV() (float64, error) {
	if b.FG == nil {
		return 0, &CalculationError{Op: "abv", Reason: "final gravity not recorded"}
	}
	return ABV(b.OG, *b.FG)
}

// Attenuation returns the apparent attenuation percentage derived from OG and FG.
func (b *Brew) Attenuation() (float64, error) {
	if b.FG == nil {
		return 0, &CalculationError{Op: "attenuation", Reason: "final gravity not recorded"}
	}
	return Attenuation(b.OG, *b.FG)
}

// Clone returns a deep copy of the brew, including its full event log.
func (b *Brew) Clone() *Brew {
	if b == nil {
		return nil
	}
	c := *b
	c.FG = clonePtr(b.FG)
	c.PH = clonePtr(b.PH)
	c.Temp = clonePtr(b.Temp)
	c.Log = *b.Log.Clone()
	return &c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Slot is a dashboard position holding at most one active brew.
type Slot struct {
	Name string `json:"name"`
	Brew *Brew  `json:"brew"`
}

// Empty reports whether the slot holds no active brew.
func (s *Slot) Empty() bool {
	return s.Brew == nil
}

// Clone returns a deep copy of the slot.
func (s *Slot) Clone() *Slot {
	if s == nil {
		return nil
	}
	return &Slot{Name: s.Name, Brew: s.Brew.Clone()}
}

// CloneSlots deep-copies a slot list.
func CloneSlots(slots []*Slot) []*Slot {
	out := make([]*Slot, len(slots))
	for i, s := range slots {
		out[i] = s.Clone()
	}
	return out
}

// ArchiveRecord is a frozen copy of a brew's full state at archival time.
// Records are editable afterwards (subject to the same validation as active
// brews) but carry no live event stream.
type ArchiveRecord struct {
	Brew
	ArchivedAt   time.Time `json:"archived_at"`
	ArchivedFrom string    `json:"archived_from,omitempty"`
}

// Elapsed returns the duration from batch creation to archival.
func (r *ArchiveRecord) Elapsed() time.Duration {
	if r.CreatedAt.IsZero() || r.ArchivedAt.IsZero() {
		return 0
	}
	return r.ArchivedAt.Sub(r.CreatedAt)
}

// Clone returns a deep copy of the archive record.
func (r *ArchiveRecord) Clone() *ArchiveRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Brew = *r.Brew.Clone()
	return &c
}

// CloneArchive deep-copies an archive record list.
func CloneArchive(records []*ArchiveRecord) []*ArchiveRecord {
	out := make([]*ArchiveRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

package model

import "iter"

// EventLog is an append-only, ordered sequence of events for one brew.
// NextID is persisted so deleted ids are never reissued.
type EventLog struct {
	NextID  int64    `json:"next_id"`
	Entries []*Event `json:"entries"`
}

// Append assigns the next sequence id to e, appends it, and returns the id.
// Existing entries are never reordered.
func (l *EventLog) Append(e *Event) int64 {
	if l.NextID == 0 {
		l.NextID = 1
	}
	e.ID = l.NextID
	l.NextID++
	l.Entries = append(l.Entries, e)
	return e.ID
}

// Get returns the event with the given id.
func (l *EventLog) Get(id int64) (*Event, bool) {
	for _, e := range l.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Delete removes exactly one entry by id. Remaining ids are not renumbered.
// Returns a *NotFoundError if the id is absent.
func (l *EventLog) Delete(id int64) error {
	for i, e := range l.Entries {
		if e.ID == id {
			l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "event", ID: formatID(id)}
}

// Len returns the number of entries.
func (l *EventLog) Len() int {
	return len(l.Entries)
}

// All returns a restartable sequence over every entry in insertion order.
func (l *EventLog) All() iter.Seq[*Event] {
	return l.Query(EventFilter{})
}

// Query returns a lazy, restartable sequence of entries matching the filter,
// in original insertion order.
func (l *EventLog) Query(f EventFilter) iter.Seq[*Event] {
	return func(yield func(*Event) bool) {
		for _, e := range l.Entries {
			if !f.Matches(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the log.
func (l *EventLog) Clone() *EventLog {
	c := &EventLog{NextID: l.NextID}
	if l.Entries != nil {
		c.Entries = make([]*Event, len(l.Entries))
		for i, e := range l.Entries {
			c.Entries[i] = e.Clone()
		}
	}
	return c
}

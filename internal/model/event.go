package model

import "time"

// EventType categorizes a log entry. Types are config-driven; well-known
// constants are provided for the entries the system appends itself, but any
// type listed in the brew config is valid.
type EventType string

// System-generated event types. These match the default config so files
// written by older versions remain readable.
const (
	EventLifecycle   EventType = "Lifecycle"
	EventTransfer    EventType = "Transfer"
	EventGravity     EventType = "Gravity Reading"
	EventPH          EventType = "pH Reading"
	EventTemp        EventType = "Temp Check"
	EventStageChange EventType = "Brew Stage Change"
	EventGeneral     EventType = "General"
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// Event is a single immutable log entry. Once appended it is never mutated;
// it can only be deleted by id after explicit confirmation.
type Event struct {
	// ID is a per-brew monotonically increasing sequence number, distinct
	// from the timestamp. Insertion order is authoritative for display even
	// when timestamps collide.
	ID   int64     `json:"id"`
	Type EventType `json:"type"`
	At   time.Time `json:"at"`
	Text string    `json:"text,omitempty"`

	// Tagged payload: at most one of the fields below is set, keyed by Type.
	Transfer *TransferDetail `json:"transfer,omitempty"`
	Reading  *Reading        `json:"reading,omitempty"`
}

// TransferDetail carries the payload of a transfer event.
type TransferDetail struct {
	FromVessel string  `json:"from_vessel"`
	ToVessel   string  `json:"to_vessel"`
	VolumeLoss float64 `json:"volume_loss"`
}

// Reading carries the payload of a metric event: which field was recorded
// and its new value.
type Reading struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	if e.Transfer != nil {
		t := *e.Transfer
		c.Transfer = &t
	}
	if e.Reading != nil {
		r := *e.Reading
		c.Reading = &r
	}
	return &c
}

// EventFilter holds criteria for querying a brew's event log.
type EventFilter struct {
	Types []EventType `json:"types,omitempty"`
	Since *time.Time  `json:"since,omitempty"`
	Until *time.Time  `json:"until,omitempty"`
}

// Matches reports whether the event satisfies every set criterion.
func (f EventFilter) Matches(e *Event) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Since != nil && e.At.Before(*f.Since) {
		return false
	}
	if f.Until != nil && e.At.After(*f.Until) {
		return false
	}
	return true
}

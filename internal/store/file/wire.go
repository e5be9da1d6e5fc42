package file

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

// wireBrew is the read-side shape of a brew record. It tolerates the legacy
// save format: zero-valued fg/ph/temp meaning "not recorded", naive
// timestamps, and a bare array event log without ids.
type wireBrew struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Recipe         string          `json:"recipe"`
	Notes          string          `json:"notes"`
	StartDate      string          `json:"start_date"`
	Stage          string          `json:"stage"`
	Vessel         string          `json:"vessel"`
	Volume         float64         `json:"volume"`
	OriginalVolume *float64        `json:"original_volume"`
	OG             float64         `json:"og"`
	FG             *float64        `json:"fg"`
	PH             *float64        `json:"ph"`
	Temp           *float64        `json:"temp"`
	Log            json.RawMessage `json:"log"`
}

// legacyEvent is a pre-v3 log entry: no id, no payload.
type legacyEvent struct {
	Time string `json:"time"`
	Type string `json:"type"`
	Text string `json:"text"`
}

func (w *wireBrew) toModel() (*model.Brew, error) {
	b := &model.Brew{
		ID:       w.ID,
		Name:     w.Name,
		Category: w.Category,
		Recipe:   w.Recipe,
		Notes:    w.Notes,
		Stage:    w.Stage,
		Vessel:   w.Vessel,
		Volume:   w.Volume,
		OG:       w.OG,
	}
	b.CreatedAt = parseTimestamp(w.StartDate)
	if w.OriginalVolume != nil {
		b.OriginalVolume = *w.OriginalVolume
	} else {
		b.OriginalVolume = w.Volume
	}
	// Zero readings in old files mean the metric was never recorded.
	b.FG = nonZero(w.FG)
	b.PH = nonZero(w.PH)
	b.Temp = nonZero(w.Temp)

	log, err := decodeLog(w.Log)
	if err != nil {
		return nil, err
	}
	b.Log = *log
	return b, nil
}

func nonZero(p *float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	v := *p
	return &v
}

// decodeLog accepts either the current EventLog object or a legacy bare
// array of {time,type,text} entries, which get sequential ids assigned.
func decodeLog(raw json.RawMessage) (*model.EventLog, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return &model.EventLog{}, nil
	}
	if raw[0] == '[' {
		var legacy []legacyEvent
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("event log: %w", err)
		}
		log := &model.EventLog{}
		for _, le := range legacy {
			log.Append(&model.Event{
				Type: model.EventType(le.Type),
				At:   parseTimestamp(le.Time),
				Text: le.Text,
			})
		}
		return log, nil
	}
	var log model.EventLog
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("event log: %w", err)
	}
	return &log, nil
}

// parseTimestamp accepts RFC3339 and naive ISO-8601 strings; naive times
// are treated as UTC. Unparseable strings yield the zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// decodeSlots reads the active-slots array. Each element is either a named
// slot {name, brew}, a legacy bare brew record, or null.
func decodeSlots(data []byte) ([]*model.Slot, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("slots must be a JSON array: %w", err)
	}
	slots := make([]*model.Slot, 0, len(items))
	for i, item := range items {
		name := fmt.Sprintf("Fermenter %d", i+1)
		if string(item) == "null" {
			slots = append(slots, &model.Slot{Name: name})
			continue
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		brewRaw, hasBrew := probe["brew"]
		if hasBrew {
			if n, ok := probe["name"]; ok {
				if err := json.Unmarshal(n, &name); err != nil {
					return nil, fmt.Errorf("slot %d name: %w", i, err)
				}
			}
			brew, err := decodeBrew(brewRaw)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			slots = append(slots, &model.Slot{Name: name, Brew: brew})
			continue
		}
		// Legacy format: the element is the brew record itself. Require a
		// recognizable brew shape so arbitrary objects fail the load.
		if _, ok := probe["id"]; !ok {
			if _, ok := probe["og"]; !ok {
				return nil, fmt.Errorf("slot %d: not a slot or brew record", i)
			}
		}
		brew, err := decodeBrew(item)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		slots = append(slots, &model.Slot{Name: name, Brew: brew})
	}
	return slots, nil
}

func decodeBrew(raw json.RawMessage) (*model.Brew, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var w wireBrew
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.toModel()
}

// decodeArchive reads the archive array. Legacy records are brew dicts
// with an archived_from key and no archived_at.
func decodeArchive(data []byte) ([]*model.ArchiveRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("archive must be a JSON array: %w", err)
	}
	records := make([]*model.ArchiveRecord, 0, len(items))
	for i, item := range items {
		var w struct {
			wireBrew
			ArchivedAt   string `json:"archived_at"`
			ArchivedFrom string `json:"archived_from"`
		}
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("archive record %d: %w", i, err)
		}
		brew, err := w.wireBrew.toModel()
		if err != nil {
			return nil, fmt.Errorf("archive record %d: %w", i, err)
		}
		records = append(records, &model.ArchiveRecord{
			Brew:         *brew,
			ArchivedAt:   parseTimestamp(w.ArchivedAt),
			ArchivedFrom: w.ArchivedFrom,
		})
	}
	return records, nil
}

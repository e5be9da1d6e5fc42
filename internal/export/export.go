// Package export writes the full cellar state as JSONL for backups and
// hand-off to other tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

// header is the first JSONL record written by JSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	SlotCount    int       `json:"slot_count"`
	ArchiveCount int       `json:"archive_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// slotData is a slot line; empty slots are exported too, so an import can
// reconstruct the exact fermenter layout.
type slotData struct {
	Index int         `json:"index"`
	Name  string      `json:"name"`
	Brew  *model.Brew `json:"brew,omitempty"`
}

// JSONL writes the slot layout and the archive as JSONL to w: one header
// line, one line per slot, one line per archive record (newest first, as
// stored).
func JSONL(w io.Writer, slots []*model.Slot, archive []*model.ArchiveRecord, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    now.UTC(),
		SlotCount:    len(slots),
		ArchiveCount: len(archive),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for i, s := range slots {
		if err := enc.Encode(record{Type: "slot", Data: slotData{Index: i, Name: s.Name, Brew: s.Brew}}); err != nil {
			return fmt.Errorf("encode slot %d: %w", i, err)
		}
	}

	for _, r := range archive {
		if err := enc.Encode(record{Type: "archive", Data: r}); err != nil {
			return fmt.Errorf("encode archive record %s: %w", r.ID, err)
		}
	}

	return nil
}

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/export"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

// recordView decorates an archive record with its derived numbers.
type recordView struct {
	*model.ArchiveRecord
	ABV         *float64 `json:"abv,omitempty"`
	Attenuation *float64 `json:"attenuation,omitempty"`
	Elapsed     string   `json:"elapsed,omitempty"`
}

func newRecordView(r *model.ArchiveRecord) recordView {
	v := recordView{ArchiveRecord: r}
	if abv, err := r.ABV(); err == nil {
		v.ABV = &abv
	}
	if att, err := r.Attenuation(); err == nil {
		v.Attenuation = &att
	}
	if !r.CreatedAt.IsZero() && !r.ArchivedAt.IsZero() {
		v.Elapsed = cellar.ArchiveElapsed(r)
	}
	return v
}

// handleListHistory handles GET /v1/history. An optional ?search= narrows
// by name, case-insensitively.
func (s *BrewServer) handleListHistory(w http.ResponseWriter, r *http.Request) {
	views := []recordView{}
	for rec := range s.cellar.SearchArchive(r.URL.Query().Get("search")) {
		views = append(views, newRecordView(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": views,
		"total":   len(views),
	})
}

// handleGetHistory handles GET /v1/history/{id}.
func (s *BrewServer) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cellar.ArchiveRecordByID(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRecordView(rec))
}

type editHistoryInput struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Stage    *string  `json:"stage"`
	Recipe   *string  `json:"recipe"`
	Notes    *string  `json:"notes"`
	OG       *float64 `json:"og"`
	FG       *float64 `json:"fg"`
	Volume   *float64 `json:"volume"`
	PH       *float64 `json:"ph"`
	Temp     *float64 `json:"temp"`
}

// handleEditHistory handles PATCH /v1/history/{id}.
func (s *BrewServer) handleEditHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var in editHistoryInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}

	err := s.cellar.EditArchive(id, cellar.EditParams{
		Name:     in.Name,
		Category: in.Category,
		Stage:    in.Stage,
		Recipe:   in.Recipe,
		Notes:    in.Notes,
		OG:       in.OG,
		FG:       in.FG,
		Volume:   in.Volume,
		PH:       in.PH,
		Temp:     in.Temp,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rec, err := s.cellar.ArchiveRecordByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRecordView(rec))
}

// handleExport handles GET /v1/export, streaming the full cellar state as
// JSONL.
func (s *BrewServer) handleExport(w http.ResponseWriter, _ *http.Request) {
	now := s.cellar.Clock().Now()
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "brewlog-"+now.Format(time.DateOnly)+".jsonl"))
	if err := export.JSONL(w, s.cellar.Slots(), s.cellar.ArchiveRecords(), now); err != nil {
		// Headers are already out; the truncated stream is the signal.
		slog.Warn("export stream failed", "error", err)
	}
}

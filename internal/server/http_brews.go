package server

import (
	"net/http"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
)

type createBrewInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	OG       float64 `json:"og"`
	Volume   float64 `json:"volume"`
	Recipe   string  `json:"recipe"`
	Notes    string  `json:"notes"`
}

// handleCreateBrew handles POST /v1/slots/{slot}/brew.
func (s *BrewServer) handleCreateBrew(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in createBrewInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}

	brew, err := s.cellar.CreateBrew(idx, cellar.CreateParams{
		Name:     in.Name,
		Category: in.Category,
		OG:       in.OG,
		Volume:   in.Volume,
		Recipe:   in.Recipe,
		Notes:    in.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.newBrewView(brew))
}

type updateDetailsInput struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Stage    *string `json:"stage"`
	Recipe   *string `json:"recipe"`
	Notes    *string `json:"notes"`
}

// handleUpdateDetails handles PATCH /v1/slots/{slot}/brew. Absent fields
// are left untouched.
func (s *BrewServer) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in updateDetailsInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}

	err := s.cellar.UpdateDetails(idx, cellar.DetailsParams{
		Name:     in.Name,
		Category: in.Category,
		Stage:    in.Stage,
		Recipe:   in.Recipe,
		Notes:    in.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.writeSlotBrew(w, idx)
}

type metricsInput struct {
	OG     *float64 `json:"og"`
	FG     *float64 `json:"fg"`
	Volume *float64 `json:"volume"`
	PH     *float64 `json:"ph"`
	Temp   *float64 `json:"temp"`
}

// handleUpdateMetrics handles POST /v1/slots/{slot}/metrics. Either every
// submitted reading is applied, or none are.
func (s *BrewServer) handleUpdateMetrics(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in metricsInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}

	err := s.cellar.UpdateMetrics(idx, cellar.MetricsParams{
		OG:     in.OG,
		FG:     in.FG,
		Volume: in.Volume,
		PH:     in.PH,
		Temp:   in.Temp,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.writeSlotBrew(w, idx)
}

type transferInput struct {
	ToSlot int     `json:"to_slot"`
	Loss   float64 `json:"loss"`
}

// handleTransfer handles POST /v1/slots/{slot}/transfer, moving the brew to
// another (empty) slot.
func (s *BrewServer) handleTransfer(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in transferInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}
	if in.ToSlot < 1 {
		writeError(w, http.StatusBadRequest, "to_slot must be a slot number")
		return
	}

	if err := s.cellar.Transfer(idx, in.ToSlot-1, in.Loss); err != nil {
		writeDomainError(w, err)
		return
	}
	s.writeSlotBrew(w, in.ToSlot-1)
}

type rackInput struct {
	Vessel string  `json:"vessel"`
	Loss   float64 `json:"loss"`
}

// handleRack handles POST /v1/slots/{slot}/rack, changing the vessel name
// in place.
func (s *BrewServer) handleRack(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in rackInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}

	if err := s.cellar.Rack(idx, in.Vessel, in.Loss); err != nil {
		writeDomainError(w, err)
		return
	}
	s.writeSlotBrew(w, idx)
}

// handleArchive handles POST /v1/slots/{slot}/archive.
func (s *BrewServer) handleArchive(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	record, err := s.cellar.Archive(idx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// handleClearSlot handles DELETE /v1/slots/{slot}/brew. The DELETE itself is
// the confirmation; there is no prompt on this surface.
func (s *BrewServer) handleClearSlot(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	if err := s.cellar.ClearSlot(idx, true); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeSlotBrew responds with the slot's current brew view.
func (s *BrewServer) writeSlotBrew(w http.ResponseWriter, idx int) {
	sl, err := s.cellar.Slot(idx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.newBrewView(sl.Brew))
}

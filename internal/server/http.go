package server

import (
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// Slot numbers in URLs are 1-based, matching what the CLI displays.
func (s *BrewServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/slots", s.handleListSlots)
	mux.HandleFunc("POST /v1/slots", s.handleAddSlot)
	mux.HandleFunc("DELETE /v1/slots/last", s.handleRemoveLastSlot)
	mux.HandleFunc("GET /v1/slots/{slot}", s.handleGetSlot)
	mux.HandleFunc("PATCH /v1/slots/{slot}", s.handleRenameSlot)
	mux.HandleFunc("POST /v1/slots/{slot}/brew", s.handleCreateBrew)
	mux.HandleFunc("PATCH /v1/slots/{slot}/brew", s.handleUpdateDetails)
	mux.HandleFunc("DELETE /v1/slots/{slot}/brew", s.handleClearSlot)
	mux.HandleFunc("POST /v1/slots/{slot}/metrics", s.handleUpdateMetrics)
	mux.HandleFunc("POST /v1/slots/{slot}/transfer", s.handleTransfer)
	mux.HandleFunc("POST /v1/slots/{slot}/rack", s.handleRack)
	mux.HandleFunc("POST /v1/slots/{slot}/archive", s.handleArchive)
	mux.HandleFunc("GET /v1/slots/{slot}/events", s.handleListEvents)
	mux.HandleFunc("POST /v1/slots/{slot}/events", s.handleAddEvent)
	mux.HandleFunc("DELETE /v1/slots/{slot}/events/{event_id}", s.handleDeleteEvent)
	mux.HandleFunc("GET /v1/history", s.handleListHistory)
	mux.HandleFunc("GET /v1/history/{id}", s.handleGetHistory)
	mux.HandleFunc("PATCH /v1/history/{id}", s.handleEditHistory)
	mux.HandleFunc("GET /v1/export", s.handleExport)
	mux.HandleFunc("GET /v1/config", s.handleGetConfig)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return mux
}

// handleHealth handles GET /v1/health.
func (s *BrewServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetConfig handles GET /v1/config.
func (s *BrewServer) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"config":   s.cellar.Config(),
		"warnings": s.cellar.Warnings(),
	})
}

// parseSlot extracts the 1-based slot number from the URL and returns the
// 0-based index. ok is false when the response has already been written.
func parseSlot(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "invalid slot number")
		return 0, false
	}
	return n - 1, true
}

// brewView decorates a brew with its derived numbers for API consumers.
type brewView struct {
	*model.Brew
	ABV         *float64 `json:"abv,omitempty"`
	Attenuation *float64 `json:"attenuation,omitempty"`
	Days        string   `json:"days_fermenting,omitempty"`
}

// slotView is one fermenter slot as the API presents it.
type slotView struct {
	Slot int       `json:"slot"`
	Name string    `json:"name"`
	Brew *brewView `json:"brew,omitempty"`
}

func (s *BrewServer) newBrewView(b *model.Brew) *brewView {
	if b == nil {
		return nil
	}
	v := &brewView{Brew: b}
	if abv, err := b.ABV(); err == nil {
		v.ABV = &abv
	}
	if att, err := b.Attenuation(); err == nil {
		v.Attenuation = &att
	}
	if !b.CreatedAt.IsZero() {
		v.Days = s.cellar.Clock().DaysSince(b.CreatedAt)
	}
	return v
}

func (s *BrewServer) newSlotView(idx int, sl *model.Slot) slotView {
	return slotView{Slot: idx + 1, Name: sl.Name, Brew: s.newBrewView(sl.Brew)}
}

// handleListSlots handles GET /v1/slots.
func (s *BrewServer) handleListSlots(w http.ResponseWriter, _ *http.Request) {
	slots := s.cellar.Slots()
	views := make([]slotView, len(slots))
	for i, sl := range slots {
		views[i] = s.newSlotView(i, sl)
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": views})
}

// handleGetSlot handles GET /v1/slots/{slot}.
func (s *BrewServer) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	sl, err := s.cellar.Slot(idx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.newSlotView(idx, sl))
}

// handleAddSlot handles POST /v1/slots.
func (s *BrewServer) handleAddSlot(w http.ResponseWriter, _ *http.Request) {
	name, err := s.cellar.AddSlot()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"slot": len(s.cellar.Slots()),
		"name": name,
	})
}

// handleRemoveLastSlot handles DELETE /v1/slots/last.
func (s *BrewServer) handleRemoveLastSlot(w http.ResponseWriter, _ *http.Request) {
	if err := s.cellar.RemoveLastSlot(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": len(s.cellar.Slots())})
}

type renameSlotInput struct {
	Name string `json:"name"`
}

// handleRenameSlot handles PATCH /v1/slots/{slot}.
func (s *BrewServer) handleRenameSlot(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in renameSlotInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}
	if err := s.cellar.RenameSlot(idx, in.Name); err != nil {
		writeDomainError(w, err)
		return
	}
	sl, err := s.cellar.Slot(idx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.newSlotView(idx, sl))
}

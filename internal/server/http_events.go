package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

// handleListEvents handles GET /v1/slots/{slot}/events. Supports filtering
// by ?types=a,b, ?since=RFC3339, and ?until=RFC3339.
func (s *BrewServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	sl, err := s.cellar.Slot(idx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if sl.Empty() {
		writeError(w, http.StatusNotFound, "slot is empty")
		return
	}

	var filter model.EventFilter
	q := r.URL.Query()
	if v := q.Get("types"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Types = append(filter.Types, model.EventType(t))
			}
		}
	}
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since: not an RFC 3339 timestamp")
			return
		}
		filter.Since = &ts
	}
	if v := q.Get("until"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "until: not an RFC 3339 timestamp")
			return
		}
		filter.Until = &ts
	}

	events := []*model.Event{}
	for e := range sl.Brew.Log.Query(filter) {
		events = append(events, e)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  sl.Brew.Log.Len(),
	})
}

type addEventInput struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// handleAddEvent handles POST /v1/slots/{slot}/events.
func (s *BrewServer) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	var in addEventInput
	if err := decodeBody(w, r, &in); err != nil {
		return
	}

	event, err := s.cellar.AddEvent(idx, model.EventType(in.Type), in.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// handleDeleteEvent handles DELETE /v1/slots/{slot}/events/{event_id}.
func (s *BrewServer) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	idx, ok := parseSlot(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("event_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := s.cellar.DeleteEvent(idx, id, true); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

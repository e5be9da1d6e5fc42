// Package server exposes the cellar over HTTP/JSON so a dashboard or
// collaborating tool can read and mutate state while the CLI does the same.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

// BrewServer serves the HTTP API over a cellar.Manager. It also implements
// events.Publisher, so wiring it in as the manager's publisher streams every
// mutation out over SSE.
type BrewServer struct {
	cellar *cellar.Manager
	sseHub *sseHub
}

// NewBrewServer returns a server over the given manager. Attach the returned
// server as the manager's publisher to enable the event stream.
func NewBrewServer(m *cellar.Manager) *BrewServer {
	return &BrewServer{
		cellar: m,
		sseHub: newSSEHub(),
	}
}

// Publish implements events.Publisher by fanning the event out to connected
// SSE clients. It never fails; marshal errors are logged and dropped.
func (s *BrewServer) Publish(_ context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return nil
	}
	s.sseHub.broadcast(topic, payload)
	return nil
}

// Close implements events.Publisher. SSE clients disconnect when their
// requests end, so there is nothing to release.
func (s *BrewServer) Close() error { return nil }

// decodeBody decodes a JSON request body into dst, writing a 400 and
// returning the error when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return err
	}
	return nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain errors onto HTTP statuses: bad input is 400,
// a missing slot, brew, or record is 404, anything else is 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		ve  *model.ValidationError
		re  *model.RangeError
		ce  *model.CalculationError
		nfe *model.NotFoundError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &re), errors.As(err, &ce):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &nfe):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

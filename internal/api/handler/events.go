package handler

import (
	"net/http"

	"github.com/mcoot/planetgame/internal/api/middleware"
	"github.com/mcoot/planetgame/internal/events"
)

// EventsHandler streams game events over a websocket
type EventsHandler struct {
	hub *events.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/events. Anonymous watchers are allowed.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	name := ""
	if id := middleware.GetIdentity(r.Context()); id != nil {
		name = id.Name
	}
	// Upgrade failures have already been answered with an HTTP error
	_ = events.ServeWS(w, r, h.hub, name)
}

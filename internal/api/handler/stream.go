package handler

import (
	"net/http"

	"github.com/mcoot/quintrical/internal/services/game"
	"github.com/mcoot/quintrical/internal/stream"
)

// StreamHandler serves live game events
type StreamHandler struct {
	gameController game.ControllerInterface
	hubs           *stream.HubManager
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(gameController game.ControllerInterface, hubs *stream.HubManager) *StreamHandler {
	return &StreamHandler{gameController: gameController, hubs: hubs}
}

// Events handles GET /api/v1/games/{id}/events as server-sent events
func (h *StreamHandler) Events(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	h.hubs.ServeSSE(w, r, hub)
}

// Websocket handles GET /api/v1/games/{id}/ws
func (h *StreamHandler) Websocket(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	h.hubs.ServeWS(w, r, hub)
}

// hub checks the game exists before opening its hub so unknown IDs get a 404
func (h *StreamHandler) hub(w http.ResponseWriter, r *http.Request) (*stream.Hub, bool) {
	id := gameID(r)
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return h.hubs.GetOrCreateHub(id), true
}

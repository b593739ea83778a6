package handler

import (
	"net/http"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/stream"
)

// HealthHandler reports liveness
type HealthHandler struct {
	storage string
	hubs    *stream.HubManager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage string, hubs *stream.HubManager) *HealthHandler {
	return &HealthHandler{storage: storage, hubs: hubs}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := response.Health{Status: "ok", Storage: h.storage}
	if h.hubs != nil {
		resp.Streams = h.hubs.Connections()
	}
	response.JSON(w, http.StatusOK, resp)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/quintrical/internal/api/handler"
	"github.com/mcoot/quintrical/internal/api/middleware"
	"github.com/mcoot/quintrical/internal/services/game"
	"github.com/mcoot/quintrical/internal/stream"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	Hubs           *stream.HubManager
	StorageType    string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController)
	streamHandler := handler.NewStreamHandler(cfg.GameController, cfg.Hubs)
	healthHandler := handler.NewHealthHandler(cfg.StorageType, cfg.Hubs)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/anchors", gameHandler.Anchors).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/placements", gameHandler.Placements).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/step", gameHandler.Step).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/autoplay", gameHandler.Autoplay).Methods(http.MethodPost)

	// Live event streams
	if cfg.Hubs != nil {
		api.HandleFunc("/games/{id}/events", streamHandler.Events).Methods(http.MethodGet)
		api.HandleFunc("/games/{id}/ws", streamHandler.Websocket).Methods(http.MethodGet)
	}

	api.HandleFunc("/pieces", gameHandler.Pieces).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	return r
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/quintrical/internal/api/request"
	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{gameController: gameController}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), game.CreateOptions{Width: req.Width, Height: req.Height})
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/games/"+string(g.ID))
	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameList{Games: make([]string, len(ids))}
	for i, id := range ids {
		resp.Games[i] = string(id)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}. The board fingerprint doubles as the
// ETag so pollers can skip unchanged states.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	etag := `"` + g.Board.Fingerprint() + "-" + strconv.Itoa(g.Step) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Anchors handles GET /api/v1/games/{id}/anchors
func (h *GameHandler) Anchors(w http.ResponseWriter, r *http.Request) {
	color, anchors, err := h.gameController.Anchors(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Anchors{
		Player:  string(color),
		Anchors: response.PointsFromModel(anchors),
	})
}

// Placements handles GET /api/v1/games/{id}/placements?row=&col=&piece=
func (h *GameHandler) Placements(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	row, errRow := strconv.Atoi(query.Get("row"))
	col, errCol := strconv.Atoi(query.Get("col"))
	if errRow != nil || errCol != nil {
		WriteError(w, NewInvalidRequestError("row and col must be integers"))
		return
	}
	piece := query.Get("piece")
	if piece == "" {
		WriteError(w, NewInvalidRequestError("piece is required"))
		return
	}

	placements, err := h.gameController.Placements(r.Context(), gameID(r),
		geometry.Point{Row: row, Col: col}, model.PieceID(piece))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlacementsFromModel(placements))
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Piece == "" {
		WriteError(w, NewInvalidRequestError("piece is required"))
		return
	}

	id := gameID(r)
	result, err := h.gameController.Place(r.Context(), id,
		geometry.Point{Row: req.Row, Col: req.Col}, model.PieceID(req.Piece), req.Option)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeTurn(w, r, id, result)
}

// Step handles POST /api/v1/games/{id}/step
func (h *GameHandler) Step(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	result, err := h.gameController.Step(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeTurn(w, r, id, result)
}

// Autoplay handles POST /api/v1/games/{id}/autoplay
func (h *GameHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	var req request.AutoplayRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.MaxTurns < 0 {
		WriteError(w, NewInvalidRequestError("max_turns must not be negative"))
		return
	}

	id := gameID(r)
	results, err := h.gameController.Autoplay(r.Context(), id, req.MaxTurns)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AutoplayResponse{
		Turns: response.TurnsFromModel(results),
		Game:  response.GameStateFromModel(g),
	})
}

func (h *GameHandler) writeTurn(w http.ResponseWriter, r *http.Request, id model.GameID, result model.TurnResult) {
	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TurnResponse{
		Turn: response.TurnFromModel(result),
		Game: response.GameStateFromModel(g),
	})
}

// Pieces handles GET /api/v1/pieces
func (h *GameHandler) Pieces(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CatalogFromModel(h.gameController.Catalog()))
}

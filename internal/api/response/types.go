package response

import (
	"time"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

// Point is a board coordinate
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PointFromModel converts a geometry.Point
func PointFromModel(p geometry.Point) Point {
	return Point{Row: p.Row, Col: p.Col}
}

// PointsFromModel converts a list of points
func PointsFromModel(points []geometry.Point) []Point {
	result := make([]Point, len(points))
	for i, p := range points {
		result[i] = PointFromModel(p)
	}
	return result
}

// Piece describes a catalog piece and its orientations
type Piece struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Size         int     `json:"size"`
	Orientations []Shape `json:"orientations,omitempty"`
}

// Shape is one orientation with its ASCII drawing
type Shape struct {
	Cells   []Point `json:"cells"`
	Drawing string  `json:"drawing"`
}

// ShapeFromModel converts a geometry.Shape
func ShapeFromModel(s geometry.Shape) Shape {
	return Shape{Cells: PointsFromModel(s.Points), Drawing: s.String()}
}

// PieceFromModel converts a model.Piece, optionally with every orientation
func PieceFromModel(p *model.Piece, withOrientations bool) Piece {
	result := Piece{ID: string(p.ID), Name: p.Name, Size: p.Size()}
	if withOrientations {
		result.Orientations = make([]Shape, len(p.Orientations))
		for i, o := range p.Orientations {
			result.Orientations[i] = ShapeFromModel(o)
		}
	}
	return result
}

// Catalog lists every piece
type Catalog struct {
	Name       string  `json:"name"`
	TotalCells int     `json:"total_cells"`
	Pieces     []Piece `json:"pieces"`
}

// CatalogFromModel converts a catalog.Catalog
func CatalogFromModel(c *catalog.Catalog) Catalog {
	pieces := c.Pieces()
	result := Catalog{Name: c.Name, TotalCells: c.TotalCells(), Pieces: make([]Piece, len(pieces))}
	for i, p := range pieces {
		result.Pieces[i] = PieceFromModel(p, true)
	}
	return result
}

// Player is a seat at the table
type Player struct {
	Color         string   `json:"color"`
	StartCorner   Point    `json:"start_corner"`
	Status        string   `json:"status"`
	Pieces        []string `json:"pieces"`
	Remaining     int      `json:"remaining_cells"`
	Residual      int      `json:"residual"`
	Possibilities int      `json:"possibilities"`
	Placed        int      `json:"placed"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p *model.Player) Player {
	pieces := make([]string, len(p.Pieces))
	for i, piece := range p.Pieces {
		pieces[i] = string(piece.ID)
	}
	return Player{
		Color:         string(p.Color),
		StartCorner:   PointFromModel(p.StartCorner),
		Status:        string(p.Status),
		Pieces:        pieces,
		Remaining:     p.RemainingCells(),
		Residual:      p.Residual,
		Possibilities: p.Possibilities,
		Placed:        p.Placed,
	}
}

// Board is the grid of cell owners; empty cells are empty strings
type Board struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Cells       [][]string `json:"cells"`
	Fingerprint string     `json:"fingerprint"`
}

// BoardFromModel converts a model.Board
func BoardFromModel(b *model.Board) Board {
	rows := b.Rows()
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, owner := range row {
			cells[i][j] = string(owner)
		}
	}
	return Board{Width: b.Width, Height: b.Height, Cells: cells, Fingerprint: b.Fingerprint()}
}

// Standing is one row of the results table
type Standing struct {
	Color          string `json:"color"`
	Status         string `json:"status"`
	PiecesLeft     int    `json:"pieces_left"`
	RemainingCells int    `json:"remaining_cells"`
	Residual       int    `json:"residual"`
	Possibilities  int    `json:"possibilities"`
}

// StandingsFromModel converts model standings
func StandingsFromModel(standings []model.Standing) []Standing {
	result := make([]Standing, len(standings))
	for i, s := range standings {
		result[i] = Standing{
			Color:          string(s.Color),
			Status:         string(s.Status),
			PiecesLeft:     s.PiecesLeft,
			RemainingCells: s.RemainingCells,
			Residual:       s.Residual,
			Possibilities:  s.Possibilities,
		}
	}
	return result
}

// GameState represents the full state of a game
type GameState struct {
	ID            string     `json:"id"`
	State         string     `json:"state"`
	Board         Board      `json:"board"`
	Players       []Player   `json:"players"`
	CurrentPlayer string     `json:"current_player"`
	Step          int        `json:"step"`
	StepLimit     int        `json:"step_limit"`
	InGame        int        `json:"in_game"`
	Standings     []Standing `json:"standings"`
	Leaders       []string   `json:"leaders,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GameStateFromModel converts a model.Game
func GameStateFromModel(g *model.Game) GameState {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerFromModel(p)
	}

	var leaders []string
	if g.IsFinished() {
		for _, c := range g.Leaders() {
			leaders = append(leaders, string(c))
		}
	}

	var current string
	if p := g.CurrentPlayer(); p != nil {
		current = string(p.Color)
	}

	return GameState{
		ID:            string(g.ID),
		State:         string(g.State),
		Board:         BoardFromModel(g.Board),
		Players:       players,
		CurrentPlayer: current,
		Step:          g.Step,
		StepLimit:     g.StepLimit,
		InGame:        g.InGame,
		Standings:     StandingsFromModel(g.Standings()),
		Leaders:       leaders,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GameList lists stored games
type GameList struct {
	Games []string `json:"games"`
}

// Anchors lists the cells the current player may start from
type Anchors struct {
	Player  string  `json:"player"`
	Anchors []Point `json:"anchors"`
}

// Placement is one legal candidate move
type Placement struct {
	Index       int     `json:"index"`
	Piece       string  `json:"piece"`
	Anchor      Point   `json:"anchor"`
	Orientation int     `json:"orientation"`
	Cells       []Point `json:"cells"`
	Drawing     string  `json:"drawing"`
	SelfDelta   int     `json:"self_delta"`
	OthersDelta int     `json:"others_delta"`
}

// PlacementFromModel converts a model.Placement at position index
func PlacementFromModel(index int, p model.Placement) Placement {
	var piece string
	if p.Piece != nil {
		piece = string(p.Piece.ID)
	}
	return Placement{
		Index:       index,
		Piece:       piece,
		Anchor:      PointFromModel(p.Anchor),
		Orientation: p.Orientation,
		Cells:       PointsFromModel(p.Shape.Points),
		Drawing:     geometry.Normalize(p.Shape).String(),
		SelfDelta:   p.SelfDelta,
		OthersDelta: p.OthersDelta,
	}
}

// PlacementsFromModel converts a list of placements, keeping their order
func PlacementsFromModel(placements []model.Placement) []Placement {
	result := make([]Placement, len(placements))
	for i, p := range placements {
		result[i] = PlacementFromModel(i, p)
	}
	return result
}

// Turn reports the result of a single turn
type Turn struct {
	Step          int        `json:"step"`
	Player        string     `json:"player"`
	Outcome       string     `json:"outcome"`
	Placement     *Placement `json:"placement,omitempty"`
	Possibilities int        `json:"possibilities"`
	Residual      int        `json:"residual,omitempty"`
	GameOver      bool       `json:"game_over"`
}

// TurnFromModel converts a model.TurnResult
func TurnFromModel(t model.TurnResult) Turn {
	result := Turn{
		Step:          t.Step,
		Player:        string(t.Player),
		Outcome:       string(t.Outcome),
		Possibilities: t.Possibilities,
		Residual:      t.Residual,
		GameOver:      t.GameOver,
	}
	if t.Placement != nil {
		p := PlacementFromModel(0, *t.Placement)
		result.Placement = &p
	}
	return result
}

// TurnsFromModel converts a list of turn results
func TurnsFromModel(turns []model.TurnResult) []Turn {
	result := make([]Turn, len(turns))
	for i, t := range turns {
		result[i] = TurnFromModel(t)
	}
	return result
}

// TurnResponse is returned by the step and place endpoints
type TurnResponse struct {
	Turn Turn      `json:"turn"`
	Game GameState `json:"game"`
}

// AutoplayResponse is returned by the autoplay endpoint
type AutoplayResponse struct {
	Turns []Turn    `json:"turns"`
	Game  GameState `json:"game"`
}

// Event is the wire form of a published game event
type Event struct {
	Type      string     `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	GameID    string     `json:"game_id"`
	Turn      *Turn      `json:"turn,omitempty"`
	Board     string     `json:"fingerprint,omitempty"`
	Standings []Standing `json:"standings,omitempty"`
	Leaders   []string   `json:"leaders,omitempty"`
}

// EventFromModel converts a model.Event
func EventFromModel(e model.Event) Event {
	result := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		GameID:    string(e.GameID),
	}
	switch payload := e.Payload.(type) {
	case model.TurnPlayedPayload:
		turn := TurnFromModel(payload.Turn)
		result.Turn = &turn
		result.Board = payload.Fingerprint
	case model.GameFinishedPayload:
		result.Standings = StandingsFromModel(payload.Standings)
		for _, c := range payload.Leaders {
			result.Leaders = append(result.Leaders, string(c))
		}
	}
	return result
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Streams int64  `json:"streams"`
}

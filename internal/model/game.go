package model

import (
	"cmp"
	"slices"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress"
	GameStateFinished   GameState = "finished"
)

// StepLimitMargin is added to players × pieces to bound automatic play
const StepLimitMargin = 10

// Game holds everything needed to play: the board, the seats and the turn cursor
type Game struct {
	ID      GameID
	State   GameState
	Board   *Board
	Players []*Player

	// Turn management
	Current   int // Index into Players of the player to move
	Step      int // Turns taken so far, including eliminations and skips
	InGame    int // Successful placements in the current round
	StepLimit int // Hard ceiling on Step for automatic play

	CatalogSize int // Pieces each player started with

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGame seats one player per color, each holding the full catalog
func NewGame(id GameID, width, height int, pieces []*Piece, now time.Time) (*Game, error) {
	if len(pieces) == 0 {
		return nil, ErrEmptyCatalog
	}
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}

	colors := Colors()
	corners := StartCorners(width, height)
	players := make([]*Player, len(colors))
	for i, color := range colors {
		players[i] = NewPlayer(color, corners[i], pieces)
	}

	return &Game{
		ID:          id,
		State:       GameStateInProgress,
		Board:       board,
		Players:     players,
		StepLimit:   len(players)*len(pieces) + StepLimitMargin,
		CatalogSize: len(pieces),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.Current]
}

// Player returns the player with the given color
func (g *Game) Player(color Color) (*Player, error) {
	for _, p := range g.Players {
		if p.Color == color {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// Clone returns a copy of the game that shares only the immutable pieces
func (g *Game) Clone() *Game {
	clone := *g
	clone.Board = g.Board.Clone()
	clone.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		clone.Players[i] = p.Clone()
	}
	return &clone
}

// IsFinished returns true once the game has stopped
func (g *Game) IsFinished() bool {
	return g.State == GameStateFinished
}

// ActivePlayers returns the number of players not yet eliminated
func (g *Game) ActivePlayers() int {
	count := 0
	for _, p := range g.Players {
		if !p.IsEliminated() {
			count++
		}
	}
	return count
}

// Standing summarizes a player's position
type Standing struct {
	Color          Color
	Status         PlayerStatus
	PiecesLeft     int
	RemainingCells int
	Residual       int
	Possibilities  int
}

// Standings returns every player ordered by remaining cells, fewest first.
// Ties keep turn order.
func (g *Game) Standings() []Standing {
	result := make([]Standing, len(g.Players))
	for i, p := range g.Players {
		result[i] = Standing{
			Color:          p.Color,
			Status:         p.Status,
			PiecesLeft:     len(p.Pieces),
			RemainingCells: p.RemainingCells(),
			Residual:       p.Residual,
			Possibilities:  p.Possibilities,
		}
	}
	slices.SortStableFunc(result, func(a, b Standing) int {
		return cmp.Compare(a.RemainingCells, b.RemainingCells)
	})
	return result
}

// Leaders returns the colors with the fewest remaining cells
func (g *Game) Leaders() []Color {
	standings := g.Standings()
	if len(standings) == 0 {
		return nil
	}
	best := standings[0].RemainingCells
	var leaders []Color
	for _, s := range standings {
		if s.RemainingCells == best {
			leaders = append(leaders, s.Color)
		}
	}
	return leaders
}

package model

import (
	"slices"

	"github.com/mcoot/quintrical/internal/geometry"
)

// PlayerStatus tracks whether a player can still move
type PlayerStatus string

const (
	PlayerActive     PlayerStatus = "active"
	PlayerEliminated PlayerStatus = "eliminated"
)

// Player is one of the four seats at the table
type Player struct {
	Color       Color
	StartCorner geometry.Point
	Pieces      []*Piece // Remaining inventory, shared catalog pieces
	Status      PlayerStatus

	Residual      int // Cells left unplaced, set on elimination
	Possibilities int // Number of options available on the last turn
	Placed        int // Number of pieces committed so far
}

// NewPlayer creates an active player holding the whole catalog
func NewPlayer(color Color, corner geometry.Point, pieces []*Piece) *Player {
	return &Player{
		Color:       color,
		StartCorner: corner,
		Pieces:      slices.Clone(pieces),
		Status:      PlayerActive,
	}
}

// Clone returns a copy of the player with its own inventory slice
func (p *Player) Clone() *Player {
	clone := *p
	clone.Pieces = slices.Clone(p.Pieces)
	return &clone
}

// IsEliminated returns true once the player has run out of moves
func (p *Player) IsEliminated() bool {
	return p.Status == PlayerEliminated
}

// HasPiece returns true if the exact piece is still in the inventory
func (p *Player) HasPiece(piece *Piece) bool {
	return slices.Contains(p.Pieces, piece)
}

// FindPiece returns the first remaining piece with the given ID
func (p *Player) FindPiece(id PieceID) (*Piece, bool) {
	for _, piece := range p.Pieces {
		if piece.ID == id {
			return piece, true
		}
	}
	return nil, false
}

// RemovePiece removes one occurrence of the piece, matched by reference
func (p *Player) RemovePiece(piece *Piece) bool {
	idx := slices.Index(p.Pieces, piece)
	if idx < 0 {
		return false
	}
	p.Pieces = slices.Delete(p.Pieces, idx, idx+1)
	return true
}

// RemainingCells returns the summed size of the remaining pieces
func (p *Player) RemainingCells() int {
	return TotalSize(p.Pieces)
}

// Eliminate marks the player as out of the game and records the residual
func (p *Player) Eliminate() {
	p.Status = PlayerEliminated
	p.Residual = p.RemainingCells()
	p.Possibilities = 0
}

// StartCorners returns the reserved corners in turn order:
// top-left, bottom-left, bottom-right, top-right
func StartCorners(width, height int) []geometry.Point {
	return []geometry.Point{
		{Row: 0, Col: 0},
		{Row: height - 1, Col: 0},
		{Row: height - 1, Col: width - 1},
		{Row: 0, Col: width - 1},
	}
}

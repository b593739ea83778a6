package model

import (
	"fmt"

	"github.com/mcoot/quintrical/internal/geometry"
)

// PieceID uniquely identifies a piece within a catalog
type PieceID string

// Piece is a polyomino from the shared catalog. Pieces are immutable once
// created and shared by pointer between all players.
type Piece struct {
	ID           PieceID
	Name         string
	Base         geometry.Shape   // Canonical base orientation
	Orientations []geometry.Shape // Distinct rotations and reflections, Orientations[0] == Base
}

// NewPiece canonicalizes the base shape and derives its orientations
func NewPiece(id PieceID, name string, points []geometry.Point) (*Piece, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidPiece)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s has no cells", ErrInvalidPiece, id)
	}
	base := geometry.Canonical(geometry.NewShape(string(id), points...))
	if base.Len() != len(points) {
		return nil, fmt.Errorf("%w: %s has duplicate cells", ErrInvalidPiece, id)
	}
	return &Piece{
		ID:           id,
		Name:         name,
		Base:         base,
		Orientations: geometry.DeriveOrientations(base),
	}, nil
}

// Size returns the number of cells in the piece
func (p *Piece) Size() int {
	return p.Base.Len()
}

// Matches reports whether shape is some orientation of the piece, in any position
func (p *Piece) Matches(shape geometry.Shape) bool {
	if shape.Len() != p.Size() {
		return false
	}
	target := geometry.Canonical(shape)
	for _, o := range p.Orientations {
		if geometry.Equal(geometry.Canonical(o), target) {
			return true
		}
	}
	return false
}

// TotalSize returns the summed cell count of the given pieces
func TotalSize(pieces []*Piece) int {
	total := 0
	for _, p := range pieces {
		total += p.Size()
	}
	return total
}

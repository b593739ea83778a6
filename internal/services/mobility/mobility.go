// Package mobility computes where a player may start a new placement.
//
// A cell is an anchor for a color when it is empty, touches that color
// diagonally, and does not touch it orthogonally. A player with no pieces
// on the board instead anchors on their start corner, as long as that
// corner is still free.
package mobility

import (
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

var (
	plusOffsets = [4]geometry.Point{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	xOffsets    = [4]geometry.Point{{Row: -1, Col: -1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}, {Row: -1, Col: 1}}
)

// IsAnchor reports whether the on-board cell is a corner-rule anchor for color
func IsAnchor(b *model.Board, color model.Color, row, col int) bool {
	if !b.IsEmpty(b.CellAt(row, col)) {
		return false
	}
	if touches(b, color, row, col, plusOffsets) {
		return false
	}
	return touches(b, color, row, col, xOffsets)
}

func touches(b *model.Board, color model.Color, row, col int, offsets [4]geometry.Point) bool {
	for _, o := range offsets {
		r, c := row+o.Row, col+o.Col
		if b.IsOnBoard(r, c) && b.Cells[r*b.Width+c].Owner == color {
			return true
		}
	}
	return false
}

// IsValidAnchor reports whether pt is one of the player's valid anchors
func IsValidAnchor(b *model.Board, p *model.Player, pt geometry.Point) bool {
	if !b.IsOnBoard(pt.Row, pt.Col) {
		return false
	}
	idx := b.Index(pt.Row, pt.Col)
	for _, a := range ValidAnchors(b, p) {
		if a == idx {
			return true
		}
	}
	return false
}

// ValidAnchors returns the indices of every cell where the player may
// anchor a new piece. When no corner-rule anchor exists the player's start
// corner is returned, but only if it is empty and the player has not placed
// anything yet; otherwise the result is empty and the player has no moves.
func ValidAnchors(b *model.Board, p *model.Player) []int {
	var anchors []int
	for idx := range b.Cells {
		row, col := idx/b.Width, idx%b.Width
		if IsAnchor(b, p.Color, row, col) {
			anchors = append(anchors, idx)
		}
	}
	if len(anchors) > 0 {
		return anchors
	}
	if usesStartCorner(b, p) {
		return []int{b.Index(p.StartCorner.Row, p.StartCorner.Col)}
	}
	return nil
}

// AnchorCount returns len(ValidAnchors(b, p)) without building the list
func AnchorCount(b *model.Board, p *model.Player) int {
	return effective(b, p, rawCount(b, p.Color))
}

// usesStartCorner reports whether the start-corner fallback applies
func usesStartCorner(b *model.Board, p *model.Player) bool {
	corner := p.StartCorner
	if !b.IsOnBoard(corner.Row, corner.Col) {
		return false
	}
	return b.CountColor(p.Color) == 0 && b.IsEmpty(b.CellAt(corner.Row, corner.Col))
}

func rawCount(b *model.Board, color model.Color) int {
	count := 0
	for idx := range b.Cells {
		if IsAnchor(b, color, idx/b.Width, idx%b.Width) {
			count++
		}
	}
	return count
}

func effective(b *model.Board, p *model.Player, raw int) int {
	if raw > 0 {
		return raw
	}
	if usesStartCorner(b, p) {
		return 1
	}
	return 0
}

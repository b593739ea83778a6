// Package legality enumerates the legal placements of a piece.
package legality

import (
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/mobility"
)

// CanPlace returns every legal placement of piece for player such that one
// of the piece's cells lands on anchor. Each orientation is tried with each
// of its cells on the anchor, so the same absolute shape can appear more
// than once.
//
// Every candidate is probed by placing it on the board to measure the
// mobility deltas; the board is always restored before CanPlace returns.
func CanPlace(game *model.Game, anchor geometry.Point, piece *model.Piece, player *model.Player) []model.Placement {
	tracker := mobility.NewTracker(game.Board, game.Players)
	return canPlace(game, tracker, anchor, piece, player)
}

// Options returns every legal placement of every remaining piece of the
// player across all of the player's valid anchors
func Options(game *model.Game, player *model.Player) []model.Placement {
	anchors := mobility.ValidAnchors(game.Board, player)
	if len(anchors) == 0 || len(player.Pieces) == 0 {
		return nil
	}

	tracker := mobility.NewTracker(game.Board, game.Players)
	var result []model.Placement
	for _, idx := range anchors {
		anchor := game.Board.Coords(idx)
		for _, piece := range player.Pieces {
			result = append(result, canPlace(game, tracker, anchor, piece, player)...)
		}
	}
	return result
}

// IsLegal reports whether every cell of shape is on the board, empty, and
// not orthogonally adjacent to the player's own color
func IsLegal(b *model.Board, color model.Color, shape geometry.Shape) bool {
	if shape.Len() == 0 {
		return false
	}
	for _, p := range shape.Points {
		if !b.IsOnBoard(p.Row, p.Col) {
			return false
		}
		if !b.IsEmpty(b.CellAt(p.Row, p.Col)) {
			return false
		}
		for _, n := range b.PlusNeighbors(p.Row, p.Col) {
			if b.HasColor(color, b.CellAt(n.Row, n.Col)) {
				return false
			}
		}
	}
	return true
}

func canPlace(game *model.Game, tracker *mobility.Tracker, anchor geometry.Point, piece *model.Piece, player *model.Player) []model.Placement {
	self := playerIndex(game, player)
	current := tracker.Counts()

	var result []model.Placement
	for oi, orientation := range piece.Orientations {
		for _, c := range orientation.Points {
			shifted := geometry.Translate(orientation, c.Sub(anchor))
			if !IsLegal(game.Board, player.Color, shifted) {
				continue
			}

			after := probe(game.Board, tracker, player.Color, shifted)
			placement := model.Placement{
				Shape:       shifted,
				Piece:       piece,
				Anchor:      anchor,
				Orientation: oi,
			}
			for i := range after {
				delta := after[i] - current[i]
				if i == self {
					placement.SelfDelta = delta
				} else {
					placement.OthersDelta += delta
				}
			}
			result = append(result, placement)
		}
	}
	return result
}

// probe temporarily commits shape and returns every player's anchor count
// with it on the board. The shape is removed again even if counting panics.
func probe(b *model.Board, tracker *mobility.Tracker, color model.Color, shape geometry.Shape) []int {
	region := tracker.Region(shape)
	before := tracker.RegionCounts(region)

	b.Place(color, shape)
	defer b.Unplace(shape)

	return tracker.CountsAfter(before, region)
}

func playerIndex(game *model.Game, player *model.Player) int {
	for i, p := range game.Players {
		if p == player {
			return i
		}
	}
	return -1
}

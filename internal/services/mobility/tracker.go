package mobility

import (
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

// Tracker keeps every player's anchor count for one board position and
// recomputes them after a hypothetical placement by rescanning only the
// cells the placement can affect: the shape itself and its eight-neighbourhood.
type Tracker struct {
	board   *model.Board
	players []*model.Player
	raw     []int // corner-rule anchors per player, fallback not applied
}

// NewTracker scans the whole board once for each player
func NewTracker(b *model.Board, players []*model.Player) *Tracker {
	raw := make([]int, len(players))
	for i, p := range players {
		raw[i] = rawCount(b, p.Color)
	}
	return &Tracker{board: b, players: players, raw: raw}
}

// Counts returns every player's anchor count for the current board
func (t *Tracker) Counts() []int {
	result := make([]int, len(t.players))
	for i, p := range t.players {
		result[i] = effective(t.board, p, t.raw[i])
	}
	return result
}

// Region returns the on-board cell indices whose anchor status can change
// when shape is placed
func (t *Tracker) Region(shape geometry.Shape) []int {
	seen := make(map[int]struct{}, shape.Len()*9)
	region := make([]int, 0, shape.Len()*9)
	for _, p := range shape.Points {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := p.Row+dr, p.Col+dc
				if !t.board.IsOnBoard(r, c) {
					continue
				}
				idx := r*t.board.Width + c
				if _, ok := seen[idx]; ok {
					continue
				}
				seen[idx] = struct{}{}
				region = append(region, idx)
			}
		}
	}
	return region
}

// RegionCounts counts each player's corner-rule anchors inside region on
// the board as it is right now
func (t *Tracker) RegionCounts(region []int) []int {
	result := make([]int, len(t.players))
	for i, p := range t.players {
		for _, idx := range region {
			if IsAnchor(t.board, p.Color, idx/t.board.Width, idx%t.board.Width) {
				result[i]++
			}
		}
	}
	return result
}

// CountsAfter must be called while a placement is on the board. before is
// RegionCounts for the same region taken prior to placing it.
func (t *Tracker) CountsAfter(before []int, region []int) []int {
	now := t.RegionCounts(region)
	result := make([]int, len(t.players))
	for i, p := range t.players {
		result[i] = effective(t.board, p, t.raw[i]-before[i]+now[i])
	}
	return result
}

package mobility

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quintrical/internal/dependencies/random"
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

type MobilitySuite struct {
	suite.Suite
	board   *model.Board
	players []*model.Player
	red     *model.Player
	green   *model.Player
}

func TestMobilitySuite(t *testing.T) {
	suite.Run(t, new(MobilitySuite))
}

func (s *MobilitySuite) SetupTest() {
	var err error
	s.board, err = model.NewBoard(8, 8)
	s.Require().NoError(err)

	corners := model.StartCorners(8, 8)
	s.players = make([]*model.Player, 4)
	for i, color := range model.Colors() {
		s.players[i] = model.NewPlayer(color, corners[i], nil)
	}
	s.red, s.green = s.players[0], s.players[1]
}

func (s *MobilitySuite) place(color model.Color, coords ...[2]int) geometry.Shape {
	points := make([]geometry.Point, len(coords))
	for i, c := range coords {
		points[i] = geometry.Point{Row: c[0], Col: c[1]}
	}
	shape := geometry.NewShape("test", points...)
	s.board.Place(color, shape)
	return shape
}

// assertAnchorInvariant checks the corner rule for every returned index
func (s *MobilitySuite) assertAnchorInvariant(p *model.Player, anchors []int) {
	for _, idx := range anchors {
		pt := s.board.Coords(idx)
		s.True(s.board.IsEmpty(s.board.Cells[idx]), "anchor %v is occupied", pt)

		diagonal := 0
		for _, n := range s.board.XNeighbors(pt.Row, pt.Col) {
			if s.board.HasColor(p.Color, s.board.CellAt(n.Row, n.Col)) {
				diagonal++
			}
		}
		s.Positive(diagonal, "anchor %v has no diagonal neighbour", pt)

		for _, n := range s.board.PlusNeighbors(pt.Row, pt.Col) {
			s.False(s.board.HasColor(p.Color, s.board.CellAt(n.Row, n.Col)),
				"anchor %v touches own color orthogonally", pt)
		}
	}
}

func (s *MobilitySuite) TestEmptyBoardFallsBackToStartCorner() {
	for i, p := range s.players {
		anchors := ValidAnchors(s.board, p)
		corner := model.StartCorners(8, 8)[i]
		s.Equal([]int{s.board.Index(corner.Row, corner.Col)}, anchors)
		s.Equal(1, AnchorCount(s.board, p))
	}
}

func (s *MobilitySuite) TestAnchorsFollowCornerRule() {
	s.place(model.ColorRed, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})

	anchors := ValidAnchors(s.board, s.red)

	// Diagonals of the L: (1,1) touches (0,1) and (1,0) orthogonally, so only
	// (1,2) and (2,1) qualify.
	s.ElementsMatch([]int{s.board.Index(1, 2), s.board.Index(2, 1)}, anchors)
	s.assertAnchorInvariant(s.red, anchors)
	s.Equal(2, AnchorCount(s.board, s.red))
}

func (s *MobilitySuite) TestOtherColorsDoNotCount() {
	s.place(model.ColorGreen, [2]int{3, 3})

	anchors := ValidAnchors(s.board, s.red)

	// Red has nothing placed, so it still falls back to its corner
	s.Equal([]int{0}, anchors)
	s.Len(ValidAnchors(s.board, s.green), 4)
}

func (s *MobilitySuite) TestOpponentPieceBlocksAnchor() {
	s.place(model.ColorRed, [2]int{0, 0})
	s.place(model.ColorBlue, [2]int{1, 1})

	s.Empty(ValidAnchors(s.board, s.red))
	s.Equal(0, AnchorCount(s.board, s.red))
}

func (s *MobilitySuite) TestOccupiedStartCornerGivesNoAnchor() {
	// Green sits on red's corner before red has moved
	s.place(model.ColorGreen, [2]int{0, 0})

	s.Empty(ValidAnchors(s.board, s.red))
}

func (s *MobilitySuite) TestBlockedPlayerDoesNotFallBack() {
	s.place(model.ColorRed, [2]int{3, 3})
	s.place(model.ColorBlue, [2]int{2, 2}, [2]int{2, 4}, [2]int{4, 2}, [2]int{4, 4})

	s.Empty(ValidAnchors(s.board, s.red))
}

func (s *MobilitySuite) TestIsValidAnchor() {
	s.True(IsValidAnchor(s.board, s.red, geometry.Point{Row: 0, Col: 0}))
	s.False(IsValidAnchor(s.board, s.red, geometry.Point{Row: 7, Col: 0}))
	s.False(IsValidAnchor(s.board, s.red, geometry.Point{Row: -1, Col: 0}))
	s.False(IsValidAnchor(s.board, s.red, geometry.Point{Row: 0, Col: 8}))

	s.place(model.ColorRed, [2]int{0, 0})
	s.False(IsValidAnchor(s.board, s.red, geometry.Point{Row: 0, Col: 0}))
	s.False(IsValidAnchor(s.board, s.red, geometry.Point{Row: 0, Col: 1}))
	s.True(IsValidAnchor(s.board, s.red, geometry.Point{Row: 1, Col: 1}))
}

func (s *MobilitySuite) TestTrackerMatchesFullRecount() {
	rnd := random.NewSeeded(99)
	colors := model.Colors()

	for range 40 {
		row, col := rnd.Intn(8), rnd.Intn(8)
		if !s.board.IsEmpty(s.board.CellAt(row, col)) {
			continue
		}
		shape := geometry.NewShape("probe",
			geometry.Point{Row: row, Col: col})
		if col+1 < 8 && s.board.IsEmpty(s.board.CellAt(row, col+1)) {
			shape = geometry.NewShape("probe",
				geometry.Point{Row: row, Col: col}, geometry.Point{Row: row, Col: col + 1})
		}
		color := colors[rnd.Intn(len(colors))]

		tracker := NewTracker(s.board, s.players)
		region := tracker.Region(shape)
		before := tracker.RegionCounts(region)

		s.board.Place(color, shape)
		after := tracker.CountsAfter(before, region)
		for i, p := range s.players {
			s.Equal(AnchorCount(s.board, p), after[i], "player %s", p.Color)
		}

		// Keep roughly half of the probes so the board fills up
		if rnd.Intn(2) == 0 {
			s.board.Unplace(shape)
		}
	}
}

func (s *MobilitySuite) TestRegionCoversNeighbourhood() {
	tracker := NewTracker(s.board, s.players)

	region := tracker.Region(geometry.NewShape("x", geometry.Point{Row: 0, Col: 0}))
	s.ElementsMatch([]int{0, 1, 8, 9}, region)

	region = tracker.Region(geometry.NewShape("x",
		geometry.Point{Row: 3, Col: 3}, geometry.Point{Row: 3, Col: 4}))
	s.Len(region, 12)
}

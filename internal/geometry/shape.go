package geometry

import (
	"slices"
	"strings"
)

// Point identifies a cell by row and column
type Point struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Sub returns p - o
func (p Point) Sub(o Point) Point {
	return Point{Row: p.Row - o.Row, Col: p.Col - o.Col}
}

// Compare orders points row-major: row first, then column
func Compare(a, b Point) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// Shape is one orientation of a piece, or a piece translated onto the board
type Shape struct {
	PieceID string  // Piece this shape was derived from
	Points  []Point // Sorted row-major, no duplicates
}

// NewShape builds a sorted shape from the given points, dropping duplicates
func NewShape(pieceID string, points ...Point) Shape {
	pts := slices.Clone(points)
	slices.SortFunc(pts, Compare)
	pts = slices.Compact(pts)
	return Shape{PieceID: pieceID, Points: pts}
}

// Len returns the number of cells in the shape
func (s Shape) Len() int {
	return len(s.Points)
}

// Contains reports whether the shape covers the given point
func (s Shape) Contains(p Point) bool {
	for _, q := range s.Points {
		if q == p {
			return true
		}
	}
	return false
}

// Bounds returns the top-left and bottom-right corners of the bounding box.
// An empty shape returns two zero points.
func (s Shape) Bounds() (Point, Point) {
	if len(s.Points) == 0 {
		return Point{}, Point{}
	}
	lo, hi := s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		lo.Row = min(lo.Row, p.Row)
		lo.Col = min(lo.Col, p.Col)
		hi.Row = max(hi.Row, p.Row)
		hi.Col = max(hi.Col, p.Col)
	}
	return lo, hi
}

// String renders the shape inside its bounding box, one line per row
func (s Shape) String() string {
	if len(s.Points) == 0 {
		return ""
	}
	lo, hi := s.Bounds()
	rows := make([][]rune, hi.Row-lo.Row+1)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", hi.Col-lo.Col+1))
	}
	for _, p := range s.Points {
		rows[p.Row-lo.Row][p.Col-lo.Col] = '#'
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.TrimRight(string(r), " ")
	}
	return strings.Join(lines, "\n")
}

func (s Shape) mapPoints(f func(Point) Point) Shape {
	pts := make([]Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = f(p)
	}
	return Shape{PieceID: s.PieceID, Points: pts}
}

func (s Shape) sorted() Shape {
	slices.SortFunc(s.Points, Compare)
	return s
}

// Rotate turns the shape 90° counter-clockwise: (r, c) -> (-c, r)
func Rotate(s Shape) Shape {
	return s.mapPoints(func(p Point) Point {
		return Point{Row: -p.Col, Col: p.Row}
	}).sorted()
}

// Flip mirrors the shape on the vertical axis: (r, c) -> (r, -c)
func Flip(s Shape) Shape {
	return s.mapPoints(func(p Point) Point {
		return Point{Row: p.Row, Col: -p.Col}
	}).sorted()
}

// Translate subtracts offset from every point
func Translate(s Shape, offset Point) Shape {
	return s.mapPoints(func(p Point) Point {
		return p.Sub(offset)
	})
}

// Normalize translates the shape so its first point sits at the origin, then sorts
func Normalize(s Shape) Shape {
	if len(s.Points) == 0 {
		return s
	}
	return Translate(s, s.Points[0]).sorted()
}

// Canonical sorts the shape and moves its first point to the origin
func Canonical(s Shape) Shape {
	return Normalize(NewShape(s.PieceID, s.Points...))
}

// Equal reports whether both shapes cover the same points. Shapes are
// compared position by position after sorting row-major, so point order in
// the inputs does not matter.
func Equal(a, b Shape) bool {
	if len(a.Points) != len(b.Points) {
		return false
	}
	pa := slices.SortedFunc(slices.Values(a.Points), Compare)
	pb := slices.SortedFunc(slices.Values(b.Points), Compare)
	return slices.Equal(pa, pb)
}

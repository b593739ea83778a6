package model

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/quintrical/internal/geometry"
)

// Color identifies the owner of a cell; the zero value means empty
type Color string

const (
	ColorNone   Color = ""
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
)

// Colors returns the player colors in turn order
func Colors() []Color {
	return []Color{ColorRed, ColorGreen, ColorYellow, ColorBlue}
}

// Cell is a single square of the board
type Cell struct {
	Owner Color
	Index int // row * width + col
}

// Board is a fixed-size grid of cell owners
type Board struct {
	Width  int
	Height int
	Cells  []Cell // Row-major: Cells[row*Width+col]

	counts map[Color]int
}

// MaxBoardSize bounds each side of a board
const MaxBoardSize = 100

// NewBoard creates an empty board of the given size
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 || width > MaxBoardSize || height > MaxBoardSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, width, height)
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Index = i
	}
	return &Board{
		Width:  width,
		Height: height,
		Cells:  cells,
		counts: make(map[Color]int),
	}, nil
}

// RestoreBoard rebuilds a board from its row-major cell owners
func RestoreBoard(width, height int, owners []Color) (*Board, error) {
	b, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	if len(owners) != len(b.Cells) {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrBoardSizeMismatch, len(owners), width, height)
	}
	for i, owner := range owners {
		b.Cells[i].Owner = owner
	}
	b.recount()
	return b, nil
}

// Owners returns the owner of every cell in row-major order
func (b *Board) Owners() []Color {
	owners := make([]Color, len(b.Cells))
	for i, c := range b.Cells {
		owners[i] = c.Owner
	}
	return owners
}

// IsOnBoard returns true if the coordinate is within bounds
func (b *Board) IsOnBoard(row, col int) bool {
	return row >= 0 && row < b.Height && col >= 0 && col < b.Width
}

// Index returns the linear index of an on-board coordinate
func (b *Board) Index(row, col int) int {
	b.mustBeOnBoard(row, col)
	return row*b.Width + col
}

// Coords converts a linear index back to a point
func (b *Board) Coords(index int) geometry.Point {
	if index < 0 || index >= len(b.Cells) {
		panic(fmt.Errorf("%w: index %d", ErrOutOfBounds, index))
	}
	return geometry.Point{Row: index / b.Width, Col: index % b.Width}
}

// CellAt returns the cell at the given coordinate. Callers must check bounds
// first; an off-board coordinate panics.
func (b *Board) CellAt(row, col int) Cell {
	return b.Cells[b.Index(row, col)]
}

// IsEmpty returns true if nobody owns the cell
func (b *Board) IsEmpty(cell Cell) bool {
	return cell.Owner == ColorNone
}

// HasColor returns true if the cell is owned by the given color
func (b *Board) HasColor(color Color, cell Cell) bool {
	return cell.Owner == color
}

// Place sets every cell under the shape to color. No validation is done.
func (b *Board) Place(color Color, shape geometry.Shape) {
	for _, p := range shape.Points {
		b.set(p, color)
	}
}

// Unplace clears every cell under the shape
func (b *Board) Unplace(shape geometry.Shape) {
	b.Place(ColorNone, shape)
}

func (b *Board) set(p geometry.Point, color Color) {
	idx := b.Index(p.Row, p.Col)
	if b.counts == nil {
		b.recount()
	}
	if prev := b.Cells[idx].Owner; prev != ColorNone {
		b.counts[prev]--
	}
	if color != ColorNone {
		b.counts[color]++
	}
	b.Cells[idx].Owner = color
}

// CountColor returns how many cells the given color owns
func (b *Board) CountColor(color Color) int {
	if b.counts == nil {
		b.recount()
	}
	return b.counts[color]
}

// recount rebuilds the per-color counts, e.g. after decoding a stored board
func (b *Board) recount() {
	b.counts = make(map[Color]int)
	for _, c := range b.Cells {
		if c.Owner != ColorNone {
			b.counts[c.Owner]++
		}
	}
}

// PlusNeighbors returns the orthogonally adjacent on-board cells
func (b *Board) PlusNeighbors(row, col int) []geometry.Point {
	return b.filterOnBoard([]geometry.Point{
		{Row: row - 1, Col: col},
		{Row: row + 1, Col: col},
		{Row: row, Col: col - 1},
		{Row: row, Col: col + 1},
	})
}

// XNeighbors returns the diagonally adjacent on-board cells
func (b *Board) XNeighbors(row, col int) []geometry.Point {
	return b.filterOnBoard([]geometry.Point{
		{Row: row - 1, Col: col - 1},
		{Row: row + 1, Col: col - 1},
		{Row: row + 1, Col: col + 1},
		{Row: row - 1, Col: col + 1},
	})
}

func (b *Board) filterOnBoard(candidates []geometry.Point) []geometry.Point {
	result := candidates[:0]
	for _, p := range candidates {
		if b.IsOnBoard(p.Row, p.Col) {
			result = append(result, p)
		}
	}
	return result
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	clone := &Board{Width: b.Width, Height: b.Height, Cells: cells}
	clone.recount()
	return clone
}

// Fingerprint returns a BLAKE2b-256 digest of the board's dimensions and owners
func (b *Board) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "%dx%d;", b.Width, b.Height)
	for _, c := range b.Cells {
		h.Write([]byte(c.Owner))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Rows returns the owner of every cell as a grid, for display
func (b *Board) Rows() [][]Color {
	rows := make([][]Color, b.Height)
	for row := range rows {
		rows[row] = make([]Color, b.Width)
		for col := range rows[row] {
			rows[row][col] = b.Cells[row*b.Width+col].Owner
		}
	}
	return rows
}

func (b *Board) mustBeOnBoard(row, col int) {
	if !b.IsOnBoard(row, col) {
		panic(fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, b.Width, b.Height))
	}
}

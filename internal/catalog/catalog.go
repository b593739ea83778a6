// Package catalog loads the shared set of pieces every player starts with.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

//go:embed classic.yaml
var classicYAML []byte

// cellMarker marks an occupied cell in a piece drawing
const cellMarker = '#'

type pieceDef struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

type catalogDef struct {
	Name   string     `yaml:"name"`
	Pieces []pieceDef `yaml:"pieces"`
}

// Catalog is an ordered, immutable list of pieces with their orientations
// derived once at load time
type Catalog struct {
	Name   string
	pieces []*model.Piece
	byID   map[model.PieceID]*model.Piece
}

// Classic returns the built-in 21 piece catalog
func Classic() *Catalog {
	c, err := Load(bytes.NewReader(classicYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "open catalog")
	}
	defer func() {
		_ = file.Close()
	}()
	return Load(file)
}

// Load decodes a YAML catalog
func Load(r io.Reader) (*Catalog, error) {
	var def catalogDef
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, errors.WithMessage(err, "decode catalog")
	}
	return build(def)
}

// New builds a catalog from pieces that were created elsewhere
func New(name string, pieces ...*model.Piece) (*Catalog, error) {
	if len(pieces) == 0 {
		return nil, model.ErrEmptyCatalog
	}
	c := &Catalog{Name: name, byID: make(map[model.PieceID]*model.Piece, len(pieces))}
	for _, p := range pieces {
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.WithMessage(model.ErrDuplicatePiece, string(p.ID))
		}
		c.byID[p.ID] = p
		c.pieces = append(c.pieces, p)
	}
	return c, nil
}

func build(def catalogDef) (*Catalog, error) {
	pieces := make([]*model.Piece, 0, len(def.Pieces))
	for _, pd := range def.Pieces {
		piece, err := model.NewPiece(model.PieceID(pd.ID), pd.Name, parseRows(pd.Rows))
		if err != nil {
			return nil, errors.WithMessagef(err, "piece %q", pd.ID)
		}
		pieces = append(pieces, piece)
	}
	return New(def.Name, pieces...)
}

// parseRows converts a drawing into points, one row per string
func parseRows(rows []string) []geometry.Point {
	var points []geometry.Point
	for row, line := range rows {
		for col, r := range []rune(strings.TrimRight(line, " ")) {
			if r == cellMarker {
				points = append(points, geometry.Point{Row: row, Col: col})
			}
		}
	}
	return points
}

// Pieces returns the pieces in catalog order. The slice is a copy; the
// pieces themselves are shared.
func (c *Catalog) Pieces() []*model.Piece {
	result := make([]*model.Piece, len(c.pieces))
	copy(result, c.pieces)
	return result
}

// Lookup returns the piece with the given ID
func (c *Catalog) Lookup(id model.PieceID) (*model.Piece, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownPiece, id)
	}
	return p, nil
}

// Len returns the number of pieces
func (c *Catalog) Len() int {
	return len(c.pieces)
}

// TotalCells returns the summed size of every piece
func (c *Catalog) TotalCells() int {
	return model.TotalSize(c.pieces)
}

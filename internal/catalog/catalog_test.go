package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

func TestClassicCatalog(t *testing.T) {
	c := Classic()

	assert.Equal(t, "classic", c.Name)
	assert.Equal(t, 21, c.Len())
	assert.Equal(t, 89, c.TotalCells())
}

func TestClassicOrientationCounts(t *testing.T) {
	expected := map[model.PieceID]int{
		"I1": 1, "I2": 2, "I3": 2, "V3": 4,
		"I4": 2, "L4": 8, "T4": 4, "O4": 1, "Z4": 4,
		"I5": 2, "L5": 8, "Y5": 8, "N5": 8, "P5": 8, "T5": 4,
		"U5": 4, "V5": 4, "W5": 4, "Z5": 4, "F5": 8, "X5": 1,
	}
	c := Classic()

	for id, count := range expected {
		p, err := c.Lookup(id)
		require.NoError(t, err)
		assert.Len(t, p.Orientations, count, "piece %s", id)
	}
}

func TestClassicPiecesAreCanonical(t *testing.T) {
	for _, p := range Classic().Pieces() {
		assert.Equal(t, geometry.Point{}, p.Base.Points[0], "piece %s", p.ID)
		assert.Equal(t, string(p.ID), p.Base.PieceID)
	}
}

func TestLoadParsesDrawing(t *testing.T) {
	doc := `
name: tiny
pieces:
  - id: T
    name: tee
    rows: ["###", " # "]
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	p, err := c.Lookup("T")
	require.NoError(t, err)
	assert.Equal(t, "tee", p.Name)
	assert.Equal(t, 4, p.Size())
	assert.Equal(t, "###\n #", p.Base.String())
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{
			name: "no pieces",
			doc:  "name: empty\npieces: []\n",
			err:  model.ErrEmptyCatalog,
		},
		{
			name: "piece without cells",
			doc:  "pieces:\n  - id: A\n    rows: [\"   \"]\n",
			err:  model.ErrInvalidPiece,
		},
		{
			name: "duplicate ids",
			doc:  "pieces:\n  - id: A\n    rows: [\"#\"]\n  - id: A\n    rows: [\"##\"]\n",
			err:  model.ErrDuplicatePiece,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("pieces: [oops"))
	assert.ErrorContains(t, err, "decode catalog")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.yaml")
	require.NoError(t, os.WriteFile(path, classicYAML, 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 21, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open catalog")
}

func TestLookupUnknown(t *testing.T) {
	_, err := Classic().Lookup("Q9")
	assert.ErrorIs(t, err, model.ErrUnknownPiece)
}

func TestPiecesReturnsCopy(t *testing.T) {
	c := Classic()
	pieces := c.Pieces()
	pieces[0] = nil

	assert.NotNil(t, c.Pieces()[0])
}

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/simulation"
)

func render(data any) string {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(data)
	return buf.String()
}

func TestPrintBoard(t *testing.T) {
	board := response.Board{
		Width:  3,
		Height: 2,
		Cells: [][]string{
			{"red", "", "blue"},
			{"", "green", "yellow"},
		},
	}

	var buf bytes.Buffer
	NewOutput("text", &buf).printBoard(board)

	expected := "    012\n" +
		"   +---+\n" +
		" 0 |R.B|\n" +
		" 1 |.GY|\n" +
		"   +---+\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintTurnOutcomes(t *testing.T) {
	placed := render(response.AutoplayResponse{Turns: []response.Turn{
		{
			Step:          4,
			Player:        "red",
			Outcome:       "placed",
			Possibilities: 12,
			Placement:     &response.Placement{Piece: "L4", Anchor: response.Point{Row: 2, Col: 3}},
		},
		{Step: 5, Player: "green", Outcome: "eliminated", Residual: 17, GameOver: true},
	}})

	assert.Contains(t, placed, "Step 4: red placed L4 at (2,3) (12 options)")
	assert.Contains(t, placed, "Step 5: green eliminated with 17 cells left")
	assert.Contains(t, placed, "Game over")
}

func TestPrintPlacementsAndAnchors(t *testing.T) {
	assert.Contains(t, render([]response.Placement{}), "No legal placements")
	assert.Contains(t, render(response.Anchors{Player: "blue"}), "No anchors")

	out := render([]response.Placement{{Index: 0, Piece: "I2", Orientation: 1, SelfDelta: 2, OthersDelta: -1, Drawing: "#\n#"}})
	assert.Contains(t, out, "[0] I2 orientation 1, own +2, opponents -1")
	assert.Contains(t, out, "    #\n    #\n")
}

func TestPrintReport(t *testing.T) {
	out := render(simulation.Report{
		Strategy: model.BotStrategyFirst,
		Games:    make([]simulation.GameResult, 2),
		Duration: 1500 * time.Millisecond,
		Colors: []simulation.ColorStats{
			{Color: model.ColorRed, Wins: 2, MeanRemaining: 3.5, BestRemaining: 0, WorstRemaining: 7, Perfect: 1},
		},
	})

	assert.Contains(t, out, "Strategy: First option")
	assert.Contains(t, out, "Games: 2 in 1.5s")
	assert.Contains(t, out, "red")
	assert.Contains(t, out, "3.50")
}

func TestJSONOutputFallsBackForUnknownTypes(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(map[string]int{"a": 1})
	assert.JSONEq(t, `{"a":1}`, buf.String())

	buf.Reset()
	NewOutput("json", &buf).PrintMessage("hello")
	assert.JSONEq(t, `{"message":"hello"}`, buf.String())
}

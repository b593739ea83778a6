package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/simulation"
)

// Output handles formatting output based on the configured format
type Output struct {
	format  string
	w       io.Writer
	verbose bool
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w, verbose: cfg != nil && cfg.Verbose}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.GameState:
		o.printGameState(v)
	case response.GameList:
		o.printGameList(v)
	case response.Anchors:
		o.printAnchors(v)
	case []response.Placement:
		o.printPlacements(v)
	case response.TurnResponse:
		o.printTurn(v.Turn)
		o.printBoard(v.Game.Board)
	case response.AutoplayResponse:
		for _, t := range v.Turns {
			o.printTurn(t)
		}
		fmt.Fprintln(o.w)
		o.printGameState(v.Game)
	case response.Catalog:
		o.printCatalog(v)
	case response.Health:
		o.printHealth(v)
	case simulation.Report:
		o.printReport(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// cellSymbols maps an owner to its board glyph
var cellSymbols = map[string]string{
	"":       ".",
	"red":    "R",
	"green":  "G",
	"yellow": "Y",
	"blue":   "B",
}

func symbol(owner string) string {
	if s, ok := cellSymbols[owner]; ok {
		return s
	}
	return "?"
}

func (o *Output) printGameState(g response.GameState) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	fmt.Fprintf(o.w, "Step: %d / %d\n", g.Step, g.StepLimit)
	if g.State != "finished" {
		fmt.Fprintf(o.w, "To move: %s\n", g.CurrentPlayer)
	}
	fmt.Fprintln(o.w)
	o.printBoard(g.Board)
	fmt.Fprintln(o.w)
	o.printStandings(g.Standings)

	if len(g.Leaders) > 0 {
		fmt.Fprintf(o.w, "\nLeaders: %s\n", strings.Join(g.Leaders, ", "))
	}
}

func (o *Output) printBoard(b response.Board) {
	if len(b.Cells) == 0 {
		return
	}

	// Column headers, last digit only so wide boards stay aligned
	fmt.Fprint(o.w, "    ")
	for col := 0; col < b.Width; col++ {
		fmt.Fprintf(o.w, "%d", col%10)
	}
	fmt.Fprintln(o.w)

	fmt.Fprintf(o.w, "   +%s+\n", strings.Repeat("-", b.Width))
	for row, cells := range b.Cells {
		fmt.Fprintf(o.w, "%2d |", row)
		for _, owner := range cells {
			fmt.Fprint(o.w, symbol(owner))
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintf(o.w, "   +%s+\n", strings.Repeat("-", b.Width))
}

func (o *Output) printStandings(standings []response.Standing) {
	fmt.Fprintf(o.w, "%-8s %-11s %6s %9s %13s\n", "Player", "Status", "Pieces", "Remaining", "Possibilities")
	for _, s := range standings {
		fmt.Fprintf(o.w, "%-8s %-11s %6d %9d %13d\n", s.Color, s.Status, s.PiecesLeft, s.RemainingCells, s.Possibilities)
	}
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, id := range l.Games {
		fmt.Fprintln(o.w, id)
	}
}

func (o *Output) printAnchors(a response.Anchors) {
	fmt.Fprintf(o.w, "Player: %s\n", a.Player)
	if len(a.Anchors) == 0 {
		fmt.Fprintln(o.w, "No anchors")
		return
	}
	points := make([]string, len(a.Anchors))
	for i, p := range a.Anchors {
		points[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	fmt.Fprintf(o.w, "Anchors (%d): %s\n", len(points), strings.Join(points, " "))
}

func (o *Output) printPlacements(placements []response.Placement) {
	if len(placements) == 0 {
		fmt.Fprintln(o.w, "No legal placements")
		return
	}
	for _, p := range placements {
		fmt.Fprintf(o.w, "[%d] %s orientation %d, own %+d, opponents %+d\n",
			p.Index, p.Piece, p.Orientation, p.SelfDelta, p.OthersDelta)
		for _, line := range strings.Split(p.Drawing, "\n") {
			fmt.Fprintf(o.w, "    %s\n", line)
		}
	}
}

func (o *Output) printTurn(t response.Turn) {
	switch t.Outcome {
	case "placed":
		piece := ""
		if t.Placement != nil {
			piece = fmt.Sprintf(" %s at (%d,%d)", t.Placement.Piece, t.Placement.Anchor.Row, t.Placement.Anchor.Col)
		}
		fmt.Fprintf(o.w, "Step %d: %s placed%s (%d options)\n", t.Step, t.Player, piece, t.Possibilities)
	case "eliminated":
		fmt.Fprintf(o.w, "Step %d: %s eliminated with %d cells left\n", t.Step, t.Player, t.Residual)
	default:
		fmt.Fprintf(o.w, "Step %d: %s %s\n", t.Step, t.Player, t.Outcome)
	}
	if t.GameOver {
		fmt.Fprintln(o.w, "Game over")
	}
}

func (o *Output) printCatalog(c response.Catalog) {
	fmt.Fprintf(o.w, "Catalog: %s (%d pieces, %d cells)\n", c.Name, len(c.Pieces), c.TotalCells)
	for _, p := range c.Pieces {
		fmt.Fprintf(o.w, "\n%s %s, %d cells, %d orientations\n", p.ID, p.Name, p.Size, len(p.Orientations))
		if !o.verbose {
			if len(p.Orientations) > 0 {
				o.printDrawing(p.Orientations[0].Drawing)
			}
			continue
		}
		for i, orientation := range p.Orientations {
			fmt.Fprintf(o.w, "  [%d]\n", i)
			o.printDrawing(orientation.Drawing)
		}
	}
}

func (o *Output) printDrawing(drawing string) {
	for _, line := range strings.Split(drawing, "\n") {
		fmt.Fprintf(o.w, "    %s\n", line)
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
	fmt.Fprintf(o.w, "Open streams: %d\n", h.Streams)
}

func (o *Output) printReport(r simulation.Report) {
	fmt.Fprintf(o.w, "Strategy: %s\n", model.BotStrategyDisplayName(r.Strategy))
	fmt.Fprintf(o.w, "Games: %d in %s\n\n", len(r.Games), r.Duration.Round(1e6))
	fmt.Fprintf(o.w, "%-8s %5s %8s %6s %6s %6s\n", "Player", "Wins", "Mean", "Best", "Worst", "Clean")
	for _, c := range r.Colors {
		fmt.Fprintf(o.w, "%-8s %5d %8.2f %6d %6d %6d\n",
			c.Color, c.Wins, c.MeanRemaining, c.BestRemaining, c.WorstRemaining, c.Perfect)
	}
}

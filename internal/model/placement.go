package model

import "github.com/mcoot/quintrical/internal/geometry"

// Placement is a legal candidate move: one orientation of a piece
// translated onto absolute board coordinates
type Placement struct {
	Shape       geometry.Shape // Absolute board coordinates
	Piece       *Piece
	Anchor      geometry.Point // Anchor cell the shape was built around
	Orientation int            // Index into Piece.Orientations

	SelfDelta   int // Change in the mover's anchor count if committed
	OthersDelta int // Summed change in every opponent's anchor count
}

// TurnOutcome describes what happened on a single turn
type TurnOutcome string

const (
	OutcomePlaced     TurnOutcome = "placed"
	OutcomeEliminated TurnOutcome = "eliminated"
	OutcomeSkipped    TurnOutcome = "skipped" // Player was already eliminated
)

// TurnResult reports the effect of one turn
type TurnResult struct {
	Step          int
	Player        Color
	Outcome       TurnOutcome
	Placement     *Placement // Set when Outcome is placed
	Possibilities int
	Residual      int // Set when Outcome is eliminated
	GameOver      bool
}

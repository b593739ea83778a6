package redis

import (
	"fmt"
	"time"

	"github.com/mcoot/quintrical/internal/catalog"
	"github.com/mcoot/quintrical/internal/geometry"
	"github.com/mcoot/quintrical/internal/model"
)

// gameRecord is the stored form of a game. Pieces are stored by ID and
// resolved against the catalog on load so that every player shares the
// catalog's piece pointers again.
type gameRecord struct {
	ID          model.GameID    `json:"id"`
	State       model.GameState `json:"state"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Cells       []model.Color   `json:"cells"`
	Players     []playerRecord  `json:"players"`
	Current     int             `json:"current"`
	Step        int             `json:"step"`
	InGame      int             `json:"in_game"`
	StepLimit   int             `json:"step_limit"`
	CatalogSize int             `json:"catalog_size"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type playerRecord struct {
	Color         model.Color        `json:"color"`
	StartCorner   geometry.Point     `json:"start_corner"`
	Pieces        []model.PieceID    `json:"pieces"`
	Status        model.PlayerStatus `json:"status"`
	Residual      int                `json:"residual"`
	Possibilities int                `json:"possibilities"`
	Placed        int                `json:"placed"`
}

func toRecord(g *model.Game) gameRecord {
	players := make([]playerRecord, len(g.Players))
	for i, p := range g.Players {
		ids := make([]model.PieceID, len(p.Pieces))
		for j, piece := range p.Pieces {
			ids[j] = piece.ID
		}
		players[i] = playerRecord{
			Color:         p.Color,
			StartCorner:   p.StartCorner,
			Pieces:        ids,
			Status:        p.Status,
			Residual:      p.Residual,
			Possibilities: p.Possibilities,
			Placed:        p.Placed,
		}
	}

	return gameRecord{
		ID:          g.ID,
		State:       g.State,
		Width:       g.Board.Width,
		Height:      g.Board.Height,
		Cells:       g.Board.Owners(),
		Players:     players,
		Current:     g.Current,
		Step:        g.Step,
		InGame:      g.InGame,
		StepLimit:   g.StepLimit,
		CatalogSize: g.CatalogSize,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func fromRecord(r gameRecord, cat *catalog.Catalog) (*model.Game, error) {
	board, err := model.RestoreBoard(r.Width, r.Height, r.Cells)
	if err != nil {
		return nil, err
	}
	if len(r.Players) > 0 && (r.Current < 0 || r.Current >= len(r.Players)) {
		return nil, fmt.Errorf("game %s: current seat %d out of range", r.ID, r.Current)
	}

	players := make([]*model.Player, len(r.Players))
	for i, pr := range r.Players {
		pieces := make([]*model.Piece, len(pr.Pieces))
		for j, id := range pr.Pieces {
			piece, err := cat.Lookup(id)
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", r.ID, err)
			}
			pieces[j] = piece
		}
		players[i] = &model.Player{
			Color:         pr.Color,
			StartCorner:   pr.StartCorner,
			Pieces:        pieces,
			Status:        pr.Status,
			Residual:      pr.Residual,
			Possibilities: pr.Possibilities,
			Placed:        pr.Placed,
		}
	}

	return &model.Game{
		ID:          r.ID,
		State:       r.State,
		Board:       board,
		Players:     players,
		Current:     r.Current,
		Step:        r.Step,
		InGame:      r.InGame,
		StepLimit:   r.StepLimit,
		CatalogSize: r.CatalogSize,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

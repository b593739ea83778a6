package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/quintrical/internal/api/request"
	"github.com/mcoot/quintrical/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands against a running server",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameAnchorsCmd())
	cmd.AddCommand(newGameOptionsCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameStepCmd())
	cmd.AddCommand(newGameAutoplayCmd())
	cmd.AddCommand(newGameWatchCmd())

	return cmd
}

func gamePath(id string, parts ...string) string {
	path := "/api/v1/games/" + url.PathEscape(id)
	if len(parts) > 0 {
		path += "/" + strings.Join(parts, "/")
	}
	return path
}

func newGameCreateCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateGameRequest{Width: width, Height: height}

			var result response.GameState

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Board width (server default if unset)")
	cmd.Flags().IntVar(&height, "height", 0, "Board height (server default if unset)")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted game %s", args[0]))
			return nil
		},
	}
}

func newGameAnchorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anchors <id>",
		Short: "Show where the current player may place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Anchors

			if err := client.Get(gamePath(args[0], "anchors"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options <id> <row> <col> <piece>",
		Short: "List legal placements of a piece around an anchor",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCell(args[1], args[2])
			if err != nil {
				return err
			}

			query := url.Values{}
			query.Set("row", strconv.Itoa(row))
			query.Set("col", strconv.Itoa(col))
			query.Set("piece", strings.ToUpper(args[3]))

			var result []response.Placement

			if err := client.Get(gamePath(args[0], "placements")+"?"+query.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <id> <row> <col> <piece> <option>",
		Short: "Commit one of the listed placements for the current player",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCell(args[1], args[2])
			if err != nil {
				return err
			}
			option, err := strconv.Atoi(args[4])
			if err != nil || option < 0 {
				return fmt.Errorf("option must be a non-negative number")
			}

			req := request.PlaceRequest{
				Row:    row,
				Col:    col,
				Piece:  strings.ToUpper(args[3]),
				Option: option,
			}

			var result response.TurnResponse

			if err := client.Post(gamePath(args[0], "place"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <id>",
		Short: "Let the server's strategy play one turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TurnResponse

			if err := client.Post(gamePath(args[0], "step"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameAutoplayCmd() *cobra.Command {
	var maxTurns int

	cmd := &cobra.Command{
		Use:   "autoplay <id>",
		Short: "Play turns automatically until the game ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxTurns < 0 {
				return fmt.Errorf("max-turns must not be negative")
			}

			var result response.AutoplayResponse

			req := request.AutoplayRequest{MaxTurns: maxTurns}
			if err := client.Post(gamePath(args[0], "autoplay"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Stop after this many turns (0 plays to the end)")

	return cmd
}

func parseCell(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, fmt.Errorf("row must be a number")
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("col must be a number")
	}
	return row, col, nil
}

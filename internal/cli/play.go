package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/simulation"
)

func newPlayCmd() *cobra.Command {
	var (
		settings localSettings
		seed     uint64
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game locally with the chosen strategy",
		Long: `Play a complete four-player game in-process and print the board after
every turn, followed by the final standings.

The same seed, board size, strategy and catalog always replay the same game.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.validate(); err != nil {
				return err
			}
			cat, err := settings.catalog()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = defaultSeed()
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			opts := simulation.Options{
				Width:    settings.width,
				Height:   settings.height,
				Strategy: settings.strategy,
				Catalog:  cat,
			}

			onTurn := func(game *model.Game, result model.TurnResult) error {
				if quiet || cfg.Output == "json" {
					return nil
				}
				out.Print(response.TurnResponse{
					Turn: response.TurnFromModel(result),
					Game: response.GameStateFromModel(game),
				})
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}

			game, err := simulation.Play(cmd.Context(), seed, opts, localLogger(cmd.ErrOrStderr()), onTurn)
			if err != nil {
				return err
			}

			if cfg.Output != "json" {
				fmt.Fprintf(cmd.OutOrStdout(), "Seed: %d\n", seed)
				fmt.Fprintf(cmd.OutOrStdout(), "Strategy: %s\n", model.BotStrategyDisplayName(settings.strategy))
			}
			out.Print(response.GameStateFromModel(game))
			return nil
		},
	}

	settings.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (time-based if unset)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final state")

	return cmd
}

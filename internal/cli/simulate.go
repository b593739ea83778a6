package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/quintrical/internal/services/simulation"
)

func newSimulateCmd() *cobra.Command {
	var (
		settings localSettings
		games    int
		parallel int
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many games locally and report per-color statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.validate(); err != nil {
				return err
			}
			if games <= 0 {
				return fmt.Errorf("games must be positive")
			}
			if parallel < 0 {
				return fmt.Errorf("parallel must not be negative")
			}
			cat, err := settings.catalog()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = defaultSeed()
			}

			report, err := simulation.Run(cmd.Context(), simulation.Options{
				Games:    games,
				Parallel: parallel,
				Seed:     seed,
				Width:    settings.width,
				Height:   settings.height,
				Strategy: settings.strategy,
				Catalog:  cat,
			}, localLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(report)
			return nil
		},
	}

	settings.register(cmd)
	cmd.Flags().IntVarP(&games, "games", "n", 100, "Number of games")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Concurrent games (0 runs all at once)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the first game (time-based if unset)")

	return cmd
}

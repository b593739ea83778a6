package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/catalog"
)

func newPiecesCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "pieces",
		Short: "Show the piece catalog",
		Long:  "Show every piece of the catalog. With --verbose every distinct orientation is drawn.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Classic()
			if catalogPath != "" {
				loaded, err := catalog.LoadFile(catalogPath)
				if err != nil {
					return err
				}
				cat = loaded
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(response.CatalogFromModel(cat))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML piece catalog (classic set if unset)")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podium/internal/feed"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored feed as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := feed.Open(cfg.FeedDatabasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			concerts, err := store.All(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return feed.ExportJSON(cmd.OutOrStdout(), concerts)
			}
			if err := feed.WriteJSON(output, concerts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d concerts to %s\n", len(concerts), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (defaults to stdout)")
	return cmd
}

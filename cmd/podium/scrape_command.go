package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"podium/internal/feed"
	"podium/internal/fetch"
	"podium/internal/logging"
	"podium/internal/pipeline"
	"podium/internal/runlock"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape all enabled sources and replace the stored feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: os.Stderr,
				LogDir: cfg.Paths.LogDir,
			})
			if err != nil {
				return err
			}

			lock := runlock.New(cfg.LockPath())
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			client := fetch.NewClient(cfg.FetchTimeout(), cfg.Fetch.UserAgent)
			srcs := pipeline.BuildSources(cfg, client, logger)

			result, err := pipeline.Run(cmd.Context(), srcs, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d concerts scraped, nothing persisted\n", len(result.Concerts))
				return nil
			}

			store, err := feed.Open(cfg.FeedDatabasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ReplaceAll(cmd.Context(), result.RunID, result.Concerts); err != nil {
				return err
			}
			if err := feed.WriteJSON(cfg.Paths.ExportPath, result.Concerts); err != nil {
				return err
			}

			fmt.Fprintf(out, "Scraped %d concerts\n", len(result.Concerts))
			for _, src := range srcs {
				fmt.Fprintf(out, "  %-10s %d\n", src.Name(), result.PerSource[src.Name()])
			}
			fmt.Fprintf(out, "Feed written to %s\n", cfg.Paths.ExportPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scrape without writing the database or export file")
	return cmd
}

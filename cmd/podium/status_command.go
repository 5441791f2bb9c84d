package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"podium/internal/feed"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show feed database status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			dbPath := cfg.FeedDatabasePath()
			if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, renderStatusLine("Database", statusWarn, dbPath+" (missing; run `podium scrape`)", colorize))
				return nil
			}

			store, err := feed.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			finished, runCount, ok, err := store.LastRun(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(out, renderStatusLine("Database", statusOK, dbPath, colorize))
			fmt.Fprintln(out, renderStatusLine("Concerts", statusInfo, fmt.Sprintf("%d", count), colorize))
			if !ok {
				fmt.Fprintln(out, renderStatusLine("Last run", statusWarn, "never", colorize))
				return nil
			}

			age := time.Since(finished).Round(time.Minute)
			kind := statusOK
			if age > 48*time.Hour {
				kind = statusWarn
			}
			detail := fmt.Sprintf("%s (%s ago, %d concerts)", finished.UTC().Format(time.RFC3339), age, runCount)
			fmt.Fprintln(out, renderStatusLine("Last run", kind, detail, colorize))
			return nil
		},
	}
}

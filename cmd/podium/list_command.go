package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podium/internal/concert"
	"podium/internal/feed"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var venue string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored feed as a table",
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
			if venue != "" {
				concerts = filterVenue(concerts, venue)
			}
			if limit > 0 && len(concerts) > limit {
				concerts = concerts[:limit]
			}

			out := cmd.OutOrStdout()
			if len(concerts) == 0 {
				fmt.Fprintln(out, "Feed is empty; run `podium scrape` first")
				return nil
			}

			rows := make([][]string, 0, len(concerts))
			for _, c := range concerts {
				rows = append(rows, []string{
					c.Datetime.UTC().Format("2006-01-02 15:04"),
					c.Venue,
					concertLabel(c),
					formatPrice(c.MinPence, c.MaxPence),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Date (UTC)", "Venue", "Title", "Price"}, rows, 3))
			fmt.Fprintf(out, "%d concerts\n", len(concerts))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many concerts (0 for all)")
	cmd.Flags().StringVar(&venue, "venue", "", "Only show concerts at this venue")
	return cmd
}

func filterVenue(concerts []concert.Concert, venue string) []concert.Concert {
	filtered := concerts[:0]
	for _, c := range concerts {
		if c.Venue == venue {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func concertLabel(c concert.Concert) string {
	if c.Subtitle != "" {
		return c.Title + " / " + c.Subtitle
	}
	return c.Title
}

// formatPrice renders a pence range for display. Zero means an explicitly
// free event; absent bounds mean the source published no price.
func formatPrice(min, max *int) string {
	switch {
	case min == nil && max == nil:
		return "-"
	case min != nil && *min == 0 && max != nil && *max == 0:
		return "free"
	case max == nil:
		return "from " + pounds(*min)
	case min == nil:
		return "up to " + pounds(*max)
	case *min == *max:
		return pounds(*min)
	default:
		return pounds(*min) + " - " + pounds(*max)
	}
}

func pounds(pence int) string {
	if pence%100 == 0 {
		return fmt.Sprintf("£%d", pence/100)
	}
	return fmt.Sprintf("£%d.%02d", pence/100, pence%100)
}

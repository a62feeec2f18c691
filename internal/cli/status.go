package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/trove/internal/stats"
	"github.com/example/trove/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show trove home, storage backend, and tracker counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, home := wire.Config()
			defer flushWarnings()

			fmt.Println("Trove Status")
			fmt.Println()
			fmt.Printf("  Home:    %s\n", home)
			fmt.Printf("  Storage: %s\n", cfg.Storage)
			fmt.Printf("  Data:    %s\n", cfg.DataDirPath(home))
			fmt.Println()

			gifts := wire.GiftService().Summary()
			moods := wire.MoodService().Summary()
			series := wire.SeriesService().Summary()
			dreams := wire.DreamService().Summary()

			fmt.Printf("  Gifts:   %d (%.2f spent)\n", gifts.Total, gifts.Spent)
			fmt.Printf("  Moods:   %d entries, %d day streak\n", moods.Entries, moods.Streak)
			watching := countByKey(series.ByStatus, "watching")
			fmt.Printf("  Series:  %d (%d watching)\n", series.Total, watching)
			pending := countByKey(dreams.ByOutcome, "pending")
			fmt.Printf("  Dreams:  %d (%d pending)\n", dreams.Total, pending)
			return nil
		},
	}
	return cmd
}

func countByKey(groups []stats.GroupCount, key string) int {
	for _, gc := range groups {
		if gc.Key == key {
			return gc.Count
		}
	}
	return 0
}

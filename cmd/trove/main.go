package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/trove/internal/cli"
	"github.com/example/trove/internal/version"
	"github.com/example/trove/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "trove",
		Short:   "Trove - personal trackers for gifts, moods, series, and dreams",
		Version: version.String(),
		Long: `Trove keeps four small journals behind one CLI: gift ideas, a
mood/weather log, a TV-series watchlist, and a dream/prediction journal.
Records live in memory while a command runs and persist in the background.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	// Tracker commands
	rootCmd.AddCommand(cli.GiftCmd())
	rootCmd.AddCommand(cli.MoodCmd())
	rootCmd.AddCommand(cli.SeriesCmd())
	rootCmd.AddCommand(cli.DreamCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

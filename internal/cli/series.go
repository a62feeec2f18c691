package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/trove/internal/app"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/wire"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Track TV series",
	Long:  "Keep a watchlist, advance episode progress, and rate what you finished",
}

var seriesAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a series to the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		season, _ := cmd.Flags().GetInt("season")
		episode, _ := cmd.Flags().GetInt("episode")
		genre, _ := cmd.Flags().GetString("genre")
		rating, _ := cmd.Flags().GetFloat64("rating")
		notes, _ := cmd.Flags().GetString("notes")

		sr := models.Series{
			Title:   args[0],
			Status:  status,
			Season:  season,
			Episode: episode,
			Genre:   genre,
			Rating:  optionalFloat(cmd.Flags().Changed("rating"), rating),
			Notes:   notes,
		}

		sr, err := wire.SeriesService().AddSeries(context.Background(), sr)
		if err != nil {
			return fmt.Errorf("failed to add series: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Added series %s: %s (%s)\n", shortID(sr.ID), sr.Title, sr.Status)
		return nil
	},
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		genre, _ := cmd.Flags().GetString("genre")
		text, _ := cmd.Flags().GetString("text")
		minRating, _ := cmd.Flags().GetFloat64("min-rating")
		limit, _ := cmd.Flags().GetInt("limit")
		byGenre, _ := cmd.Flags().GetBool("by-genre")
		defer flushWarnings()

		svc := wire.SeriesService()
		if byGenre {
			for _, grp := range svc.SeriesByGenre() {
				name := grp.Key
				if grp.Ungrouped {
					name = "(no genre)"
				}
				fmt.Printf("%s (%d)\n", name, len(grp.Records))
				for _, sr := range grp.Records {
					fmt.Printf("  %s  %s  %s\n", shortID(sr.ID), sr.Title, coloredStatus(sr.Status))
				}
			}
			return nil
		}

		list := svc.ListSeries(app.SeriesFilters{
			Status:    status,
			Genre:     genre,
			Text:      text,
			MinRating: optionalFloat(cmd.Flags().Changed("min-rating"), minRating),
			Limit:     limit,
		})
		if len(list) == 0 {
			fmt.Println("No series found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROGRESS\tRATING\tGENRE")
		fmt.Fprintln(w, "--\t-----\t------\t--------\t------\t-----")
		for _, sr := range list {
			progress := "-"
			if sr.Season > 0 || sr.Episode > 0 {
				progress = fmt.Sprintf("S%02dE%02d", sr.Season, sr.Episode)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(sr.ID), sr.Title, coloredStatus(sr.Status), progress,
				fmtRating(sr.Rating), orDash(sr.Genre))
		}
		return w.Flush()
	},
}

var seriesWatchCmd = &cobra.Command{
	Use:   "watch [id]",
	Short: "Record the next watched episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nextSeason, _ := cmd.Flags().GetBool("next-season")

		svc := wire.SeriesService()
		sr, err := findSeries(svc, args[0])
		if err != nil {
			return err
		}

		sr, err = svc.Advance(context.Background(), sr.ID, nextSeason)
		if err != nil {
			return fmt.Errorf("failed to advance: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ %s is at S%02dE%02d\n", sr.Title, sr.Season, sr.Episode)
		return nil
	},
}

var seriesRateCmd = &cobra.Command{
	Use:   "rate [id] [rating 0-10]",
	Short: "Rate a series",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("rating must be a number between %.0f and %.0f", models.RatingMin, models.RatingMax)
		}

		svc := wire.SeriesService()
		sr, err := findSeries(svc, args[0])
		if err != nil {
			return err
		}

		sr, err = svc.Rate(context.Background(), sr.ID, rating)
		if err != nil {
			return fmt.Errorf("failed to rate series: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Rated %s %s/10\n", sr.Title, fmtRating(sr.Rating))
		return nil
	},
}

var seriesMarkCmd = &cobra.Command{
	Use:   "mark [id] [status]",
	Short: "Move a series to a status (planned, watching, completed, dropped)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.SeriesService()
		sr, err := findSeries(svc, args[0])
		if err != nil {
			return err
		}

		sr, err = svc.MarkStatus(context.Background(), sr.ID, args[1])
		if err != nil {
			return fmt.Errorf("failed to mark series: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ %s is now %s\n", sr.Title, coloredStatus(sr.Status))
		return nil
	},
}

var seriesUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.SeriesService()
		sr, err := findSeries(svc, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			sr.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("season") {
			sr.Season, _ = cmd.Flags().GetInt("season")
		}
		if cmd.Flags().Changed("episode") {
			sr.Episode, _ = cmd.Flags().GetInt("episode")
		}
		if cmd.Flags().Changed("genre") {
			sr.Genre, _ = cmd.Flags().GetString("genre")
		}
		if cmd.Flags().Changed("notes") {
			sr.Notes, _ = cmd.Flags().GetString("notes")
		}

		sr, err = svc.UpdateSeries(context.Background(), sr)
		if err != nil {
			return fmt.Errorf("failed to update series: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Updated series %s: %s\n", shortID(sr.ID), sr.Title)
		return nil
	},
}

var seriesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.SeriesService()
		sr, err := findSeries(svc, args[0])
		if err != nil {
			return err
		}

		if err := svc.DeleteSeries(context.Background(), sr.ID); err != nil {
			return fmt.Errorf("failed to delete series: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Deleted series %s\n", sr.Title)
		return nil
	},
}

var seriesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show watchlist summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := wire.SeriesService().Summary()

		fmt.Printf("Series: %d\n", sum.Total)
		fmt.Printf("  Average rating: %.1f\n", sum.AverageRating)
		if len(sum.ByStatus) > 0 {
			fmt.Println("  By status:")
			for _, gc := range sum.ByStatus {
				fmt.Printf("    %-10s %d\n", gc.Key, gc.Count)
			}
		}
		if len(sum.TopGenres) > 0 {
			fmt.Println("  Top genres:")
			for _, gc := range sum.TopGenres {
				fmt.Printf("    %-10s %d\n", gc.Key, gc.Count)
			}
		}
		return nil
	},
}

func findSeries(svc *app.SeriesService, id string) (models.Series, error) {
	list := svc.ListSeries(app.SeriesFilters{})
	ids := make([]string, 0, len(list))
	for _, sr := range list {
		ids = append(ids, sr.ID)
	}
	sr, err := svc.GetSeries(resolveID(id, ids))
	if err != nil {
		return models.Series{}, fmt.Errorf("series %s: not found", id)
	}
	return sr, nil
}

func init() {
	// series add flags
	seriesAddCmd.Flags().StringP("status", "s", "", "Initial status (defaults to planned)")
	seriesAddCmd.Flags().Int("season", 0, "Current season")
	seriesAddCmd.Flags().Int("episode", 0, "Current episode")
	seriesAddCmd.Flags().StringP("genre", "g", "", "Genre")
	seriesAddCmd.Flags().Float64("rating", 0, "Rating (0-10)")
	seriesAddCmd.Flags().String("notes", "", "Free-form notes")

	// series list flags
	seriesListCmd.Flags().StringP("status", "s", "", "Filter by status")
	seriesListCmd.Flags().StringP("genre", "g", "", "Filter by genre")
	seriesListCmd.Flags().StringP("text", "t", "", "Filter by text in title, genre, or notes")
	seriesListCmd.Flags().Float64("min-rating", 0, "Minimum rating")
	seriesListCmd.Flags().IntP("limit", "n", 0, "Show at most N series")
	seriesListCmd.Flags().Bool("by-genre", false, "Group series by genre")

	// series watch flags
	seriesWatchCmd.Flags().Bool("next-season", false, "Start the next season instead of the next episode")

	// series update flags
	seriesUpdateCmd.Flags().String("title", "", "New title")
	seriesUpdateCmd.Flags().Int("season", 0, "New season")
	seriesUpdateCmd.Flags().Int("episode", 0, "New episode")
	seriesUpdateCmd.Flags().StringP("genre", "g", "", "New genre")
	seriesUpdateCmd.Flags().String("notes", "", "New notes")

	seriesCmd.AddCommand(seriesAddCmd)
	seriesCmd.AddCommand(seriesListCmd)
	seriesCmd.AddCommand(seriesWatchCmd)
	seriesCmd.AddCommand(seriesRateCmd)
	seriesCmd.AddCommand(seriesMarkCmd)
	seriesCmd.AddCommand(seriesUpdateCmd)
	seriesCmd.AddCommand(seriesDeleteCmd)
	seriesCmd.AddCommand(seriesStatsCmd)
}

// SeriesCmd returns the series command
func SeriesCmd() *cobra.Command {
	return seriesCmd
}

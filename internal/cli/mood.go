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

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Keep a mood and weather journal",
	Long:  "Log how the day felt (1-5) together with the weather, then look back at trends",
}

var moodLogCmd = &cobra.Command{
	Use:   "log [mood 1-5]",
	Short: "Log a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		moodVal, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("mood must be a number between %d and %d", models.MoodMin, models.MoodMax)
		}
		weather, _ := cmd.Flags().GetString("weather")
		temp, _ := cmd.Flags().GetFloat64("temp")
		note, _ := cmd.Flags().GetString("note")
		tags, _ := cmd.Flags().GetString("tags")

		e := models.MoodEntry{
			Mood:        moodVal,
			Weather:     weather,
			Temperature: optionalFloat(cmd.Flags().Changed("temp"), temp),
			Note:        note,
			Tags:        splitTags(tags),
		}

		e, err = wire.MoodService().AddEntry(context.Background(), e)
		if err != nil {
			return fmt.Errorf("failed to log entry: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Logged %s (%d/5)\n", e.MoodName(), e.Mood)
		if e.Weather != "" {
			fmt.Printf("  Weather: %s\n", e.Weather)
		}
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		moodVal, _ := cmd.Flags().GetInt("mood")
		weather, _ := cmd.Flags().GetString("weather")
		tag, _ := cmd.Flags().GetString("tag")
		text, _ := cmd.Flags().GetString("text")
		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("limit")

		entries := wire.MoodService().ListEntries(app.EntryFilters{
			Mood:       moodVal,
			Weather:    weather,
			Tag:        tag,
			Text:       text,
			WithinDays: days,
			Limit:      limit,
		})
		defer flushWarnings()

		if len(entries) == 0 {
			fmt.Println("No entries found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tMOOD\tWEATHER\tTEMP\tTAGS\tNOTE")
		fmt.Fprintln(w, "--\t----\t----\t-------\t----\t----\t----")
		for _, e := range entries {
			temp := "-"
			if e.Temperature != nil {
				temp = fmt.Sprintf("%.1f", *e.Temperature)
			}
			fmt.Fprintf(w, "%s\t%s\t%s (%d)\t%s\t%s\t%s\t%s\n",
				shortID(e.ID), fmtDate(e.CreatedAt), e.MoodName(), e.Mood,
				orDash(e.Weather), temp, fmtTags(e.Tags), orDash(e.Note))
		}
		return w.Flush()
	},
}

var moodUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.MoodService()
		e, err := findEntry(svc, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("mood") {
			e.Mood, _ = cmd.Flags().GetInt("mood")
		}
		if cmd.Flags().Changed("weather") {
			e.Weather, _ = cmd.Flags().GetString("weather")
		}
		if cmd.Flags().Changed("temp") {
			temp, _ := cmd.Flags().GetFloat64("temp")
			e.Temperature = &temp
		}
		if cmd.Flags().Changed("note") {
			e.Note, _ = cmd.Flags().GetString("note")
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetString("tags")
			e.Tags = splitTags(tags)
		}

		e, err = svc.UpdateEntry(context.Background(), e)
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Updated entry %s\n", shortID(e.ID))
		return nil
	},
}

var moodDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.MoodService()
		e, err := findEntry(svc, args[0])
		if err != nil {
			return err
		}

		if err := svc.DeleteEntry(context.Background(), e.ID); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Deleted entry %s\n", shortID(e.ID))
		return nil
	},
}

var moodStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mood journal summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := wire.MoodService().Summary()

		fmt.Printf("Entries: %d\n", sum.Entries)
		fmt.Printf("  Average mood: %.1f\n", sum.AverageMood)
		fmt.Printf("  Average temp: %.1f\n", sum.AverageTemperature)
		fmt.Printf("  Streak:       %d day(s)\n", sum.Streak)
		if len(sum.Moods) > 0 {
			fmt.Println("  Moods:")
			for _, gc := range sum.Moods {
				fmt.Printf("    %-8s %d\n", gc.Key, gc.Count)
			}
		}
		if len(sum.ByWeather) > 0 {
			fmt.Println("  Weather:")
			for _, gc := range sum.ByWeather {
				fmt.Printf("    %-8s %d\n", gc.Key, gc.Count)
			}
		}
		return nil
	},
}

func findEntry(svc *app.MoodService, id string) (models.MoodEntry, error) {
	entries := svc.ListEntries(app.EntryFilters{})
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	e, err := svc.GetEntry(resolveID(id, ids))
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("entry %s: not found", id)
	}
	return e, nil
}

func init() {
	// mood log flags
	moodLogCmd.Flags().StringP("weather", "w", "", "Weather condition (clear, cloudy, rain, snow, storm, fog)")
	moodLogCmd.Flags().Float64("temp", 0, "Temperature in degrees Celsius")
	moodLogCmd.Flags().StringP("note", "m", "", "Free-form note")
	moodLogCmd.Flags().String("tags", "", "Comma-separated tags")

	// mood list flags
	moodListCmd.Flags().Int("mood", 0, "Filter by exact mood")
	moodListCmd.Flags().StringP("weather", "w", "", "Filter by weather")
	moodListCmd.Flags().String("tag", "", "Filter by tag")
	moodListCmd.Flags().StringP("text", "t", "", "Filter by text in note or tags")
	moodListCmd.Flags().Int("days", 0, "Only entries from the last N days")
	moodListCmd.Flags().IntP("limit", "n", 0, "Show at most N entries")

	// mood update flags
	moodUpdateCmd.Flags().Int("mood", 0, "New mood (1-5)")
	moodUpdateCmd.Flags().StringP("weather", "w", "", "New weather")
	moodUpdateCmd.Flags().Float64("temp", 0, "New temperature")
	moodUpdateCmd.Flags().StringP("note", "m", "", "New note")
	moodUpdateCmd.Flags().String("tags", "", "New comma-separated tags")

	moodCmd.AddCommand(moodLogCmd)
	moodCmd.AddCommand(moodListCmd)
	moodCmd.AddCommand(moodUpdateCmd)
	moodCmd.AddCommand(moodDeleteCmd)
	moodCmd.AddCommand(moodStatsCmd)
}

// MoodCmd returns the mood command
func MoodCmd() *cobra.Command {
	return moodCmd
}

package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/trove/internal/app"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/wire"
)

var dreamCmd = &cobra.Command{
	Use:   "dream",
	Short: "Keep a dream and prediction journal",
	Long:  "Record dreams and predictions, then resolve predictions as fulfilled or failed",
}

var dreamAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Record a dream or prediction",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		desc, _ := cmd.Flags().GetString("desc")
		lucid, _ := cmd.Flags().GetBool("lucid")
		tags, _ := cmd.Flags().GetString("tags")

		d := models.Dream{
			Title:       args[0],
			Description: desc,
			Kind:        kind,
			Lucid:       lucid,
			Tags:        splitTags(tags),
		}

		d, err := wire.DreamService().AddDream(context.Background(), d)
		if err != nil {
			return fmt.Errorf("failed to add dream: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Recorded %s %s: %s\n", d.Kind, shortID(d.ID), d.Title)
		return nil
	},
}

var dreamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dreams and predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		outcome, _ := cmd.Flags().GetString("outcome")
		tag, _ := cmd.Flags().GetString("tag")
		text, _ := cmd.Flags().GetString("text")
		lucid, _ := cmd.Flags().GetBool("lucid")
		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("limit")

		dreams := wire.DreamService().ListDreams(app.DreamFilters{
			Kind:       kind,
			Outcome:    outcome,
			Tag:        tag,
			Text:       text,
			Lucid:      lucid,
			WithinDays: days,
			Limit:      limit,
		})
		defer flushWarnings()

		if len(dreams) == 0 {
			fmt.Println("No dreams found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tKIND\tTITLE\tOUTCOME\tTAGS")
		fmt.Fprintln(w, "--\t----\t----\t-----\t-------\t----")
		for _, d := range dreams {
			title := d.Title
			if d.Lucid {
				title += " [lucid]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(d.ID), fmtDate(d.CreatedAt), d.Kind, title,
				coloredStatus(d.Outcome), fmtTags(d.Tags))
		}
		return w.Flush()
	},
}

var dreamShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one dream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := findDream(wire.DreamService(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", d.ID, d.Title)
		fmt.Printf("  Kind:     %s\n", d.Kind)
		fmt.Printf("  Outcome:  %s\n", coloredStatus(d.Outcome))
		if d.ResolvedAt != nil {
			fmt.Printf("  Resolved: %s\n", fmtDate(*d.ResolvedAt))
		}
		if d.Lucid {
			fmt.Println("  Lucid:    yes")
		}
		if d.Description != "" {
			fmt.Printf("  Detail:   %s\n", d.Description)
		}
		if len(d.Tags) > 0 {
			fmt.Printf("  Tags:     %s\n", fmtTags(d.Tags))
		}
		fmt.Printf("  Recorded: %s\n", fmtDate(d.CreatedAt))
		return nil
	},
}

var dreamResolveCmd = &cobra.Command{
	Use:   "resolve [id] [outcome]",
	Short: "Resolve a prediction as fulfilled or failed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.DreamService()
		d, err := findDream(svc, args[0])
		if err != nil {
			return err
		}

		d, err = svc.Resolve(context.Background(), d.ID, args[1])
		if err != nil {
			return fmt.Errorf("failed to resolve: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ %s resolved as %s\n", d.Title, coloredStatus(d.Outcome))
		return nil
	},
}

var dreamUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a dream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.DreamService()
		d, err := findDream(svc, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			d.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("desc") {
			d.Description, _ = cmd.Flags().GetString("desc")
		}
		if cmd.Flags().Changed("lucid") {
			d.Lucid, _ = cmd.Flags().GetBool("lucid")
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetString("tags")
			d.Tags = splitTags(tags)
		}

		d, err = svc.UpdateDream(context.Background(), d)
		if err != nil {
			return fmt.Errorf("failed to update dream: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Updated dream %s: %s\n", shortID(d.ID), d.Title)
		return nil
	},
}

var dreamDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a dream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.DreamService()
		d, err := findDream(svc, args[0])
		if err != nil {
			return err
		}

		if err := svc.DeleteDream(context.Background(), d.ID); err != nil {
			return fmt.Errorf("failed to delete dream: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Deleted dream %s\n", d.Title)
		return nil
	},
}

var dreamStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dream journal summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := wire.DreamService().Summary()

		fmt.Printf("Dreams: %d\n", sum.Total)
		fmt.Printf("  Fulfillment rate: %.0f%%\n", sum.FulfillmentRate*100)
		if len(sum.ByKind) > 0 {
			fmt.Println("  By kind:")
			for _, gc := range sum.ByKind {
				fmt.Printf("    %-11s %d\n", gc.Key, gc.Count)
			}
		}
		if len(sum.ByOutcome) > 0 {
			fmt.Println("  By outcome:")
			for _, gc := range sum.ByOutcome {
				fmt.Printf("    %-11s %d\n", gc.Key, gc.Count)
			}
		}
		if len(sum.TopTags) > 0 {
			fmt.Println("  Top tags:")
			for _, gc := range sum.TopTags {
				fmt.Printf("    %-11s %d\n", gc.Key, gc.Count)
			}
		}
		return nil
	},
}

func findDream(svc *app.DreamService, id string) (models.Dream, error) {
	dreams := svc.ListDreams(app.DreamFilters{})
	ids := make([]string, 0, len(dreams))
	for _, d := range dreams {
		ids = append(ids, d.ID)
	}
	d, err := svc.GetDream(resolveID(id, ids))
	if err != nil {
		return models.Dream{}, fmt.Errorf("dream %s: not found", id)
	}
	return d, nil
}

func init() {
	// dream add flags
	dreamAddCmd.Flags().StringP("kind", "k", "", "Kind: dream (default) or prediction")
	dreamAddCmd.Flags().StringP("desc", "d", "", "Longer description")
	dreamAddCmd.Flags().Bool("lucid", false, "Mark as a lucid dream")
	dreamAddCmd.Flags().String("tags", "", "Comma-separated tags")

	// dream list flags
	dreamListCmd.Flags().StringP("kind", "k", "", "Filter by kind")
	dreamListCmd.Flags().StringP("outcome", "o", "", "Filter by outcome")
	dreamListCmd.Flags().String("tag", "", "Filter by tag")
	dreamListCmd.Flags().StringP("text", "t", "", "Filter by text in title, description, or tags")
	dreamListCmd.Flags().Bool("lucid", false, "Only lucid dreams")
	dreamListCmd.Flags().Int("days", 0, "Only dreams from the last N days")
	dreamListCmd.Flags().IntP("limit", "n", 0, "Show at most N dreams")

	// dream update flags
	dreamUpdateCmd.Flags().String("title", "", "New title")
	dreamUpdateCmd.Flags().StringP("desc", "d", "", "New description")
	dreamUpdateCmd.Flags().Bool("lucid", false, "New lucid flag")
	dreamUpdateCmd.Flags().String("tags", "", "New comma-separated tags")

	dreamCmd.AddCommand(dreamAddCmd)
	dreamCmd.AddCommand(dreamListCmd)
	dreamCmd.AddCommand(dreamShowCmd)
	dreamCmd.AddCommand(dreamResolveCmd)
	dreamCmd.AddCommand(dreamUpdateCmd)
	dreamCmd.AddCommand(dreamDeleteCmd)
	dreamCmd.AddCommand(dreamStatsCmd)
}

// DreamCmd returns the dream command
func DreamCmd() *cobra.Command {
	return dreamCmd
}

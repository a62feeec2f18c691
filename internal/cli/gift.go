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

var giftCmd = &cobra.Command{
	Use:   "gift",
	Short: "Track gift ideas",
	Long:  "Add, list, and update gift ideas, their lifecycle status, and custom categories",
}

var giftAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new gift idea",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, _ := cmd.Flags().GetString("for")
		occasion, _ := cmd.Flags().GetString("occasion")
		price, _ := cmd.Flags().GetFloat64("price")
		status, _ := cmd.Flags().GetString("status")
		category, _ := cmd.Flags().GetString("category")
		notes, _ := cmd.Flags().GetString("notes")

		g := models.GiftIdea{
			Title:     args[0],
			Recipient: recipient,
			Occasion:  occasion,
			Price:     optionalFloat(cmd.Flags().Changed("price"), price),
			Status:    status,
			Category:  parseCategory(category),
			Notes:     notes,
		}

		g, err := wire.GiftService().AddGift(context.Background(), g)
		if err != nil {
			return fmt.Errorf("failed to add gift: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Added gift %s: %s\n", shortID(g.ID), g.Title)
		if g.Recipient != "" {
			fmt.Printf("  For: %s\n", g.Recipient)
		}
		if g.Price != nil {
			fmt.Printf("  Price: %s\n", fmtPrice(g.Price))
		}
		return nil
	},
}

var giftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gift ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.GiftService()
		filters := giftFiltersFromFlags(cmd)
		byRecipient, _ := cmd.Flags().GetBool("by-recipient")
		defer flushWarnings()

		if byRecipient {
			groups := svc.GiftsByRecipient(filters)
			if len(groups) == 0 {
				fmt.Println("No gifts found")
				return nil
			}
			for _, grp := range groups {
				name := grp.Key
				if grp.Ungrouped {
					name = "(no recipient)"
				}
				fmt.Printf("%s (%d)\n", name, len(grp.Records))
				for _, g := range grp.Records {
					fmt.Printf("  %s  %s  %s  %s\n", shortID(g.ID), g.Title, fmtPrice(g.Price), coloredStatus(g.Status))
				}
			}
			return nil
		}

		gifts := svc.ListGifts(filters)
		if len(gifts) == 0 {
			fmt.Println("No gifts found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tFOR\tOCCASION\tPRICE\tSTATUS\tCATEGORY")
		fmt.Fprintln(w, "--\t-----\t---\t--------\t-----\t------\t--------")
		for _, g := range gifts {
			cat := svc.ResolveCategory(g.Category)
			occasion := g.Occasion
			if occasion == "" {
				occasion = "-"
			}
			recipient := g.Recipient
			if recipient == "" {
				recipient = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(g.ID), g.Title, recipient, occasion, fmtPrice(g.Price), coloredStatus(g.Status), cat.Name)
		}
		return w.Flush()
	},
}

var giftShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one gift idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.GiftService()
		g, err := findGift(svc, args[0])
		if err != nil {
			return err
		}

		cat := svc.ResolveCategory(g.Category)
		fmt.Printf("%s: %s\n", g.ID, g.Title)
		fmt.Printf("  Status:    %s\n", coloredStatus(g.Status))
		fmt.Printf("  For:       %s\n", orDash(g.Recipient))
		fmt.Printf("  Occasion:  %s\n", orDash(g.Occasion))
		fmt.Printf("  Price:     %s\n", fmtPrice(g.Price))
		fmt.Printf("  Category:  %s\n", cat.Name)
		if g.Notes != "" {
			fmt.Printf("  Notes:     %s\n", g.Notes)
		}
		fmt.Printf("  Added:     %s\n", fmtDate(g.CreatedAt))
		return nil
	},
}

var giftUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a gift idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.GiftService()
		g, err := findGift(svc, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			g.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("for") {
			g.Recipient, _ = cmd.Flags().GetString("for")
		}
		if cmd.Flags().Changed("occasion") {
			g.Occasion, _ = cmd.Flags().GetString("occasion")
		}
		if cmd.Flags().Changed("price") {
			price, _ := cmd.Flags().GetFloat64("price")
			g.Price = &price
		}
		if cmd.Flags().Changed("category") {
			category, _ := cmd.Flags().GetString("category")
			g.Category = parseCategory(category)
		}
		if cmd.Flags().Changed("notes") {
			g.Notes, _ = cmd.Flags().GetString("notes")
		}

		g, err = svc.UpdateGift(context.Background(), g)
		if err != nil {
			return fmt.Errorf("failed to update gift: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Updated gift %s: %s\n", shortID(g.ID), g.Title)
		return nil
	},
}

var giftMarkCmd = &cobra.Command{
	Use:   "mark [id] [status]",
	Short: "Move a gift to a lifecycle status (idea, bought, wrapped, gifted)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.GiftService()
		g, err := findGift(svc, args[0])
		if err != nil {
			return err
		}

		g, err = svc.MarkGift(context.Background(), g.ID, args[1])
		if err != nil {
			return fmt.Errorf("failed to mark gift: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ %s is now %s\n", g.Title, coloredStatus(g.Status))
		return nil
	},
}

var giftDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a gift idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.GiftService()
		g, err := findGift(svc, args[0])
		if err != nil {
			return err
		}

		if err := svc.DeleteGift(context.Background(), g.ID); err != nil {
			return fmt.Errorf("failed to delete gift: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Deleted gift %s\n", g.Title)
		return nil
	},
}

var giftStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show gift tracker summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := wire.GiftService().Summary()

		fmt.Printf("Gifts: %d\n", sum.Total)
		fmt.Printf("  Spent:         %.2f\n", sum.Spent)
		fmt.Printf("  Planned spend: %.2f\n", sum.PlannedSpend)
		if len(sum.ByStatus) > 0 {
			fmt.Println("  By status:")
			for _, gc := range sum.ByStatus {
				fmt.Printf("    %-10s %d\n", gc.Key, gc.Count)
			}
		}
		if len(sum.TopRecipients) > 0 {
			fmt.Println("  Top recipients:")
			for _, gc := range sum.TopRecipients {
				fmt.Printf("    %-10s %d\n", gc.Key, gc.Count)
			}
		}
		return nil
	},
}

var giftCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage custom gift categories",
}

var giftCategoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a custom category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		icon, _ := cmd.Flags().GetString("icon")
		colorName, _ := cmd.Flags().GetString("color")

		cat, err := wire.GiftService().AddCategory(context.Background(), args[0], icon, colorName)
		if err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Added category %s: %s\n", shortID(cat.ID), cat.Name)
		return nil
	},
}

var giftCategoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories (builtin and custom)",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tICON\tKIND")
		fmt.Fprintln(w, "--\t----\t----\t----")
		for _, b := range models.BuiltinCategories {
			info := models.ResolveCategory(models.BuiltinCat(b), nil)
			fmt.Fprintf(w, "-\t%s\t%s\tbuiltin\n", info.Name, info.Icon)
		}
		for _, c := range wire.GiftService().ListCategories() {
			icon := c.Icon
			if icon == "" {
				icon = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\tcustom\n", shortID(c.ID), c.Name, icon)
		}
		return w.Flush()
	},
}

var giftCategoryDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a custom category (its gifts move to the default category)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.GiftService()
		id := resolveID(args[0], categoryIDs(svc))
		if err := svc.DeleteCategory(context.Background(), id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		defer flushWarnings()

		fmt.Printf("✓ Deleted category %s\n", shortID(id))
		return nil
	},
}

// parseCategory turns a --category value into the tagged variant: a
// builtin name selects the builtin, anything else is a custom id.
func parseCategory(value string) models.Category {
	if value == "" {
		return models.Category{}
	}
	if models.IsValidBuiltin(models.BuiltinCategory(value)) {
		return models.BuiltinCat(models.BuiltinCategory(value))
	}
	return models.CustomCat(value)
}

func giftFiltersFromFlags(cmd *cobra.Command) app.GiftFilters {
	status, _ := cmd.Flags().GetString("status")
	recipient, _ := cmd.Flags().GetString("for")
	occasion, _ := cmd.Flags().GetString("occasion")
	text, _ := cmd.Flags().GetString("text")
	days, _ := cmd.Flags().GetInt("days")
	minPrice, _ := cmd.Flags().GetFloat64("min-price")
	maxPrice, _ := cmd.Flags().GetFloat64("max-price")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	return app.GiftFilters{
		Status:     status,
		Recipient:  recipient,
		Occasion:   occasion,
		Text:       text,
		WithinDays: days,
		MinPrice:   optionalFloat(cmd.Flags().Changed("min-price"), minPrice),
		MaxPrice:   optionalFloat(cmd.Flags().Changed("max-price"), maxPrice),
		SortBy:     sortBy,
		Limit:      limit,
	}
}

// findGift resolves a possibly-shortened id to the stored gift.
func findGift(svc *app.GiftService, id string) (models.GiftIdea, error) {
	g, err := svc.GetGift(resolveID(id, giftIDs(svc)))
	if err != nil {
		return models.GiftIdea{}, fmt.Errorf("gift %s: not found", id)
	}
	return g, nil
}

func giftIDs(svc *app.GiftService) []string {
	gifts := svc.ListGifts(app.GiftFilters{})
	ids := make([]string, 0, len(gifts))
	for _, g := range gifts {
		ids = append(ids, g.ID)
	}
	return ids
}

func categoryIDs(svc *app.GiftService) []string {
	cats := svc.ListCategories()
	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return ids
}

func init() {
	// gift add flags
	giftAddCmd.Flags().StringP("for", "r", "", "Recipient")
	giftAddCmd.Flags().String("occasion", "", "Occasion (birthday, christmas, ...)")
	giftAddCmd.Flags().Float64P("price", "p", 0, "Price")
	giftAddCmd.Flags().String("status", "", "Initial status (defaults to idea)")
	giftAddCmd.Flags().StringP("category", "c", "", "Category: builtin name or custom category id")
	giftAddCmd.Flags().String("notes", "", "Free-form notes")

	// gift list flags
	giftListCmd.Flags().StringP("status", "s", "", "Filter by status")
	giftListCmd.Flags().StringP("for", "r", "", "Filter by recipient")
	giftListCmd.Flags().String("occasion", "", "Filter by occasion")
	giftListCmd.Flags().StringP("text", "t", "", "Filter by text in title, recipient, or notes")
	giftListCmd.Flags().Int("days", 0, "Only gifts added in the last N days")
	giftListCmd.Flags().Float64("min-price", 0, "Minimum price")
	giftListCmd.Flags().Float64("max-price", 0, "Maximum price")
	giftListCmd.Flags().String("sort", "", "Sort order: recent (default), price, title")
	giftListCmd.Flags().IntP("limit", "n", 0, "Show at most N gifts")
	giftListCmd.Flags().Bool("by-recipient", false, "Group gifts by recipient")

	// gift update flags
	giftUpdateCmd.Flags().String("title", "", "New title")
	giftUpdateCmd.Flags().StringP("for", "r", "", "New recipient")
	giftUpdateCmd.Flags().String("occasion", "", "New occasion")
	giftUpdateCmd.Flags().Float64P("price", "p", 0, "New price")
	giftUpdateCmd.Flags().StringP("category", "c", "", "New category")
	giftUpdateCmd.Flags().String("notes", "", "New notes")

	// gift category flags
	giftCategoryAddCmd.Flags().String("icon", "", "Icon name")
	giftCategoryAddCmd.Flags().String("color", "", "Display color")

	giftCategoryCmd.AddCommand(giftCategoryAddCmd)
	giftCategoryCmd.AddCommand(giftCategoryListCmd)
	giftCategoryCmd.AddCommand(giftCategoryDeleteCmd)

	giftCmd.AddCommand(giftAddCmd)
	giftCmd.AddCommand(giftListCmd)
	giftCmd.AddCommand(giftShowCmd)
	giftCmd.AddCommand(giftUpdateCmd)
	giftCmd.AddCommand(giftMarkCmd)
	giftCmd.AddCommand(giftDeleteCmd)
	giftCmd.AddCommand(giftStatsCmd)
	giftCmd.AddCommand(giftCategoryCmd)
}

// GiftCmd returns the gift command
func GiftCmd() *cobra.Command {
	return giftCmd
}

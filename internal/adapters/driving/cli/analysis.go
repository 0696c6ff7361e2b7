package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List spending categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var productsCmd = &cobra.Command{
	Use:   "products [category]",
	Short: "List products in a category",
	Long: `Group the line items of a category into products and list them.

Items are matched on their normalised descriptions, so "PINAR SUT 1L" and
"Tam Yağlı Süt 1Lt" end up in the same product.`,
	Args: cobra.ExactArgs(1),
	RunE: runProducts,
}

var historyCmd = &cobra.Command{
	Use:   "history [category] [product]",
	Short: "Show the price history of a product",
	Long: `Show every purchase of a product, most recent first.
The product is named by the label shown in 'receipta products'.`,
	Args: cobra.ExactArgs(2),
	RunE: runHistory,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise spending per category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show receipt milestones",
	Args:  cobra.NoArgs,
	RunE:  runAchievements,
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	categories, err := analysisService.Categories(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, categories)
	}
	if len(categories) == 0 {
		cmd.Println("No categories found.")
		return nil
	}
	for _, c := range categories {
		cmd.Println(c)
	}
	return nil
}

func runProducts(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	products, err := analysisService.Products(commandContext(cmd), userID, args[0])
	if errors.Is(err, domain.ErrEmptyCategory) {
		cmd.Printf("No products in %s.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, products)
	}

	cmd.Printf("Products in %s:\n", args[0])
	cmd.Println()
	for _, p := range products {
		price := p.LowestPrice.StringFixed(2)
		if !p.HighestPrice.Equal(p.LowestPrice) {
			price += " - " + p.HighestPrice.StringFixed(2)
		}
		cmd.Printf("  %-32s %3d purchases  %s\n", p.Label, p.Purchases, price)
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	entries, err := analysisService.History(commandContext(cmd), userID, args[0], args[1])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no product %q in %s", args[1], args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, entries)
	}

	cmd.Printf("Price history for %s:\n", args[1])
	cmd.Println()
	for _, e := range entries {
		cmd.Printf("  %-10s %-20s %-32s %8s\n", e.Date, e.MerchantName, e.Description, e.UnitPrice.StringFixed(2))
	}
	return nil
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	summary, err := analysisService.Summary(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("failed to summarise spending: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, summary)
	}

	cmd.Printf("Total spent: %s across %d receipts\n", summary.TotalSpent.StringFixed(2), summary.ReceiptCount)
	cmd.Println()
	for _, c := range summary.Categories {
		cmd.Printf("  %-16s %10s  (%d receipts)\n", c.Category, c.TotalSpent.StringFixed(2), c.ReceiptCount)
	}
	cmd.Println()
	printAchievements(cmd, summary.Achievements)
	return nil
}

func runAchievements(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	summary, err := analysisService.Summary(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("failed to load achievements: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, summary.Achievements)
	}
	printAchievements(cmd, summary.Achievements)
	return nil
}

func printAchievements(cmd *cobra.Command, achievements []domain.Achievement) {
	cmd.Println("Achievements:")
	for _, a := range achievements {
		mark := "[ ]"
		if a.Unlocked {
			mark = "[x]"
		}
		cmd.Printf("  %s %-14s %s\n", mark, a.Title, a.Description)
	}
}

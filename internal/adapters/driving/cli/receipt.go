package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/receipta/internal/adapters/driven/importer"
	"github.com/custodia-labs/receipta/internal/core/domain"
)

var (
	addMerchant string
	addDate     string
	addTime     string
	addCategory string
	addTotal    string
	addVAT      string
	addItems    []string

	scanCategory string
	shareOff     bool
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Manage receipts",
	Long:  `Add, list, import and scan receipts.`,
}

var receiptAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a receipt by hand",
	Long: `Add a receipt by hand. Each --item is "description;quantity;unit price".
The quantity may be omitted ("description;unit price") and defaults to 1.

Example:
  receipta receipt add --merchant Migros --date 2024-01-10 \
    --item "PINAR SUT 1L;2;3.50" --item "Ekmek;5.00"`,
	Args: cobra.NoArgs,
	RunE: runReceiptAdd,
}

var receiptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List receipts, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runReceiptList,
}

var receiptShowCmd = &cobra.Command{
	Use:   "show [receipt-id]",
	Short: "Show a receipt and its line items",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptShow,
}

var receiptDeleteCmd = &cobra.Command{
	Use:   "delete [receipt-id]",
	Short: "Delete a receipt",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptDelete,
}

var receiptShareCmd = &cobra.Command{
	Use:   "share [receipt-id]",
	Short: "Create or revoke the public link of a receipt",
	Long: `Share a receipt through a public link served at /api/shared/<share-id>.
Sharing an already shared receipt prints the existing link. --off revokes
it; sharing again afterwards creates a new link.`,
	Args: cobra.ExactArgs(1),
	RunE: runReceiptShare,
}

var receiptSharedCmd = &cobra.Command{
	Use:   "shared [share-id]",
	Short: "Show a receipt through its public link",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptShared,
}

var receiptImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import receipts from a JSON, CSV or Excel file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptImport,
}

var receiptScanCmd = &cobra.Command{
	Use:   "scan [image]",
	Short: "Scan a receipt photo with the OCR extractor",
	Long: `Send a receipt photo to the configured Donut endpoint and store the result.

Configure the endpoint first:
  receipta settings set extractor.endpoint https://...
  receipta settings set extractor.token <token>`,
	Args: cobra.ExactArgs(1),
	RunE: runReceiptScan,
}

var receiptWatchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Import receipt files as they appear in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptWatch,
}

func init() {
	receiptAddCmd.Flags().StringVarP(&addMerchant, "merchant", "m", "", "merchant name")
	receiptAddCmd.Flags().StringVarP(&addDate, "date", "d", "", "transaction date (YYYY-MM-DD)")
	receiptAddCmd.Flags().StringVar(&addTime, "time", "", "transaction time (HH:MM)")
	receiptAddCmd.Flags().StringVarP(&addCategory, "category", "c", "", "spending category (default Market)")
	receiptAddCmd.Flags().StringVar(&addTotal, "total", "", "total amount (default sum of items)")
	receiptAddCmd.Flags().StringVar(&addVAT, "vat", "", "total VAT")
	receiptAddCmd.Flags().StringArrayVarP(&addItems, "item", "i", nil, `line item "description;quantity;unit price"`)
	receiptScanCmd.Flags().StringVarP(&scanCategory, "category", "c", "", "spending category (default Market)")
	receiptShareCmd.Flags().BoolVar(&shareOff, "off", false, "revoke the public link")

	receiptCmd.AddCommand(receiptAddCmd)
	receiptCmd.AddCommand(receiptListCmd)
	receiptCmd.AddCommand(receiptShowCmd)
	receiptCmd.AddCommand(receiptDeleteCmd)
	receiptCmd.AddCommand(receiptShareCmd)
	receiptCmd.AddCommand(receiptSharedCmd)
	receiptCmd.AddCommand(receiptImportCmd)
	receiptCmd.AddCommand(receiptScanCmd)
	receiptCmd.AddCommand(receiptWatchCmd)
	rootCmd.AddCommand(receiptCmd)
}

func runReceiptAdd(cmd *cobra.Command, _ []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	receipt := &domain.Receipt{
		UserID:          userID,
		MerchantName:    addMerchant,
		TransactionDate: addDate,
		TransactionTime: addTime,
		Category:        addCategory,
	}
	for _, raw := range addItems {
		item, err := parseItemFlag(raw)
		if err != nil {
			return err
		}
		receipt.Items = append(receipt.Items, item)
	}
	if addTotal != "" {
		total, err := domain.ParseAmount(addTotal)
		if err != nil {
			return fmt.Errorf("invalid --total: %w", err)
		}
		receipt.TotalAmount = total
	}
	if addVAT != "" {
		vat, err := domain.ParseAmount(addVAT)
		if err != nil {
			return fmt.Errorf("invalid --vat: %w", err)
		}
		receipt.TotalVAT = vat
	}

	if err := receiptService.Add(commandContext(cmd), receipt); err != nil {
		return fmt.Errorf("failed to add receipt: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, receipt)
	}
	cmd.Printf("Added receipt %s (%s, %d items, total %s)\n",
		receipt.ID, receipt.MerchantName, len(receipt.Items), receipt.TotalAmount.StringFixed(2))
	return nil
}

// parseItemFlag parses "description;quantity;unit price" or "description;unit price".
func parseItemFlag(raw string) (domain.LineItem, error) {
	parts := strings.Split(raw, ";")
	var item domain.LineItem
	var qty, price string
	switch len(parts) {
	case 2:
		price = parts[1]
	case 3:
		qty, price = parts[1], parts[2]
	default:
		return item, fmt.Errorf("%w: item %q must be \"description;quantity;unit price\"", domain.ErrInvalidInput, raw)
	}

	item.Description = strings.TrimSpace(parts[0])
	item.Quantity = decimal.NewFromInt(1)
	if strings.TrimSpace(qty) != "" {
		q, err := domain.ParseAmount(qty)
		if err != nil {
			return item, fmt.Errorf("item %q quantity: %w", raw, err)
		}
		item.Quantity = q
	}
	p, err := domain.ParseAmount(price)
	if err != nil {
		return item, fmt.Errorf("item %q price: %w", raw, err)
	}
	item.UnitPrice = p
	return item, nil
}

func runReceiptList(cmd *cobra.Command, _ []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	receipts, err := receiptService.List(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("failed to list receipts: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, receipts)
	}
	if len(receipts) == 0 {
		cmd.Println("No receipts found.")
		return nil
	}

	cmd.Println("Receipts:")
	cmd.Println()
	for i := range receipts {
		r := &receipts[i]
		cmd.Printf("  %s  %-10s %-5s %-20s %-12s %10s\n",
			r.ID, r.TransactionDate, r.TransactionTime, r.MerchantName, r.Category, r.TotalAmount.StringFixed(2))
	}
	return nil
}

func runReceiptShow(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	receipt, err := receiptService.Get(commandContext(cmd), userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get receipt: %w", err)
	}
	return printReceipt(cmd, receipt)
}

func printReceipt(cmd *cobra.Command, receipt *domain.Receipt) error {
	if outputJSON {
		return printJSON(cmd, receipt)
	}

	cmd.Printf("Receipt %s\n", receipt.ID)
	cmd.Printf("  Merchant: %s\n", receipt.MerchantName)
	when := receipt.TransactionDate
	if receipt.TransactionTime != "" {
		when += " " + receipt.TransactionTime
	}
	cmd.Printf("  Date:     %s\n", when)
	cmd.Printf("  Category: %s\n", receipt.Category)
	if receipt.IsShared {
		cmd.Printf("  Shared:   %s\n", receipt.ShareID)
	}
	cmd.Println()
	for _, item := range receipt.Items {
		cmd.Printf("  %-32s %6s x %8s = %9s\n", item.Description,
			item.Quantity.String(), item.UnitPrice.StringFixed(2), item.LineTotal().StringFixed(2))
	}
	cmd.Println()
	if !receipt.TotalVAT.IsZero() {
		cmd.Printf("  VAT:   %s\n", receipt.TotalVAT.StringFixed(2))
	}
	cmd.Printf("  Total: %s\n", receipt.TotalAmount.StringFixed(2))
	return nil
}

func runReceiptDelete(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	if err := receiptService.Delete(commandContext(cmd), userID, args[0]); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	cmd.Printf("Deleted receipt %s\n", args[0])
	return nil
}

func runReceiptShare(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}
	ctx := commandContext(cmd)

	if shareOff {
		if err := receiptService.Unshare(ctx, userID, args[0]); err != nil {
			return fmt.Errorf("failed to unshare receipt: %w", err)
		}
		if outputJSON {
			return printJSON(cmd, map[string]any{"receipt_id": args[0], "shared": false})
		}
		cmd.Printf("Receipt %s is private\n", args[0])
		return nil
	}

	shareID, err := receiptService.Share(ctx, userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to share receipt: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, map[string]any{"receipt_id": args[0], "shared": true, "share_id": shareID})
	}
	cmd.Printf("Receipt %s is shared\n", args[0])
	cmd.Printf("  Share ID: %s\n", shareID)
	cmd.Printf("  Link:     /api/shared/%s\n", shareID)
	return nil
}

func runReceiptShared(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	receipt, err := receiptService.GetShared(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get shared receipt: %w", err)
	}
	return printReceipt(cmd, receipt)
}

func runReceiptImport(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	n, err := receiptService.Import(commandContext(cmd), userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	cmd.Printf("Imported %d receipts from %s\n", n, filepath.Base(args[0]))
	return nil
}

func runReceiptScan(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}

	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	receipt, err := receiptService.Scan(commandContext(cmd), userID, image, "", scanCategory)
	if errors.Is(err, domain.ErrExtractorUnavailable) {
		return fmt.Errorf("%w: run 'receipta settings set extractor.endpoint <url>' first", err)
	}
	if err != nil {
		return fmt.Errorf("failed to scan receipt: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, receipt)
	}
	cmd.Printf("Scanned receipt %s (%s, %d items, total %s)\n",
		receipt.ID, receipt.MerchantName, len(receipt.Items), receipt.TotalAmount.StringFixed(2))
	return nil
}

func runReceiptWatch(cmd *cobra.Command, args []string) error {
	if receiptService == nil {
		return errors.New("receipt service not configured")
	}
	registry := importRegistry
	if registry == nil {
		registry = importer.Default()
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for %s files (Ctrl+C to stop)\n",
		args[0], strings.Join(registry.Extensions(), ", "))

	watcher := importer.NewWatcher(args[0], registry)
	return watcher.Run(ctx, func(ctx context.Context, path string) error {
		n, err := receiptService.Import(ctx, userID, path)
		if err != nil {
			return err
		}
		cmd.Printf("Imported %d receipts from %s\n", n, filepath.Base(path))
		return nil
	})
}

// Package cli provides the command-line interface for receipta.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/receipta/internal/adapters/driven/importer"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
	"github.com/custodia-labs/receipta/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	outputJSON bool
)

// Services bound by the composition root.
var (
	receiptService  driving.ReceiptService
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
	importRegistry  *importer.Registry
	userID          = "local"
)

// Services groups the driving ports the commands call.
type Services struct {
	Receipt  driving.ReceiptService
	Analysis driving.AnalysisService
	Settings driving.SettingsService
	Registry *importer.Registry
	UserID   string
}

var rootCmd = &cobra.Command{
	Use:   "receipta",
	Short: "Track grocery receipts and product prices",
	Long: `Receipta stores your receipts and groups their line items into products,
so you can follow what the same product cost across stores and dates.

Receipts can be typed in, imported from JSON, CSV or Excel exports, or
scanned from photos through a Donut OCR endpoint.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
}

// SetServices binds the services used by all commands.
func SetServices(s Services) {
	receiptService = s.Receipt
	analysisService = s.Analysis
	settingsService = s.Settings
	importRegistry = s.Registry
	if s.UserID != "" {
		userID = s.UserID
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	AnalysisService driving.AnalysisService
	ReceiptService  driving.ReceiptService
	SettingsService driving.SettingsService
	UserID          string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Receipta.

The TUI lets you browse categories, the products grouped inside them and
each product's price history, and review or delete stored receipts.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open
  /        - Filter products
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the TUI configuration, falling back to
// the services registered with SetServices.
func tuiPorts() *tui.Ports {
	if tuiConfig != nil {
		return &tui.Ports{
			Analysis: tuiConfig.AnalysisService,
			Receipt:  tuiConfig.ReceiptService,
			Settings: tuiConfig.SettingsService,
			UserID:   tuiConfig.UserID,
		}
	}
	return &tui.Ports{
		Analysis: analysisService,
		Receipt:  receiptService,
		Settings: settingsService,
		UserID:   userID,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

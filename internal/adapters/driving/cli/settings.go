package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, the OCR extractor, and other options.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Run 'receipta settings keys' to list the recognised keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("User: %s\n", settings.UserID)
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend.Description())
	switch settings.Store.Backend {
	case domain.StoreBackendSQLite:
		dir := settings.Store.DataDir
		if dir == "" {
			dir = "(default)"
		}
		cmd.Printf("  Data dir: %s\n", dir)
	case domain.StoreBackendPostgres:
		if settings.Store.PostgresDSN != "" {
			cmd.Printf("  DSN: %s\n", maskAPIKey(settings.Store.PostgresDSN))
		} else {
			cmd.Printf("  DSN: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Locale]")
	if settings.Locale.File != "" {
		cmd.Printf("  File: %s\n", settings.Locale.File)
	} else {
		cmd.Printf("  File: (built-in Turkish tables)\n")
	}
	cmd.Println()

	cmd.Println("[Extractor]")
	if settings.Extractor.IsConfigured() {
		cmd.Printf("  Endpoint: %s\n", settings.Extractor.Endpoint)
		if settings.Extractor.Token != "" {
			cmd.Printf("  Token: %s\n", maskAPIKey(settings.Extractor.Token))
		} else {
			cmd.Printf("  Token: (not set)\n")
		}
		cmd.Printf("  Rate: %d/min\n", settings.Extractor.RatePerMinute)
	} else {
		cmd.Printf("  Status: not configured (scanning disabled)\n")
	}
	cmd.Println()

	cmd.Println("[HTTP]")
	cmd.Printf("  Address: %s\n", settings.HTTP.Addr)
	if len(settings.HTTP.AllowedOrigins) > 0 {
		cmd.Printf("  Allowed origins: %s\n", strings.Join(settings.HTTP.AllowedOrigins, ", "))
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'receipta settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	value := args[1]
	if strings.Contains(args[0], "token") || strings.Contains(args[0], "dsn") {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", args[0], value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Receipta Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: User
	cmd.Printf("Step 1: User ID [%s]: ", settings.UserID)
	if input := readLine(reader); input != "" {
		settings.UserID = input
	}
	cmd.Println()

	// Step 2: Store backend
	cmd.Println("Step 2: Select Storage Backend")
	cmd.Println("------------------------------")
	backends := domain.AllStoreBackends()
	current := 1
	for i, b := range backends {
		if b == settings.Store.Backend {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Store.Backend = backends[parseChoice(readLine(reader), len(backends), current)-1]

	if settings.Store.Backend.RequiresDSN() {
		cmd.Print("Enter PostgreSQL DSN: ")
		if input := readLine(reader); input != "" {
			settings.Store.PostgresDSN = input
		}
	}
	cmd.Println()

	// Step 3: OCR extractor
	cmd.Println("Step 3: Receipt Scanning (optional)")
	cmd.Println("-----------------------------------")
	cmd.Printf("Donut endpoint URL [%s]: ", settings.Extractor.Endpoint)
	if input := readLine(reader); input != "" {
		settings.Extractor.Endpoint = input
	}
	if settings.Extractor.Endpoint != "" {
		cmd.Print("Access token (leave empty to keep current): ")
		if token := readPassword(reader); token != "" {
			settings.Extractor.Token = token
		}
		cmd.Println()
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func readPassword(reader *bufio.Reader) string {
	// Read without echo when attached to a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

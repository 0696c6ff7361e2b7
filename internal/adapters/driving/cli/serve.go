package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/receipta/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only HTTP API",
	Long: `Start a JSON API over your receipts and products for local dashboards.

Routes:
  GET /api/categories
  GET /api/products?category=Market
  GET /api/history?category=Market&label=PINAR%20SUT%201L
  GET /api/summary
  GET /api/receipts
  GET /api/receipts/{id}

The listen address and CORS origins come from http.addr and
http.allowed_origins unless --addr is given.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from http.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	addr := serveAddr
	var origins []string
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			if addr == "" {
				addr = settings.HTTP.Addr
			}
			origins = settings.HTTP.AllowedOrigins
		}
	}
	if addr == "" {
		addr = ":8080"
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Analysis: analysisService,
		Receipt:  receiptService,
		UserID:   userID,
	}, origins)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", addr)
	return server.Run(ctx, addr)
}

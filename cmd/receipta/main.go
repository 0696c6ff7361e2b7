// Command receipta tracks grocery receipts and groups their line items into
// products so prices can be compared over time.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/receipta/internal/adapters/driven/config/file"
	"github.com/custodia-labs/receipta/internal/adapters/driven/extractor/donut"
	"github.com/custodia-labs/receipta/internal/adapters/driven/importer"
	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/receipta/internal/adapters/driving/cli"
	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
	"github.com/custodia-labs/receipta/internal/core/services"
	"github.com/custodia-labs/receipta/internal/locale"
	"github.com/custodia-labs/receipta/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configDir, err := file.DefaultDir()
	if err != nil {
		return err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	tables := locale.Default()
	if settings.Locale.File != "" {
		tables, err = file.NewLocaleStore(tables).Load(settings.Locale.File)
		if err != nil {
			return fmt.Errorf("loading locale: %w", err)
		}
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{Settings: settingsService, UserID: settings.UserID})

	// Settings commands stay usable when the store cannot be opened.
	store, closer, err := openStore(ctx, settings.Store)
	if err != nil {
		logger.Error("%v", err)
		return cli.Execute(ctx)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}()

	var extractor driven.ReceiptExtractor
	if settings.Extractor.IsConfigured() {
		client, err := donut.New(settings.Extractor)
		if err != nil {
			return fmt.Errorf("configuring extractor: %w", err)
		}
		extractor = client
	}

	registry := importer.Default()
	receiptService := services.NewReceiptService(store, registry, extractor)
	analysisService := services.NewAnalysisService(store, tables)

	cli.SetServices(cli.Services{
		Receipt:  receiptService,
		Analysis: analysisService,
		Settings: settingsService,
		Registry: registry,
		UserID:   settings.UserID,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		AnalysisService: analysisService,
		ReceiptService:  receiptService,
		SettingsService: settingsService,
		UserID:          settings.UserID,
	})

	return cli.Execute(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the configured receipt store.
func openStore(ctx context.Context, s domain.StoreSettings) (driven.ReceiptStore, io.Closer, error) {
	switch s.Backend {
	case domain.StoreBackendPostgres:
		if s.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("%w: store.postgres_dsn is not set", domain.ErrInvalidInput)
		}
		db, err := postgres.Open(ctx, s.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return db, db, nil
	case domain.StoreBackendMemory:
		logger.Warn("memory store selected: receipts are lost on exit")
		return memory.NewReceiptStore(), nopCloser{}, nil
	default:
		db, err := sqlite.NewStore(s.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("sqlite store at %s", db.Path())
		return db.ReceiptStore(), db, nil
	}
}

package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
	"github.com/custodia-labs/receipta/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyUserID          = "user.id"
	keyStoreBackend    = "store.backend"
	keyStoreDataDir    = "store.data_dir"
	keyStorePostgres   = "store.postgres_dsn"
	keyLocaleFile      = "locale.file"
	keyExtractorURL    = "extractor.endpoint"
	keyExtractorToken  = "extractor.token"
	keyExtractorRate   = "extractor.rate"
	keyHTTPAddr        = "http.addr"
	keyHTTPAllowOrigin = "http.allowed_origins"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		UserID: s.getString(keyUserID, defaults.UserID),
		Store: domain.StoreSettings{
			Backend:     s.getBackend(defaults.Store.Backend),
			DataDir:     s.configStore.GetString(keyStoreDataDir),
			PostgresDSN: s.configStore.GetString(keyStorePostgres),
		},
		Locale: domain.LocaleSettings{
			File: s.configStore.GetString(keyLocaleFile),
		},
		Extractor: domain.ExtractorSettings{
			Endpoint:      s.configStore.GetString(keyExtractorURL),
			Token:         s.configStore.GetString(keyExtractorToken),
			RatePerMinute: s.getInt(keyExtractorRate, defaults.Extractor.RatePerMinute),
		},
		HTTP: domain.HTTPSettings{
			Addr:           s.getString(keyHTTPAddr, defaults.HTTP.Addr),
			AllowedOrigins: s.configStore.GetStringSlice(keyHTTPAllowOrigin),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	values := []struct {
		key   string
		value any
	}{
		{keyUserID, settings.UserID},
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStoreDataDir, settings.Store.DataDir},
		{keyStorePostgres, settings.Store.PostgresDSN},
		{keyLocaleFile, settings.Locale.File},
		{keyExtractorURL, settings.Extractor.Endpoint},
		{keyExtractorRate, settings.Extractor.RatePerMinute},
		{keyHTTPAddr, settings.HTTP.Addr},
		{keyHTTPAllowOrigin, settings.HTTP.AllowedOrigins},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty token never overwrites a stored one.
	if settings.Extractor.Token != "" {
		if err := s.configStore.Set(keyExtractorToken, settings.Extractor.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyExtractorToken, err)
		}
	}

	return nil
}

// Set updates a single setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	var stored any = value
	switch key {
	case keyStoreBackend:
		if !domain.StoreBackend(value).IsValid() {
			return fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidInput, value)
		}
	case keyExtractorRate:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case keyHTTPAllowOrigin:
		stored = splitList(value)
	case keyUserID:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
	case keyStoreDataDir, keyStorePostgres, keyLocaleFile, keyExtractorURL, keyExtractorToken, keyHTTPAddr:
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised config key, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyUserID, keyStoreBackend, keyStoreDataDir, keyStorePostgres,
		keyLocaleFile, keyExtractorURL, keyExtractorToken, keyExtractorRate,
		keyHTTPAddr, keyHTTPAllowOrigin,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the configured backend is usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.Store.IsConfigured() {
		return fmt.Errorf("%w: store backend %s requires %s", domain.ErrInvalidInput,
			settings.Store.Backend, keyStorePostgres)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	backend := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultVal
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

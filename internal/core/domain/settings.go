package domain

const unknownDescription = "Unknown"

// StoreBackend selects where receipts are persisted.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendSQLite keeps receipts in a local SQLite file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendPostgres reads and writes a managed Postgres database.
	StoreBackendPostgres StoreBackend = "postgres"

	// StoreBackendMemory keeps receipts in process memory only.
	StoreBackendMemory StoreBackend = "memory"
)

// AllStoreBackends returns every supported backend in menu order.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendSQLite, StoreBackendPostgres, StoreBackendMemory}
}

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendSQLite, StoreBackendPostgres, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// RequiresDSN returns true if this backend needs a connection string.
func (b StoreBackend) RequiresDSN() bool {
	return b == StoreBackendPostgres
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendPostgres:
		return "Postgres (managed backend)"
	case StoreBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// StoreSettings holds receipt storage configuration.
type StoreSettings struct {
	// Backend is the storage backend.
	Backend StoreBackend

	// DataDir is the SQLite data directory. Empty means ~/.receipta/data.
	DataDir string

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string
}

// IsConfigured returns true if the backend has everything it needs.
func (s StoreSettings) IsConfigured() bool {
	if !s.Backend.IsValid() {
		return false
	}
	if s.Backend.RequiresDSN() && s.PostgresDSN == "" {
		return false
	}
	return true
}

// LocaleSettings selects the linguistic tables.
type LocaleSettings struct {
	// File is an optional YAML or TOML locale pack. Empty uses the
	// built-in Turkish tables.
	File string
}

// ExtractorSettings configures the OCR service used by receipt scanning.
type ExtractorSettings struct {
	// Endpoint is the inference URL receiving receipt images.
	Endpoint string

	// Token is the bearer token sent to the endpoint.
	Token string

	// RatePerMinute caps requests sent to the endpoint.
	RatePerMinute int
}

// IsConfigured returns true if scanning can be attempted.
func (e ExtractorSettings) IsConfigured() bool {
	return e.Endpoint != "" && e.Token != ""
}

// HTTPSettings configures the read-only HTTP API.
type HTTPSettings struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string

	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	// UserID identifies whose receipts are read and written.
	UserID string

	Store     StoreSettings
	Locale    LocaleSettings
	Extractor ExtractorSettings
	HTTP      HTTPSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		UserID: "local",
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
		},
		Extractor: ExtractorSettings{
			RatePerMinute: 30,
		},
		HTTP: HTTPSettings{
			Addr: ":8080",
		},
	}
}

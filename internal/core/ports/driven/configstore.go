package driven

// ConfigStore holds flat dotted keys such as "store.backend" and
// "extractor.token". The file adapter keeps them in config.toml; the
// memory adapter is used by tests.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when unset or not a string.
	GetString(key string) string

	// GetInt returns the value as an int. TOML integers decode as int64
	// and are narrowed. Returns 0 when unset.
	GetInt(key string) int

	// GetBool returns the value as a bool, or false when unset.
	GetBool(key string) bool

	// GetStringSlice returns a list value such as http.allowed_origins.
	GetStringSlice(key string) []string

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the in-memory values with those in storage.
	Load() error

	// Path is where values are persisted.
	Path() string
}

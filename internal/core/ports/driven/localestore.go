package driven

import "github.com/custodia-labs/receipta/internal/core/domain"

// LocaleStore loads the linguistic tables used to normalise descriptions.
type LocaleStore interface {
	// Load returns the tables at path merged over the built-in defaults.
	// An empty path returns the defaults.
	Load(path string) (domain.LocaleTables, error)
}

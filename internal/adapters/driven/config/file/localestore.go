package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/core/ports/driven"
	"github.com/custodia-labs/receipta/internal/logger"
)

// Ensure LocaleStore implements the interface.
var _ driven.LocaleStore = (*LocaleStore)(nil)

// LocaleStore reads locale packs from disk. The format follows the file
// extension: .yaml/.yml or .toml.
type LocaleStore struct {
	defaults domain.LocaleTables
}

// NewLocaleStore creates a locale store whose packs extend defaults.
func NewLocaleStore(defaults domain.LocaleTables) *LocaleStore {
	return &LocaleStore{defaults: defaults}
}

// Load returns the tables at path merged over the defaults.
// An empty path returns the defaults.
func (s *LocaleStore) Load(path string) (domain.LocaleTables, error) {
	if path == "" {
		return s.defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.LocaleTables{}, fmt.Errorf("reading locale pack: %w", err)
	}

	var tables domain.LocaleTables
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tables)
	case ".toml":
		err = toml.Unmarshal(data, &tables)
	default:
		return domain.LocaleTables{}, fmt.Errorf("%w: locale pack %s", domain.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return domain.LocaleTables{}, fmt.Errorf("parsing locale pack %s: %w", path, err)
	}

	logger.Debug("Loaded locale pack %s: %d folds, %d units, %d stop words",
		path, len(tables.Folding), len(tables.Units), len(tables.StopWords))
	return s.defaults.Merge(tables), nil
}

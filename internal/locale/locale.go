// Package locale ships the built-in linguistic tables used to normalise
// receipt line item descriptions.
package locale

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

//go:embed tr.yaml
var turkish []byte

// Turkish returns the built-in Turkish tables.
func Turkish() domain.LocaleTables {
	tables, err := Parse(turkish)
	if err != nil {
		// The embedded file is part of the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("locale: embedded tr.yaml: %v", err))
	}
	return tables
}

// Default returns the tables used when no locale file is configured.
func Default() domain.LocaleTables {
	return Turkish()
}

// Parse decodes a YAML locale pack.
func Parse(data []byte) (domain.LocaleTables, error) {
	var tables domain.LocaleTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return domain.LocaleTables{}, fmt.Errorf("parsing locale tables: %w", err)
	}
	return tables, nil
}

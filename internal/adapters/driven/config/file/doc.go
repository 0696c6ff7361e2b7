// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage in ~/.receipta/config.toml
//   - LocaleStore: YAML or TOML locale packs for the description normaliser
package file

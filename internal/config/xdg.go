package config

import (
	"os"
	"path/filepath"
)

const appName = "keystrike"

// baseDir resolves an XDG base directory: the env var when set, otherwise
// fallback under the home directory, otherwise the working directory.
func baseDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func configDir() string { return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), appName) }

func dataDir() string { return filepath.Join(baseDir("XDG_DATA_HOME", ".local", "share"), appName) }

// DefaultConfigPath returns the TOML config path.
func DefaultConfigPath() string { return filepath.Join(configDir(), "config.toml") }

// DefaultCatalogPath returns the optional user content catalog, layered over
// the embedded one.
func DefaultCatalogPath() string { return filepath.Join(configDir(), "catalog.yaml") }

// DefaultWordListDir holds one <lang>.txt file per imported language.
func DefaultWordListDir() string { return filepath.Join(configDir(), "wordlists") }

// DefaultWordListPath returns the word list for lang.
func DefaultWordListPath(lang string) string {
	return filepath.Join(DefaultWordListDir(), lang+".txt")
}

// DefaultDBPath returns the SQLite encounter history.
func DefaultDBPath() string { return filepath.Join(dataDir(), appName+".db") }

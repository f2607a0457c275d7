// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default locations, expanded with ExpandPath.
const (
	DefaultLedgerPath  = "~/.local/share/tally/ledger.json"
	DefaultArchivePath = "~/.local/share/tally/archive.db"
)

// Viper keys.
const (
	KeyLedgerPath  = "ledger.path"
	KeyArchivePath = "archive.path"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// LedgerPath returns the configured ledger document path.
func LedgerPath() string {
	return pathOrDefault(KeyLedgerPath, DefaultLedgerPath)
}

// ArchivePath returns the configured snapshot archive path.
func ArchivePath() string {
	return pathOrDefault(KeyArchivePath, DefaultArchivePath)
}

func pathOrDefault(key, fallback string) string {
	p := viper.GetString(key)
	if p == "" {
		p = fallback
	}
	return ExpandPath(p)
}

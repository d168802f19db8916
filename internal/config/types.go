// Package config provides configuration management for the backforth CLI.
package config

// Default values.
const (
	DefaultHistoryName = ".backforth_history"
	EnvPrefix          = "BACKFORTH_"
)

// ConfigNames are the file names searched in the working directory when no
// config file is given.
var ConfigNames = []string{"backforth.yaml", "backforth.yml"}

// Config holds the resolved CLI configuration.
type Config struct {
	// DB is the SQLite database path. Empty means an in-memory store.
	DB          string `koanf:"db"`
	HistoryFile string `koanf:"history_file"`
	NoStdlib    bool   `koanf:"no_stdlib"`
	Strict      bool   `koanf:"strict"`
	Verbose     bool   `koanf:"verbose"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

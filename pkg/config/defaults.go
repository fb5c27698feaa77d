package config

import (
	"os"
	"path/filepath"
)

// DefaultSettingsFile is the environment settings file looked up in the
// working directory.
const DefaultSettingsFile = "httpvars.env.yaml"

// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log output format.
const DefaultLogFormat = "text"

// DefaultPatterns select .http and .rest files at any depth.
var DefaultPatterns = []string{"**/*.http", "**/*.rest"}

// DefaultHistoryDir returns the directory where recorded exchanges are kept,
// under the user cache directory. It falls back to a relative directory when
// no cache directory is available.
func DefaultHistoryDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".httpvars", "history")
	}
	return filepath.Join(dir, "httpvars", "history")
}

// NewDefault creates a new Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		SettingsFile: DefaultSettingsFile,
		HistoryDir:   DefaultHistoryDir(),
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Patterns:     append([]string(nil), DefaultPatterns...),
		Sources:      make(map[string]string),
	}

	// Mark all as default source
	cfg.Sources["settingsFile"] = SourceDefault
	cfg.Sources["historyDir"] = SourceDefault
	cfg.Sources["logLevel"] = SourceDefault
	cfg.Sources["logFormat"] = SourceDefault
	cfg.Sources["patterns"] = SourceDefault

	return cfg
}

package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvEnvironment = "HTTPVARS_ENV"
	EnvSettings    = "HTTPVARS_SETTINGS"
	EnvHistoryDir  = "HTTPVARS_HISTORY_DIR"
	EnvLogLevel    = "HTTPVARS_LOG_LEVEL"
	EnvLogFormat   = "HTTPVARS_LOG_FORMAT"
	EnvSeed        = "HTTPVARS_SEED"
	EnvPatterns    = "HTTPVARS_PATTERNS"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = v
		cfg.Sources["environment"] = SourceEnv
	}

	if v := os.Getenv(EnvSettings); v != "" {
		cfg.SettingsFile = v
		cfg.Sources["settingsFile"] = SourceEnv
	}

	if v := os.Getenv(EnvHistoryDir); v != "" {
		cfg.HistoryDir = v
		cfg.Sources["historyDir"] = SourceEnv
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	// HTTPVARS_SEED, ignored unless it is a valid unsigned integer
	if v := os.Getenv(EnvSeed); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = seed
			cfg.Sources["seed"] = SourceEnv
		}
	}

	// HTTPVARS_PATTERNS, comma separated
	if v := os.Getenv(EnvPatterns); v != "" {
		var patterns []string
		for p := range strings.SplitSeq(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) > 0 {
			cfg.Patterns = patterns
			cfg.Sources["patterns"] = SourceEnv
		}
	}
}

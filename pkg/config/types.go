// Package config provides configuration types and loading for the httpvars CLI.
package config

// Config represents the complete configuration for the httpvars CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.httpvarsrc.yaml in current directory)
// 4. Global config file (~/.config/httpvars/config.yaml)
// 5. Default values (lowest priority)
type Config struct {
	// Variable sources
	Environment  string `yaml:"environment,omitempty" json:"environment,omitempty"`
	SettingsFile string `yaml:"settingsFile,omitempty" json:"settingsFile,omitempty"`
	HistoryDir   string `yaml:"historyDir,omitempty" json:"historyDir,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`

	// Seed makes $guid, $randomInt and $faker values reproducible. Zero
	// means unseeded.
	Seed uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	// Patterns select request files for workspace commands.
	Patterns []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

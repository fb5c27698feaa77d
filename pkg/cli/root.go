package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/getmockd/httpvars/pkg/cli/internal/output"
	"github.com/getmockd/httpvars/pkg/config"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	configFile   string
	envName      string
	settingsFile string
	logLevel     string
	jsonOutput   bool

	// Effective configuration and logger, set before any subcommand runs
	cfg    *config.Config
	logger = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "httpvars",
	Short: "httpvars resolves {{variables}} in .http request files",
	Long: `httpvars resolves {{name}} placeholders in .http and .rest request files.

Values come from system variables ($guid, $timestamp, ...), earlier responses
of named requests, @name = value lines in the file, and environment settings.

Configuration can be provided via flags, environment variables, or a
configuration file. See 'httpvars help config'.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: loadConfig,
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(output.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: .httpvarsrc.yaml)")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "Active environment")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Environment settings file (default: "+config.DefaultSettingsFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadConfig merges config sources, with flags on top, and sets up logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadAll(configFile)
	if err != nil {
		return err
	}

	flagCfg := &config.Config{}
	flags := cmd.Flags()
	if flags.Changed("env") {
		flagCfg.Environment = envName
	}
	if flags.Changed("settings") {
		flagCfg.SettingsFile = settingsFile
	}
	if flags.Changed("log-level") {
		flagCfg.LogLevel = logLevel
	}
	config.MergeConfig(c, flagCfg, config.SourceFlag)

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = c
	logger = newLogger(c)
	logger.Debug("configuration loaded", "environment", c.Environment, "settings", c.SettingsFile, "sources", c.Sources)
	return nil
}

func newLogger(c *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: logging.ParseFormat(c.LogFormat),
		Output: output.Stderr,
	})
}

// Package cli provides the command-line interface for httpvars.
//
// Commands:
//   - resolve: Print a request with its variables resolved
//   - vars: List the variables defined for a request file
//   - envs: List environments in the settings file
//   - files: List request files in a directory tree
//   - record: Store a response so request variables can use it
//   - version: Show httpvars version
//   - help: Command help and reference topics (variables, environments, config)
//
// Persistent flags (--config, --env, --settings, --log-level, --json) are
// merged over the configuration files and HTTPVARS_* environment variables
// before any command runs.
package cli

// Package logging provides structured logging configuration for httpvars.
//
// This package wraps log/slog so the resolver, the providers and the CLI
// share one logger shape. Levels and formats are parsed leniently from
// configuration strings.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	resolver := variables.NewResolver(registry, variables.WithLogger(logger))
//
// # Integration
//
// Components accept a *slog.Logger through an option. If no logger is
// provided they use logging.Nop(). Log output is diagnostic only: it never
// changes what a placeholder resolves to.
package logging

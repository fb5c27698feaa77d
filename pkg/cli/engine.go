package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/getmockd/httpvars/pkg/config"
	"github.com/getmockd/httpvars/pkg/engine"
	"github.com/getmockd/httpvars/pkg/providers/environment"
	"github.com/getmockd/httpvars/pkg/providers/request"
	"github.com/getmockd/httpvars/pkg/providers/system"
)

// newEngine builds the resolution engine from the effective configuration.
func newEngine() (*engine.Engine, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if cfg.Environment != "" && cfg.Environment != environment.SharedEnvironment {
		if _, ok := settings.Environments[cfg.Environment]; !ok {
			return nil, fmt.Errorf("%w %q in %s", ErrUnknownEnvironment, cfg.Environment, cfg.SettingsFile)
		}
	}

	opts := []engine.Option{
		engine.WithSettings(settings),
		engine.WithEnvironment(cfg.Environment),
		engine.WithStore(request.NewFileStore(cfg.HistoryDir)),
		engine.WithLogger(logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSystemOptions(system.WithSeed(cfg.Seed)))
	}
	return engine.New(opts...), nil
}

// loadSettings reads the environment settings file. A missing file is only
// an error when it was configured explicitly.
func loadSettings() (*environment.Settings, error) {
	settings, err := environment.LoadSettings(cfg.SettingsFile)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, os.ErrNotExist) && cfg.Sources["settingsFile"] == config.SourceDefault {
		logger.Debug("no settings file", "path", cfg.SettingsFile)
		return &environment.Settings{Environments: map[string]map[string]string{}}, nil
	}
	return nil, err
}

package config

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Environment != "" {
		target.Environment = source.Environment
		target.Sources["environment"] = sourceType
	}
	if source.SettingsFile != "" {
		target.SettingsFile = source.SettingsFile
		target.Sources["settingsFile"] = sourceType
	}
	if source.HistoryDir != "" {
		target.HistoryDir = source.HistoryDir
		target.Sources["historyDir"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.Seed != 0 {
		target.Seed = source.Seed
		target.Sources["seed"] = sourceType
	}
	if len(source.Patterns) > 0 {
		target.Patterns = append([]string(nil), source.Patterns...)
		target.Sources["patterns"] = sourceType
	}
}

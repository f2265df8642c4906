package config

import "fmt"

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	ReloadInterval Duration
	Timeslots      []string
	Source         SourceConfig
	Page           PageConfig
	Sprites        int
	Metrics        MetricsConfig
	Logging        LoggingConfig
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from an optional config file (CONFIG_FILE), BOARD_*
// variables that mirror the file keys, and finally the plain environment
// variables, which win.
func Load() (Config, error) {
	fv, err := loadFileValues(envOrDefault(envConfigFile, ""))
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Config{
		Port:           envOrDefault(envPort, fv.String(keyPort, defaultPort)),
		ReloadInterval: reloadIntervalEnvOrDefault(envReloadInterval, fv.Duration(keyReloadInterval, defaultReloadInterval)),
		Timeslots:      listEnvOrDefault(envTimeslots, fv.Strings(keyTimeslots, DefaultTimeslots())),
		Source:         loadSource(fv),
		Page:           loadPage(fv),
		Sprites:        intEnvOrDefault(envSpriteCount, fv.Int(keySpriteCount, defaultSpriteCount)),
		Metrics:        loadMetrics(fv),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, fv.String(keyLogLevel, "info")),
			Format: envOrDefault(envLogFormat, fv.String(keyLogFormat, "text")),
		},
	}, nil
}

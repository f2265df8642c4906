package config

import "time"

const (
	envConfigFile     = "CONFIG_FILE"
	envPort           = "PORT"
	envReloadInterval = "RELOAD_INTERVAL"
	envTimeslots      = "TIMESLOTS"
	envSource         = "SOURCE"
	envAssetBaseURL   = "ASSET_BASE_URL"
	envDataDir        = "DATA_DIR"
	envScheduleFile   = "SCHEDULE_FILE"
	envRosterFile     = "ROSTER_FILE"
	envFetchAttempts  = "FETCH_ATTEMPTS"
	envFetchTimeout   = "FETCH_TIMEOUT"
	envSourceWatch    = "SOURCE_WATCH"
	envSpriteCount    = "SPRITE_COUNT"
	envPageTitle      = "PAGE_TITLE"
	envPageSubtitle   = "PAGE_SUBTITLE"
	envPageFooter     = "PAGE_FOOTER"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"

	// Prefix for variables that mirror config file keys (BOARD_SOURCE__KIND -> source.kind).
	fileEnvPrefix = "BOARD_"

	defaultPort = "4000"
	// Zero keeps the original one-shot load; reloads are opt-in.
	defaultReloadInterval = Duration(0)
	defaultSource         = "fixture"
	defaultDataDir        = "data"
	defaultScheduleFile   = "MGT 575 Final Project Schedule(Final Presentation Schedule).csv"
	defaultRosterFile     = "MGT 575 Final Project Schedule(Final Team Rosters).csv"
	defaultFetchAttempts  = 1
	defaultFetchTimeout   = 10 * Duration(time.Second)
	defaultSpriteCount    = 100
	defaultMetricsPort    = "9090"
	defaultServiceName    = "schedule-board"

	defaultPageTitle    = "MGT 575 Final Presentations"
	defaultPageSubtitle = "Generative AI and Social Media | Yale SOM"
	defaultPageFooter   = "Professor Tauhid Zaman | School of Management"
)

const (
	keyPort           = "port"
	keyReloadInterval = "reload_interval"
	keyTimeslots      = "timeslots"
	keySpriteCount    = "sprites"
	keySourceKind     = "source.kind"
	keySourceBaseURL  = "source.base_url"
	keySourceDir      = "source.dir"
	keyScheduleFile   = "source.schedule_file"
	keyRosterFile     = "source.roster_file"
	keyFetchAttempts  = "source.attempts"
	keyFetchTimeout   = "source.timeout"
	keySourceWatch    = "source.watch"
	keyPageTitle      = "page.title"
	keyPageSubtitle   = "page.subtitle"
	keyPageFooter     = "page.footer"
	keyMetricsEnabled = "metrics.enabled"
	keyMetricsPort    = "metrics.port"
	keyOtelEndpoint   = "metrics.otlp_endpoint"
	keyOtelService    = "metrics.service_name"
	keyOtelInsecure   = "metrics.otlp_insecure"
	keyLogLevel       = "logging.level"
	keyLogFormat      = "logging.format"
)

var defaultTimeslots = []string{
	"April 22 (Tue) 2:40-4:00pm",
	"April 22 (Tue) 4:10-5:30pm",
	"April 24 (Thu) 2:40-4:00pm",
	"April 24 (Thu) 4:10-5:30pm",
	"April 29 (Tue) 2:40-4:00pm",
	"April 29 (Tue) 4:10-5:30pm",
	"May 1 (Thu) 2:40-4:00pm",
	"May 1 (Thu) 4:10-5:30pm",
}

// DefaultTimeslots returns a copy of the built-in ordered timeslot labels.
func DefaultTimeslots() []string {
	return append([]string(nil), defaultTimeslots...)
}

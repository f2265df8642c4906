package config

// SourceConfig controls where the schedule and roster CSV documents come from.
type SourceConfig struct {
	Kind         string // fixture, http, or file
	BaseURL      string // static asset base URL for the http source
	Dir          string // directory for the file source
	ScheduleFile string
	RosterFile   string
	Attempts     int
	Timeout      Duration
	Watch        bool // reload when the file source documents change on disk
}

func loadSource(fv fileValues) SourceConfig {
	return SourceConfig{
		Kind:         envOrDefault(envSource, fv.String(keySourceKind, defaultSource)),
		BaseURL:      envOrDefault(envAssetBaseURL, fv.String(keySourceBaseURL, "")),
		Dir:          envOrDefault(envDataDir, fv.String(keySourceDir, defaultDataDir)),
		ScheduleFile: envOrDefault(envScheduleFile, fv.String(keyScheduleFile, defaultScheduleFile)),
		RosterFile:   envOrDefault(envRosterFile, fv.String(keyRosterFile, defaultRosterFile)),
		Attempts:     intEnvOrDefault(envFetchAttempts, fv.Int(keyFetchAttempts, defaultFetchAttempts)),
		Timeout:      durationEnvOrDefault(envFetchTimeout, fv.Duration(keyFetchTimeout, defaultFetchTimeout)),
		Watch:        boolEnvOrDefault(envSourceWatch, fv.Bool(keySourceWatch, false)),
	}
}

package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(fv fileValues) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, fv.Bool(keyMetricsEnabled, true)),
		Port:         envOrDefault(envMetricsPort, fv.String(keyMetricsPort, defaultMetricsPort)),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, fv.String(keyOtelEndpoint, "")),
		ServiceName:  envOrDefault(envOtelService, fv.String(keyOtelService, defaultServiceName)),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, fv.Bool(keyOtelInsecure, true)),
	}
}

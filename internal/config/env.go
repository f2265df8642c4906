package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Duration = time.Duration

// lookupEnv returns the trimmed value of key and whether it was set to anything.
func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

// parsedEnvOrDefault parses key with parse and falls back to defaultValue when
// the variable is unset or parse rejects it.
func parsedEnvOrDefault[T any](key string, defaultValue T, parse func(string) (T, bool)) T {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return defaultValue
}

func envOrDefault(key, defaultValue string) string {
	if raw, ok := lookupEnv(key); ok {
		return raw
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

// reloadIntervalEnvOrDefault accepts "0" or "0s" to switch reloads off.
func reloadIntervalEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (time.Duration, bool) {
		if raw == "0" {
			return 0, true
		}
		d, err := time.ParseDuration(raw)
		return d, err == nil && d >= 0
	})
}

func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes":
			return true, true
		case "0", "false", "no":
			return false, true
		}
		return false, false
	})
}

// listEnvOrDefault splits a "|"-separated value. Timeslot labels contain
// commas and spaces, so neither can be the separator.
func listEnvOrDefault(key string, defaultValue []string) []string {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) ([]string, bool) {
		var out []string
		for _, p := range strings.Split(raw, "|") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, len(out) > 0
	})
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// fileValues exposes config-file (and BOARD_* mirror) values with fallbacks.
type fileValues struct {
	k *koanf.Koanf
}

func loadFileValues(path string) (fileValues, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return fileValues{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return fileValues{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(fileEnvPrefix, ".", fileEnvKey), nil); err != nil {
		return fileValues{}, fmt.Errorf("load %s* environment: %w", fileEnvPrefix, err)
	}
	return fileValues{k: k}, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

func fileEnvKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(fileEnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (f fileValues) has(key string) bool {
	return f.k != nil && f.k.Exists(key)
}

func (f fileValues) String(key, fallback string) string {
	if !f.has(key) {
		return fallback
	}
	if v := strings.TrimSpace(f.k.String(key)); v != "" {
		return v
	}
	return fallback
}

func (f fileValues) Int(key string, fallback int) int {
	if !f.has(key) {
		return fallback
	}
	if v := f.k.Int(key); v > 0 {
		return v
	}
	return fallback
}

func (f fileValues) Bool(key string, fallback bool) bool {
	if !f.has(key) {
		return fallback
	}
	return f.k.Bool(key)
}

func (f fileValues) Duration(key string, fallback time.Duration) time.Duration {
	if !f.has(key) {
		return fallback
	}
	if v := f.k.Duration(key); v >= 0 {
		return v
	}
	return fallback
}

func (f fileValues) Strings(key string, fallback []string) []string {
	if !f.has(key) {
		return fallback
	}
	out := make([]string, 0)
	for _, v := range f.k.Strings(key) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

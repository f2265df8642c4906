package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/schedule-board-service/internal/config"
	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/metrics"
	"github.com/preston-bernstein/schedule-board-service/internal/providers"
	"github.com/preston-bernstein/schedule-board-service/internal/providers/filesource"
	"github.com/preston-bernstein/schedule-board-service/internal/providers/fixture"
	"github.com/preston-bernstein/schedule-board-service/internal/providers/httpsource"
)

const (
	sourceFixture = "fixture"
	sourceHTTP    = "http"
	sourceFile    = "file"
)

// sourceFactory assembles the document source with the shared retry wrapper.
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, metrics *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: metrics}
}

func (f sourceFactory) build(cfg config.SourceConfig) (providers.DocumentSource, error) {
	base, err := selectSource(cfg, f.logger)
	if err != nil {
		return nil, err
	}
	return f.wrap(cfg, base), nil
}

func (f sourceFactory) wrap(cfg config.SourceConfig, base providers.DocumentSource) providers.DocumentSource {
	return providers.NewRetryingSource(base, f.logger, f.metrics, normalizeSourceName(cfg.Kind), cfg.Attempts, 0)
}

func selectSource(cfg config.SourceConfig, logger *slog.Logger) (providers.DocumentSource, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case sourceFixture, "":
		return fixture.New(cfg.ScheduleFile, cfg.RosterFile), nil
	case sourceHTTP:
		client, err := httpsource.NewClient(httpsource.Config{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("http source: %w", err)
		}
		return client, nil
	case sourceFile:
		return filesource.New(cfg.Dir), nil
	default:
		logging.Warn(logger, "unknown source, falling back to fixture", slog.String(logging.FieldSource, cfg.Kind))
		return fixture.New(cfg.ScheduleFile, cfg.RosterFile), nil
	}
}

// normalizeSourceName keeps source naming consistent across metrics and logs.
// Unknown kinds report as the fixture they fall back to.
func normalizeSourceName(raw string) string {
	switch name := strings.ToLower(strings.TrimSpace(raw)); name {
	case sourceHTTP, sourceFile:
		return name
	default:
		return sourceFixture
	}
}

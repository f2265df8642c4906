package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-board-service/internal/app/board"
	"github.com/preston-bernstein/schedule-board-service/internal/config"
	httpserver "github.com/preston-bernstein/schedule-board-service/internal/http"
	"github.com/preston-bernstein/schedule-board-service/internal/http/handlers"
	"github.com/preston-bernstein/schedule-board-service/internal/loader"
	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/metrics"
	"github.com/preston-bernstein/schedule-board-service/internal/poller"
	"github.com/preston-bernstein/schedule-board-service/internal/providers"
	"github.com/preston-bernstein/schedule-board-service/internal/providers/filesource"
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/store"
	"github.com/preston-bernstein/schedule-board-service/internal/web"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *board.Service
	httpServer    httpServer
	metricsServer httpServer
	reloader      Reloader
	watcher       documentWatcher
	metricsStop   func(context.Context) error
}

// documentWatcher triggers reloads when local documents change.
type documentWatcher interface {
	Start(ctx context.Context)
	Stop() error
}

// New constructs a server with the configured document source and reload loop.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithSource(cfg, logger, nil)
}

// newServerWithSource builds the server around source; a nil source is
// resolved from cfg.Source.
func newServerWithSource(cfg config.Config, logger *slog.Logger, source providers.DocumentSource) (*Server, error) {
	return newServerWithMetrics(cfg, logger, source, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, source providers.DocumentSource, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	fail := func(err error) (*Server, error) {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}

	factory := newSourceFactory(logger, recorder)
	if source == nil {
		built, err := factory.build(cfg.Source)
		if err != nil {
			return fail(fmt.Errorf("server: %w", err))
		}
		source = built
	} else {
		source = factory.wrap(cfg.Source, source)
	}

	svc := board.NewService(store.NewMemoryStore())
	ldr := buildLoader(cfg, source, logger, recorder)
	rl := poller.New(ldr, svc, logger, cfg.ReloadInterval)
	httpSrv, err := buildHTTPServer(cfg, svc, logger, recorder, rl)
	if err != nil {
		return fail(err)
	}
	watcher, err := buildWatcher(cfg.Source, logger, rl)
	if err != nil {
		return fail(err)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		reloader:      rl,
		watcher:       watcher,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *board.Service, httpSrv httpServer, rl Reloader) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		reloader:   rl,
	}
}

func buildLoader(cfg config.Config, source providers.DocumentSource, logger *slog.Logger, recorder *metrics.Recorder) *loader.Loader {
	return loader.New(loader.Config{
		Source:           source,
		ScheduleDocument: cfg.Source.ScheduleFile,
		RosterDocument:   cfg.Source.RosterFile,
		Labels:           schedule.NewLabels(cfg.Timeslots),
		Logger:           logger,
		Recorder:         recorder,
	})
}

// buildWatcher returns nil unless the file source has watching enabled.
func buildWatcher(cfg config.SourceConfig, logger *slog.Logger, rl Reloader) (documentWatcher, error) {
	if !cfg.Watch || normalizeSourceName(cfg.Kind) != sourceFile {
		return nil, nil
	}
	w, err := filesource.NewWatcher(cfg.Dir, []string{cfg.ScheduleFile, cfg.RosterFile}, 0, logger, func(ctx context.Context) {
		logging.Info(logger, "documents changed, reloading")
		_ = rl.Reload(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return w, nil
}

func buildHTTPServer(cfg config.Config, svc *board.Service, logger *slog.Logger, recorder *metrics.Recorder, rl Reloader) (httpServer, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	var statusFn func() poller.Status
	if rl != nil {
		statusFn = rl.Status
	}

	handler := handlers.NewHandler(svc, renderer, logger, statusFn, handlers.Options{
		Page: handlers.PageOptions{
			Title:    cfg.Page.Title,
			Subtitle: cfg.Page.Subtitle,
			Footer:   cfg.Page.Footer,
		},
		SpriteCount: cfg.Sprites,
	})
	router := httpserver.NewRouter(handler, logger, recorder)

	return newNetHTTPServer(cfg.Port, router), nil
}

// Run starts the reloader and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.reloader.Start(ctx)
	if s.watcher != nil {
		s.watcher.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// LoadOnce performs a single synchronous load and returns the resulting board.
func (s *Server) LoadOnce(ctx context.Context) (schedule.BoardView, error) {
	if err := s.reloader.Reload(ctx); err != nil {
		return schedule.BoardView{}, err
	}
	return s.service.View()
}

// Close releases telemetry resources for servers that never ran.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Stop())
	}
	if s.metricsStop != nil {
		errs = append(errs, s.metricsStop(ctx))
	}
	return errors.Join(errs...)
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			logging.Warn(s.logger, "file watcher stop failed", logging.Err(err))
		}
	}

	if err := s.reloader.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop reloader", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.Err(err))
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.Err(err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.Err(err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.Err(err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

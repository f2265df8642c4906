package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
)

const readyFailureThreshold = 3

// BoardLoader performs one full load of both documents.
type BoardLoader interface {
	Load(ctx context.Context) (schedule.Board, error)
}

// BoardSink receives load results.
type BoardSink interface {
	ReplaceBoard(b schedule.Board)
	RecordFailure(err error)
}

// Reloader performs the initial board load and, when an interval is set,
// periodic full reloads. A failed reload leaves the last good board in place.
type Reloader struct {
	loader   BoardLoader
	sink     BoardSink
	logger   *slog.Logger
	interval time.Duration

	cancel   context.CancelFunc
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// loadMu serialises loads so a slow, older load cannot replace a newer board.
	loadMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the load loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether a load has succeeded and loads are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureThreshold
}

// New constructs a Reloader. interval <= 0 means load once and never reload.
func New(loader BoardLoader, sink BoardSink, logger *slog.Logger, interval time.Duration) *Reloader {
	if interval < 0 {
		interval = 0
	}
	return &Reloader{
		loader:   loader,
		sink:     sink,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start loads the board in the background and keeps reloading until ctx is
// cancelled or Stop is called.
func (r *Reloader) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.startMu.Unlock()

	go r.run(runCtx)
}

func (r *Reloader) run(ctx context.Context) {
	defer close(r.finished)
	defer r.cancel()

	r.logInfo("reloader started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
	_ = r.loadOnce(ctx)

	if r.interval == 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logInfo("reloader stopped")
			return
		case <-r.done:
			r.logInfo("reloader stopped")
			return
		case <-ticker.C:
			_ = r.loadOnce(ctx)
		}
	}
}

// Stop halts the reload loop, cancels an in-flight load, and waits for the
// loop to exit or ctx to expire.
func (r *Reloader) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.done)
	})

	r.startMu.Lock()
	started, cancel := r.started, r.cancel
	r.startMu.Unlock()
	if !started {
		return nil
	}
	cancel()

	select {
	case <-r.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload performs one synchronous full load.
func (r *Reloader) Reload(ctx context.Context) error {
	return r.loadOnce(ctx)
}

func (r *Reloader) loadOnce(ctx context.Context) error {
	if r.loader == nil {
		return errors.New("reloader: no loader configured")
	}
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	start := time.Now()
	r.recordAttempt(start)

	board, err := r.loader.Load(ctx)
	if err != nil {
		r.recordFailure(err, start)
		if r.sink != nil {
			r.sink.RecordFailure(err)
		}
		r.logWarn("board load failed",
			logging.Err(err),
			slog.Int("consecutive_failures", r.Status().ConsecutiveFailures),
		)
		return err
	}

	if r.sink != nil {
		r.sink.ReplaceBoard(board)
	}
	r.recordSuccess(time.Now())
	return nil
}

func (r *Reloader) logInfo(msg string, args ...any) {
	logging.Info(r.logger, msg, args...)
}

func (r *Reloader) logWarn(msg string, args ...any) {
	logging.Warn(r.logger, msg, args...)
}

func (r *Reloader) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Reloader) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Reloader) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the reloader's recent health.
func (r *Reloader) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

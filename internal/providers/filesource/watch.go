package filesource

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/preston-bernstein/schedule-board-service/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher calls onChange after one of the named documents in dir is written,
// created, renamed or removed. Bursts of events within the debounce window
// collapse into a single call.
type Watcher struct {
	fs       *fsnotify.Watcher
	names    map[string]struct{}
	debounce time.Duration
	logger   *slog.Logger
	onChange func(ctx context.Context)

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	finished  chan struct{}
	started   bool
	mu        sync.Mutex
}

// NewWatcher watches dir itself rather than the files, so editors that save by
// rename are still seen.
func NewWatcher(dir string, names []string, debounce time.Duration, logger *slog.Logger, onChange func(ctx context.Context)) (*Watcher, error) {
	if dir == "" {
		dir = "."
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("file: watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("file: watch %s: %w", dir, err)
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[filepath.Base(n)] = struct{}{}
	}
	return &Watcher{
		fs:       fw,
		names:    set,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}, nil
}

// Start runs the event loop until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		w.mu.Lock()
		w.started = true
		w.mu.Unlock()
		go w.run(ctx)
	})
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.finished
		}
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.finished)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			logging.Debug(w.logger, "document changed on disk",
				slog.String(logging.FieldDocument, filepath.Base(ev.Name)),
				slog.String("op", ev.Op.String()),
			)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn(w.logger, "file watcher error", logging.Err(err))
		case <-fire:
			fire = nil
			if w.onChange != nil {
				w.onChange(ctx)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if _, ok := w.names[filepath.Base(ev.Name)]; !ok {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

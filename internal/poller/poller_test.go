package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/teststubs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleBoard(team string) schedule.Board {
	labels := schedule.NewLabels([]string{"Slot A"})
	sched := schedule.NewScheduleTable(labels)
	sched["Slot A"] = []string{team}
	return schedule.NewBoard(labels, sched, nil, time.Now())
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial load")
	}
}

func TestReloaderInitialLoadStoresBoard(t *testing.T) {
	loader := &teststubs.StubLoader{Notify: make(chan struct{})}
	loader.Set(sampleBoard("Team Alpha"), nil)
	sink := &teststubs.StubSink{}

	r := New(loader, sink, nil, 0)
	r.Start(context.Background())
	waitFor(t, loader.Notify)

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if got := len(sink.Boards()); got != 1 {
		t.Fatalf("expected one stored board, got %d", got)
	}
	if !r.Status().IsReady() {
		t.Fatalf("expected ready after successful load")
	}
}

func TestReloaderWithoutIntervalLoadsOnce(t *testing.T) {
	loader := &teststubs.StubLoader{Notify: make(chan struct{})}
	r := New(loader, &teststubs.StubSink{}, nil, 0)

	r.Start(context.Background())
	waitFor(t, loader.Notify)
	<-r.finished

	time.Sleep(20 * time.Millisecond)
	if loader.Calls.Load() != 1 {
		t.Fatalf("expected exactly one load, got %d", loader.Calls.Load())
	}
	_ = r.Stop(context.Background())
}

func TestReloaderReloadsOnInterval(t *testing.T) {
	loader := &teststubs.StubLoader{Notify: make(chan struct{})}
	r := New(loader, &teststubs.StubSink{}, nil, 5*time.Millisecond)

	r.Start(context.Background())
	waitFor(t, loader.Notify)

	deadline := time.Now().Add(time.Second)
	for loader.Calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if loader.Calls.Load() < 3 {
		t.Fatalf("expected periodic reloads, got %d", loader.Calls.Load())
	}

	callsAfterStop := loader.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if loader.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no loads after stop; before=%d after=%d", callsAfterStop, loader.Calls.Load())
	}
}

func TestReloaderStopsOnContextCancel(t *testing.T) {
	loader := &teststubs.StubLoader{Notify: make(chan struct{})}
	r := New(loader, &teststubs.StubSink{}, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	r.Start(ctx)
	waitFor(t, loader.Notify)
	cancel()

	select {
	case <-r.finished:
	case <-time.After(time.Second):
		t.Fatal("expected loop to exit on context cancel")
	}
}

func TestReloaderFailedReloadKeepsBoard(t *testing.T) {
	loader := &teststubs.StubLoader{}
	sink := &teststubs.StubSink{}
	r := New(loader, sink, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)

	loader.Set(sampleBoard("Team Alpha"), nil)
	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	loader.Set(schedule.Board{}, errors.New("failed to load roster document: boom"))
	if err := r.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error")
	}

	if len(sink.Boards()) != 1 {
		t.Fatalf("failed reload must not store a board")
	}
	if len(sink.Failures()) != 1 {
		t.Fatalf("expected failure to be reported")
	}
	status := r.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected still ready after a single failed reload")
	}
}

func TestReloaderStatusTracksFailuresAndSuccess(t *testing.T) {
	loader := &teststubs.StubLoader{}
	loader.Set(schedule.Board{}, errors.New("boom"))
	r := New(loader, nil, nil, 0)

	_ = r.Reload(context.Background())
	status := r.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.LastSuccess.IsZero() || status.IsReady() {
		t.Fatalf("expected not ready before any success")
	}

	loader.Set(sampleBoard("Team Alpha"), nil)
	_ = r.Reload(context.Background())
	status = r.Status()
	if status.ConsecutiveFailures != 0 || status.LastSuccess.IsZero() || !status.IsReady() {
		t.Fatalf("expected ready after success, got %+v", status)
	}
}

func TestStatusNotReadyAfterRepeatedFailures(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: readyFailureThreshold}
	if s.IsReady() {
		t.Fatalf("expected not ready after %d failures", readyFailureThreshold)
	}
}

func TestReloaderStartIsIdempotent(t *testing.T) {
	loader := &teststubs.StubLoader{}
	r := New(loader, &teststubs.StubSink{}, nil, time.Hour)

	r.Start(context.Background())
	r.Start(context.Background())

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if loader.Calls.Load() > 1 {
		t.Fatalf("expected a single loop, got %d loads", loader.Calls.Load())
	}
}

func TestReloaderStopIsIdempotent(t *testing.T) {
	r := New(&teststubs.StubLoader{}, nil, nil, time.Hour)
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestReloaderNegativeIntervalMeansOneShot(t *testing.T) {
	r := New(&teststubs.StubLoader{}, nil, nil, -time.Second)
	if r.interval != 0 {
		t.Fatalf("expected interval clamped to 0, got %s", r.interval)
	}
}

func TestReloaderWithoutLoader(t *testing.T) {
	r := New(nil, nil, nil, 0)
	if err := r.Reload(context.Background()); err == nil {
		t.Fatalf("expected error without loader")
	}
}

func BenchmarkReloaderLoadOnce(b *testing.B) {
	loader := &teststubs.StubLoader{}
	loader.Set(sampleBoard("Team Alpha"), nil)
	r := New(loader, &teststubs.StubSink{}, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = r.loadOnce(ctx)
	}
}

type orderedLoader struct {
	mu       sync.Mutex
	calls    int
	inFlight int
	maxSeen  int
	entered  chan struct{}
	release  chan struct{}
}

func (l *orderedLoader) Load(ctx context.Context) (schedule.Board, error) {
	l.mu.Lock()
	l.calls++
	call := l.calls
	l.inFlight++
	if l.inFlight > l.maxSeen {
		l.maxSeen = l.inFlight
	}
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.inFlight--
		l.mu.Unlock()
	}()

	if call == 1 {
		close(l.entered)
		<-l.release
		return sampleBoard("older"), nil
	}
	return sampleBoard("newer"), nil
}

func TestReloadsDoNotOverlap(t *testing.T) {
	loader := &orderedLoader{entered: make(chan struct{}), release: make(chan struct{})}
	sink := &teststubs.StubSink{}
	r := New(loader, sink, nil, 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = r.Reload(context.Background())
	}()
	waitFor(t, loader.entered)
	go func() {
		defer wg.Done()
		_ = r.Reload(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	close(loader.release)
	wg.Wait()

	if loader.maxSeen != 1 {
		t.Fatalf("expected loads to run one at a time, saw %d concurrent", loader.maxSeen)
	}
	boards := sink.Boards()
	if len(boards) != 2 {
		t.Fatalf("expected two stored boards, got %d", len(boards))
	}
	if got := boards[len(boards)-1].Teams("Slot A"); len(got) != 1 || got[0] != "newer" {
		t.Fatalf("expected the later reload to win, got %v", got)
	}
}

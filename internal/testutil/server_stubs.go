package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/preston-bernstein/schedule-board-service/internal/poller"
)

// StubReloader implements the server's Reloader for tests. Counters are
// guarded so Run's goroutines and the test can both touch them.
type StubReloader struct {
	mu          sync.Mutex
	startCalls  int
	stopCalls   int
	reloadCalls int
	Err         error
	ReloadErr   error
	StatusVal   poller.Status
	// OnReload runs inside Reload, e.g. to push a board into a sink.
	OnReload func(ctx context.Context) error
}

func (p *StubReloader) Start(ctx context.Context) {
	_ = ctx
	p.mu.Lock()
	p.startCalls++
	p.mu.Unlock()
}

func (p *StubReloader) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	p.stopCalls++
	p.mu.Unlock()
	return p.Err
}

func (p *StubReloader) Reload(ctx context.Context) error {
	p.mu.Lock()
	p.reloadCalls++
	p.mu.Unlock()
	if p.OnReload != nil {
		return p.OnReload(ctx)
	}
	return p.ReloadErr
}

func (p *StubReloader) Status() poller.Status {
	return p.StatusVal
}

// Calls returns the Start, Stop and Reload counts.
func (p *StubReloader) Calls() (start, stop, reload int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls, p.stopCalls, p.reloadCalls
}

// StubHTTPServer implements httpServer for tests.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// BlockingHTTPServer allows simulating a shutdown that waits on an unblock channel.
type BlockingHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ShutdownCalls int
	Unblock       chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error {
	return nil
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

func (b *BlockingHTTPServer) Addr() string {
	return b.AddrVal
}

func (b *BlockingHTTPServer) Handler() http.Handler {
	return b.HandlerVal
}

// ErrHTTPServer returns an error on ListenAndServe; Shutdown increments a counter.
type ErrHTTPServer struct {
	ShutdownCalls int
}

func (e *ErrHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *ErrHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.ShutdownCalls++
	return nil
}

func (e *ErrHTTPServer) Addr() string {
	return ":0"
}

func (e *ErrHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

// CloseableHTTPServer returns ErrServerClosed from ListenAndServe.
type CloseableHTTPServer struct {
	ShutdownCalls int
}

func (c *CloseableHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (c *CloseableHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	c.ShutdownCalls++
	return nil
}

func (c *CloseableHTTPServer) Addr() string {
	return ":0"
}

func (c *CloseableHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

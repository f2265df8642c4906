package teststubs

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
)

// StubSource is a test double for providers.DocumentSource.
type StubSource struct {
	Docs  map[string]string
	Errs  map[string]error
	Calls atomic.Int32
}

// FetchDocument returns the configured document or error for name while tracking calls.
func (s *StubSource) FetchDocument(ctx context.Context, name string) (string, error) {
	s.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := s.Errs[name]; ok {
		return "", err
	}
	doc, ok := s.Docs[name]
	if !ok {
		return "", fmt.Errorf("stub: %s: %w", name, fs.ErrNotExist)
	}
	return doc, nil
}

// StubLoader is a test double for poller.BoardLoader.
type StubLoader struct {
	mu     sync.Mutex
	board  schedule.Board
	err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Set swaps the result returned by subsequent loads.
func (l *StubLoader) Set(board schedule.Board, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.board = board
	l.err = err
}

// Load returns the configured board and error while tracking calls.
// Notify, when set, is closed on the first call.
func (l *StubLoader) Load(ctx context.Context) (schedule.Board, error) {
	_ = ctx
	l.mu.Lock()
	board, err := l.board, l.err
	if l.Notify != nil {
		select {
		case <-l.Notify:
		default:
			close(l.Notify)
		}
	}
	l.mu.Unlock()
	l.Calls.Add(1)
	return board, err
}

// StubSink is a test double for poller.BoardSink.
type StubSink struct {
	mu       sync.Mutex
	boards   []schedule.Board
	failures []error
}

// ReplaceBoard records the stored board.
func (s *StubSink) ReplaceBoard(b schedule.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards = append(s.boards, b)
}

// RecordFailure records the reported error.
func (s *StubSink) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, err)
}

// Boards returns every board stored so far.
func (s *StubSink) Boards() []schedule.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]schedule.Board(nil), s.boards...)
}

// Failures returns every error reported so far.
func (s *StubSink) Failures() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.failures...)
}

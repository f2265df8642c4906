package store

import (
	"sync"

	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
)

// State describes what the store can currently serve.
type State int

const (
	// StateLoading means no load has completed yet.
	StateLoading State = iota
	// StateReady means a complete board is available.
	StateReady
	// StateFailed means the first load failed and no board exists.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// MemoryStore keeps the current board, or the error that prevented one, in memory.
// A recorded failure never discards a board that was already loaded.
type MemoryStore struct {
	mu      sync.RWMutex
	board   schedule.Board
	loaded  bool
	lastErr error
}

// NewMemoryStore constructs an empty MemoryStore in the loading state.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Board returns the current board and whether one has been loaded.
func (s *MemoryStore) Board() (schedule.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board, s.loaded
}

// SetBoard swaps in a freshly loaded board as a whole and clears any error.
func (s *MemoryStore) SetBoard(board schedule.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
	s.loaded = true
	s.lastErr = nil
}

// SetFailure records a load error.
func (s *MemoryStore) SetFailure(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// LastError returns the most recent load error, if any.
func (s *MemoryStore) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// State reports what the store can serve right now.
func (s *MemoryStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.loaded:
		return StateReady
	case s.lastErr != nil:
		return StateFailed
	default:
		return StateLoading
	}
}

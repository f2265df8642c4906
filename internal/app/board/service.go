package board

import (
	"errors"

	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/store"
)

var (
	// ErrNotLoaded is returned by lookups before any board exists.
	ErrNotLoaded = errors.New("schedule data is not loaded yet")
	// ErrTimeslotNotFound is returned for an index outside the configured labels.
	ErrTimeslotNotFound = errors.New("timeslot not found")
)

// Store defines the contract for holding the current board.
type Store interface {
	Board() (schedule.Board, bool)
	SetBoard(board schedule.Board)
	SetFailure(err error)
	LastError() error
	State() store.State
}

// Service exposes read-only lookups over the current board.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// State reports whether the board is loading, ready, or failed.
func (s *Service) State() store.State {
	return s.store.State()
}

// LastError returns the most recent load error.
func (s *Service) LastError() error {
	return s.store.LastError()
}

// View returns the resolved board. Before a successful load it returns the
// load error, or ErrNotLoaded while still loading.
func (s *Service) View() (schedule.BoardView, error) {
	b, err := s.current()
	if err != nil {
		return schedule.BoardView{}, err
	}
	return b.View(), nil
}

// Timeslot returns one slot by its 0-based position in the configured labels.
func (s *Service) Timeslot(index int) (schedule.TimeslotView, error) {
	b, err := s.current()
	if err != nil {
		return schedule.TimeslotView{}, err
	}
	labels := b.Labels()
	if index < 0 || index >= len(labels) {
		return schedule.TimeslotView{}, ErrTimeslotNotFound
	}
	return b.Timeslot(index, labels[index]), nil
}

// Members returns a team's members; an unknown team yields an empty list.
func (s *Service) Members(team string) ([]string, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return b.Members(team), nil
}

// ReplaceBoard swaps in a freshly loaded board.
func (s *Service) ReplaceBoard(b schedule.Board) {
	s.store.SetBoard(b)
}

// RecordFailure notes a failed load without discarding an existing board.
func (s *Service) RecordFailure(err error) {
	s.store.SetFailure(err)
}

func (s *Service) current() (schedule.Board, error) {
	b, ok := s.store.Board()
	if ok {
		return b, nil
	}
	if err := s.store.LastError(); err != nil {
		return schedule.Board{}, err
	}
	return schedule.Board{}, ErrNotLoaded
}

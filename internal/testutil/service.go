package testutil

import (
	"github.com/preston-bernstein/schedule-board-service/internal/app/board"
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/store"
)

// NewServiceWithBoard builds a board service backed by an in-memory store
// preloaded with b.
func NewServiceWithBoard(b schedule.Board) *board.Service {
	ms := store.NewMemoryStore()
	ms.SetBoard(b)
	return board.NewService(ms)
}

// NewLoadingService builds a board service whose first load has not finished.
func NewLoadingService() *board.Service {
	return board.NewService(store.NewMemoryStore())
}

// NewFailedService builds a board service whose first load failed with err.
func NewFailedService(err error) *board.Service {
	ms := store.NewMemoryStore()
	ms.SetFailure(err)
	return board.NewService(ms)
}

package server

import (
	"context"

	"github.com/preston-bernstein/schedule-board-service/internal/poller"
)

// Reloader defines the minimal reload loop behaviour needed by the server.
type Reloader interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Reload(ctx context.Context) error
	Status() poller.Status
}

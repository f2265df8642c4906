package testutil

import (
	"context"

	"github.com/preston-bernstein/schedule-board-service/internal/metrics"
)

// NewRecorderWithShutdown returns an in-memory recorder and a no-op shutdown,
// matching the shape returned by metrics.Setup.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}

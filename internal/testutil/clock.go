package testutil

import "time"

// BoardTime is the fixed LoadedAt used by sample boards.
var BoardTime = time.Date(2025, 4, 22, 14, 40, 0, 0, time.UTC)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

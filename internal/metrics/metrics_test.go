package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksFetchAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordFetchAttempt("http", "roster.csv", 10*time.Millisecond, nil)
	rec.RecordFetchAttempt("http", "roster.csv", 15*time.Millisecond, errors.New("boom"))

	if got := rec.Fetches("http"); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
	if got := rec.FetchErrors("http"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("http")
	if snap.LastFetchLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastFetchLatency)
	}
	if other := rec.Snapshot("file"); other != (Snapshot{}) {
		t.Fatalf("expected empty snapshot for unknown source, got %+v", other)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("http", 5*time.Second)
	rec.RecordRateLimit("http", 0)

	if got := rec.RateLimitHits("http"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.Snapshot("http").LastRetryAfter; got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksLoadCycles(t *testing.T) {
	rec := NewRecorder()
	rec.RecordLoadCycle(time.Millisecond, nil)
	rec.RecordLoadCycle(2*time.Millisecond, errors.New("boom"))

	loads := rec.Loads()
	if loads.Cycles != 2 || loads.Failures != 1 {
		t.Fatalf("unexpected load stats %+v", loads)
	}
	if loads.LastDuration != 2*time.Millisecond {
		t.Fatalf("expected last duration 2ms, got %s", loads.LastDuration)
	}
}

func TestRecorderKeepsLatestBoardSize(t *testing.T) {
	rec := NewRecorder()
	rec.RecordBoardSize(8, 20)
	rec.RecordBoardSize(3, 5)

	loads := rec.Loads()
	if loads.Timeslots != 3 || loads.Teams != 5 {
		t.Fatalf("expected latest board size 3/5, got %+v", loads)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordFetchAttempt("http", "roster.csv", time.Millisecond, nil)
	rec.RecordRateLimit("http", time.Second)
	rec.RecordLoadCycle(time.Millisecond, nil)
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	rec.RecordBoardSize(1, 1)
	if rec.Fetches("http") != 0 || rec.Loads().Cycles != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}

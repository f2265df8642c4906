package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
)

func board(team string) schedule.Board {
	labels := schedule.NewLabels([]string{"Slot A"})
	sched := schedule.NewScheduleTable(labels)
	sched["Slot A"] = []string{team}
	return schedule.NewBoard(labels, sched, nil, time.Time{})
}

func TestMemoryStoreStartsLoading(t *testing.T) {
	s := NewMemoryStore()
	if s.State() != StateLoading {
		t.Fatalf("expected loading state, got %s", s.State())
	}
	if _, ok := s.Board(); ok {
		t.Fatalf("expected no board before first load")
	}
}

func TestMemoryStoreSetBoard(t *testing.T) {
	s := NewMemoryStore()
	s.SetBoard(board("Team Alpha"))

	got, ok := s.Board()
	if !ok {
		t.Fatalf("expected board after SetBoard")
	}
	if teams := got.Teams("Slot A"); len(teams) != 1 || teams[0] != "Team Alpha" {
		t.Fatalf("unexpected teams %v", teams)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready state, got %s", s.State())
	}
}

func TestMemoryStoreFailureBeforeLoad(t *testing.T) {
	s := NewMemoryStore()
	s.SetFailure(errors.New("failed to load schedule document: boom"))

	if s.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", s.State())
	}
	if s.LastError() == nil {
		t.Fatalf("expected last error")
	}
}

func TestMemoryStoreFailureKeepsExistingBoard(t *testing.T) {
	s := NewMemoryStore()
	s.SetBoard(board("Team Alpha"))
	s.SetFailure(errors.New("reload failed"))

	if s.State() != StateReady {
		t.Fatalf("expected board to remain servable, got %s", s.State())
	}
	got, _ := s.Board()
	if got.Teams("Slot A")[0] != "Team Alpha" {
		t.Fatalf("expected previous board to be kept")
	}
	if s.LastError() == nil {
		t.Fatalf("expected reload error to be recorded")
	}

	s.SetBoard(board("Team Beta"))
	if s.LastError() != nil {
		t.Fatalf("expected successful load to clear error")
	}
}

func TestMemoryStoreIgnoresNilFailure(t *testing.T) {
	s := NewMemoryStore()
	s.SetFailure(nil)
	if s.State() != StateLoading {
		t.Fatalf("expected nil failure to be ignored")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetBoard(board("Team Alpha"))
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Board()
			_ = s.State()
		}()
	}
	wg.Wait()
	if s.State() != StateReady {
		t.Fatalf("expected ready state after concurrent writes")
	}
}

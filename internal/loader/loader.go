package loader

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/metrics"
	"github.com/preston-bernstein/schedule-board-service/internal/providers"
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
)

// Config wires a Loader.
type Config struct {
	Source           providers.DocumentSource
	ScheduleDocument string
	RosterDocument   string
	Labels           []schedule.TimeslotLabel
	Logger           *slog.Logger
	Recorder         *metrics.Recorder
}

// Loader fetches both CSV documents and assembles a Board.
type Loader struct {
	source       providers.DocumentSource
	scheduleName string
	rosterName   string
	labels       []schedule.TimeslotLabel
	logger       *slog.Logger
	recorder     *metrics.Recorder
	now          func() time.Time
}

func New(cfg Config) *Loader {
	return &Loader{
		source:       cfg.Source,
		scheduleName: cfg.ScheduleDocument,
		rosterName:   cfg.RosterDocument,
		labels:       append([]schedule.TimeslotLabel(nil), cfg.Labels...),
		logger:       cfg.Logger,
		recorder:     cfg.Recorder,
		now:          time.Now,
	}
}

// Load fetches the schedule and roster concurrently and parses them. The first
// fetch failure cancels the sibling fetch and is returned as a *LoadFailure.
func (l *Loader) Load(ctx context.Context) (schedule.Board, error) {
	start := time.Now()
	board, err := l.load(ctx)
	l.recorder.RecordLoadCycle(time.Since(start), err)

	logger := logging.FromContext(ctx, l.logger)
	if err != nil {
		logging.Error(logger, "board load failed", err,
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		return schedule.Board{}, err
	}
	l.recorder.RecordBoardSize(len(board.Labels()), board.TeamCount())
	logging.Info(logger, "board loaded",
		slog.Int(logging.FieldTimeslots, len(board.Labels())),
		slog.Int(logging.FieldTeams, board.TeamCount()),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return board, nil
}

func (l *Loader) load(ctx context.Context) (schedule.Board, error) {
	if l.source == nil {
		return schedule.Board{}, &LoadFailure{Document: DocumentSchedule, cause: providers.ErrSourceUnavailable}
	}

	var scheduleText, rosterText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := l.fetch(gctx, DocumentSchedule, l.scheduleName)
		scheduleText = text
		return err
	})
	g.Go(func() error {
		text, err := l.fetch(gctx, DocumentRoster, l.rosterName)
		rosterText = text
		return err
	})
	if err := g.Wait(); err != nil {
		return schedule.Board{}, err
	}

	sched := schedule.ParseSchedule(scheduleText, l.labels)
	roster := schedule.ParseRoster(rosterText)

	logging.Debug(logging.FromContext(ctx, l.logger), "documents parsed",
		slog.Int(logging.FieldTimeslots, len(sched)),
		slog.Int(logging.FieldCount, len(roster)),
	)
	return schedule.NewBoard(l.labels, sched, roster, l.now()), nil
}

func (l *Loader) fetch(ctx context.Context, kind, name string) (string, error) {
	text, err := l.source.FetchDocument(ctx, name)
	if err != nil {
		return "", &LoadFailure{Document: kind, cause: err}
	}
	return text, nil
}

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/schedule-board-service/internal/app/board"
	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/poller"
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/sprites"
	"github.com/preston-bernstein/schedule-board-service/internal/store"
	"github.com/preston-bernstein/schedule-board-service/internal/web"
)

const (
	maxSprites = 500
	maxTicks   = 10000
)

// BoardService is the read side of the board used by the handlers.
type BoardService interface {
	State() store.State
	LastError() error
	View() (schedule.BoardView, error)
	Timeslot(index int) (schedule.TimeslotView, error)
	Members(team string) ([]string, error)
}

// PageRenderer renders the HTML board.
type PageRenderer interface {
	Render(w io.Writer, data web.PageData) error
}

// PageOptions is the static text around the grid.
type PageOptions struct {
	Title    string
	Subtitle string
	Footer   string
}

// Options tunes handler behaviour.
type Options struct {
	Page        PageOptions
	SpriteCount int
}

// Handler wires HTTP routes to the board service.
type Handler struct {
	svc      BoardService
	renderer PageRenderer
	logger   *slog.Logger
	statusFn func() poller.Status
	opts     Options
	seed     func() int64
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc BoardService, renderer PageRenderer, logger *slog.Logger, statusFn func() poller.Status, opts Options) *Handler {
	return &Handler{
		svc:      svc,
		renderer: renderer,
		logger:   logger,
		statusFn: statusFn,
		opts:     opts,
		seed:     func() int64 { return time.Now().UnixNano() },
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Page renders the HTML board, or the loading/error message before a board exists.
func (h *Handler) Page(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	data := web.PageData{
		Title:       h.opts.Page.Title,
		Subtitle:    h.opts.Page.Subtitle,
		Footer:      h.opts.Page.Footer,
		SpriteCount: h.opts.SpriteCount,
	}

	status := nethttp.StatusOK
	switch h.svc.State() {
	case store.StateLoading:
		data.State, data.Message = web.StateLoading, web.LoadingMessage
		status = nethttp.StatusServiceUnavailable
	case store.StateFailed:
		data.State, data.Message = web.StateFailed, web.ErrorMessage
		status = nethttp.StatusServiceUnavailable
		logging.Warn(logger, "serving error page", logging.Err(h.svc.LastError()))
	default:
		view, err := h.svc.View()
		if err != nil {
			data.State, data.Message = web.StateFailed, web.ErrorMessage
			status = nethttp.StatusServiceUnavailable
			break
		}
		data.State = web.StateReady
		data.Board = view
	}

	writeHTML(w, status, func(out io.Writer) error {
		return h.renderer.Render(out, data)
	}, logger)
}

// Board returns every timeslot with its teams and their members.
func (h *Handler) Board(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.View()
	if err != nil {
		h.unavailable(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// Timeslot returns one slot by its 0-based index.
func (h *Handler) Timeslot(w nethttp.ResponseWriter, r *nethttp.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid timeslot index", h.logger)
		return
	}
	slot, err := h.svc.Timeslot(index)
	switch {
	case errors.Is(err, board.ErrTimeslotNotFound):
		writeError(w, r, nethttp.StatusNotFound, "timeslot not found", h.logger)
		return
	case err != nil:
		h.unavailable(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, slot, h.logger)
}

// Members returns a team's members. An unknown team yields an empty list.
func (h *Handler) Members(w nethttp.ResponseWriter, r *nethttp.Request) {
	team, err := pathParam(r, "team")
	team = strings.TrimSpace(team)
	if err != nil || team == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team name", h.logger)
		return
	}
	members, err := h.svc.Members(team)
	if err != nil {
		h.unavailable(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, schedule.TeamView{Name: team, Members: members}, h.logger)
}

// pathParam returns a decoded route parameter. chi matches on RawPath when the
// request carries one, and only then is the captured segment still escaped.
func pathParam(r *nethttp.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

type spritesResponse struct {
	Seed    int64            `json:"seed"`
	Ticks   int              `json:"ticks"`
	Sprites []sprites.Sprite `json:"sprites"`
}

// Sprites returns a freshly seeded arena; ?count and ?seed override the
// defaults and ?ticks advances it by that many step intervals.
func (h *Handler) Sprites(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()

	count := h.opts.SpriteCount
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxSprites {
			writeError(w, r, nethttp.StatusBadRequest, "count must be between 0 and "+strconv.Itoa(maxSprites), h.logger)
			return
		}
		count = n
	}

	seed := h.seed()
	if raw := q.Get("seed"); raw != "" {
		s, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid seed", h.logger)
			return
		}
		seed = s
	}

	ticks := 0
	if raw := q.Get("ticks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxTicks {
			writeError(w, r, nethttp.StatusBadRequest, "ticks must be between 0 and "+strconv.Itoa(maxTicks), h.logger)
			return
		}
		ticks = n
	}

	arena := sprites.NewArena(count, rand.New(rand.NewSource(seed)))
	arena.Advance(ticks, time.UnixMilli(0))
	writeJSON(w, nethttp.StatusOK, spritesResponse{Seed: seed, Ticks: ticks, Sprites: arena.Sprites}, h.logger)
}

func (h *Handler) unavailable(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	logging.Warn(loggerFromContext(r, h.logger), "board unavailable", logging.Err(err))
	writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
}

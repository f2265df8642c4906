// Package web renders the schedule board page and serves its static assets.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/sprites"
)

// Messages shown instead of the board.
const (
	LoadingMessage = "Loading schedule..."
	ErrorMessage   = "Failed to load schedule data. Please try again."
)

// Page states understood by the template.
const (
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData is everything the board template needs.
type PageData struct {
	Title       string
	Subtitle    string
	Footer      string
	State       string
	Message     string
	SpriteCount int
	Board       schedule.BoardView
}

func (d PageData) StepMillis() int64 { return sprites.StepInterval.Milliseconds() }
func (d PageData) FlapMillis() int64 { return sprites.FlapInterval.Milliseconds() }

// Renderer executes the board template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("board.html").Funcs(template.FuncMap{
		"even": func(i int) bool { return i%2 == 0 },
		"json": toJSON,
	}).ParseFS(templateFS, "templates/board.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page to w. The template is executed into a buffer first
// so a template error never produces a half-written page.
func (r *Renderer) Render(w io.Writer, data PageData) error {
	if data.State == "" {
		data.State = StateReady
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("web: render board: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded CSS and JS under the stripped prefix.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

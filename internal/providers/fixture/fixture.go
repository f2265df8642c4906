package fixture

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
)

const (
	// ScheduleDocument and RosterDocument name the embedded sample CSVs.
	ScheduleDocument = "schedule.csv"
	RosterDocument   = "roster.csv"
)

//go:embed data/*.csv
var documents embed.FS

// Source serves a deterministic sample schedule and roster, useful for local
// runs and tests. Unknown names fall back by kind so configured asset file
// names still resolve.
type Source struct {
	files   fs.FS
	aliases map[string]string
}

// New creates a fixture source. scheduleName and rosterName are the configured
// document names that should map onto the embedded samples.
func New(scheduleName, rosterName string) *Source {
	aliases := map[string]string{
		ScheduleDocument: ScheduleDocument,
		RosterDocument:   RosterDocument,
	}
	if scheduleName != "" {
		aliases[scheduleName] = ScheduleDocument
	}
	if rosterName != "" {
		aliases[rosterName] = RosterDocument
	}
	sub, _ := fs.Sub(documents, "data")
	return &Source{files: sub, aliases: aliases}
}

// FetchDocument returns the embedded document registered under name.
func (s *Source) FetchDocument(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file, ok := s.aliases[name]
	if !ok {
		return "", fmt.Errorf("fixture: unknown document %q: %w", name, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(s.files, file)
	if err != nil {
		return "", fmt.Errorf("fixture: %w", err)
	}
	return string(data), nil
}

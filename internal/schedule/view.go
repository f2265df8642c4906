package schedule

import "time"

// TeamView is a scheduled team with its members resolved from the roster.
type TeamView struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// TimeslotView is one column of the board.
type TimeslotView struct {
	Index int        `json:"index"`
	Label string     `json:"label"`
	Teams []TeamView `json:"teams"`
}

// BoardView is the payload returned by /api/board and rendered by the page.
type BoardView struct {
	LoadedAt  string         `json:"loadedAt"`
	Labels    []string       `json:"labels"`
	Timeslots []TimeslotView `json:"timeslots"`
}

// View resolves every slot's teams against the roster, in label order.
func (b Board) View() BoardView {
	view := BoardView{
		Labels:    make([]string, 0, len(b.labels)),
		Timeslots: make([]TimeslotView, 0, len(b.labels)),
	}
	if !b.loadedAt.IsZero() {
		view.LoadedAt = b.loadedAt.UTC().Format(time.RFC3339)
	}
	for i, label := range b.labels {
		view.Labels = append(view.Labels, string(label))
		view.Timeslots = append(view.Timeslots, b.Timeslot(i, label))
	}
	return view
}

// Timeslot resolves a single slot.
func (b Board) Timeslot(index int, label TimeslotLabel) TimeslotView {
	teams := b.Teams(label)
	slot := TimeslotView{
		Index: index,
		Label: string(label),
		Teams: make([]TeamView, 0, len(teams)),
	}
	for _, team := range teams {
		slot.Teams = append(slot.Teams, TeamView{Name: team, Members: b.Members(team)})
	}
	return slot
}

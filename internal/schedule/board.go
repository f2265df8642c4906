package schedule

import "time"

// Board is the immutable result of one successful load: the ordered labels,
// the schedule and roster tables, and when they were built.
type Board struct {
	labels   []TimeslotLabel
	schedule ScheduleTable
	roster   RosterTable
	loadedAt time.Time
}

// NewBoard copies its inputs so later mutation by the caller cannot leak in.
// Every label is guaranteed a schedule entry.
func NewBoard(labels []TimeslotLabel, sched ScheduleTable, roster RosterTable, loadedAt time.Time) Board {
	s := NewScheduleTable(labels)
	for k, v := range sched {
		s[k] = cloneStrings(v)
	}
	return Board{
		labels:   append([]TimeslotLabel(nil), labels...),
		schedule: s,
		roster:   roster.Clone(),
		loadedAt: loadedAt,
	}
}

// Labels returns the configured timeslot order.
func (b Board) Labels() []TimeslotLabel {
	return append([]TimeslotLabel(nil), b.labels...)
}

// Teams returns the teams presenting in a slot (empty on miss).
func (b Board) Teams(label TimeslotLabel) []string {
	return b.schedule.Teams(label)
}

// Members returns a team's members (empty on miss).
func (b Board) Members(team string) []string {
	return b.roster.Members(team)
}

// Schedule returns a copy of the schedule table.
func (b Board) Schedule() ScheduleTable {
	return b.schedule.Clone()
}

// Roster returns a copy of the roster table.
func (b Board) Roster() RosterTable {
	return b.roster.Clone()
}

// LoadedAt reports when the board was assembled.
func (b Board) LoadedAt() time.Time {
	return b.loadedAt
}

// TeamCount is the number of scheduled team entries across all slots.
func (b Board) TeamCount() int {
	n := 0
	for _, teams := range b.schedule {
		n += len(teams)
	}
	return n
}

// IsZero reports whether the board was never built.
func (b Board) IsZero() bool {
	return b.schedule == nil && b.roster == nil
}

package schedule

// ScheduleTable maps each timeslot to the team names presenting in it, in CSV row order.
type ScheduleTable map[TimeslotLabel][]string

// RosterTable maps a team name to its member names, in declaration order.
type RosterTable map[string][]string

// NewScheduleTable returns a table with an empty entry for every label.
func NewScheduleTable(labels []TimeslotLabel) ScheduleTable {
	table := make(ScheduleTable, len(labels))
	for _, l := range labels {
		table[l] = []string{}
	}
	return table
}

// Teams returns a copy of the teams in the slot; unknown slots yield an empty slice.
func (t ScheduleTable) Teams(label TimeslotLabel) []string {
	return cloneStrings(t[label])
}

// Members returns a copy of the team's members; unknown teams yield an empty slice.
func (t RosterTable) Members(team string) []string {
	return cloneStrings(t[team])
}

// Clone returns a deep copy of the table.
func (t ScheduleTable) Clone() ScheduleTable {
	out := make(ScheduleTable, len(t))
	for k, v := range t {
		out[k] = cloneStrings(v)
	}
	return out
}

// Clone returns a deep copy of the table.
func (t RosterTable) Clone() RosterTable {
	out := make(RosterTable, len(t))
	for k, v := range t {
		out[k] = cloneStrings(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

package schedule

import (
	"strings"

	"github.com/preston-bernstein/schedule-board-service/internal/csvrow"
)

// ParseSchedule builds a ScheduleTable from the schedule CSV text. The first
// line names the columns; every row contributes its non-blank cell under each
// label column. Short rows read missing cells as empty, so malformed input
// degrades to fewer entries instead of an error.
func ParseSchedule(text string, labels []TimeslotLabel) ScheduleTable {
	table := NewScheduleTable(labels)

	lines := strings.Split(text, "\n")
	headers := parseHeader(lines[0])

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record := buildRecord(headers, csvrow.Split(line))
		for _, label := range labels {
			value, ok := record[string(label)]
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			table[label] = append(table[label], value)
		}
	}
	return table
}

// ParseRoster builds a RosterTable from the roster CSV text. The header line is
// skipped; each row is `Team,"Member, Member, ..."`. Rows without a top-level
// comma are ignored and a repeated team replaces the earlier entry.
func ParseRoster(text string) RosterTable {
	table := make(RosterTable)

	lines := strings.Split(text, "\n")
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		idx := csvrow.TopLevelComma(line)
		if idx < 0 {
			continue
		}
		team := strings.TrimSpace(line[:idx])
		members := csvrow.Unquote(strings.TrimSpace(line[idx+1:]))
		table[team] = splitMembers(members)
	}
	return table
}

func parseHeader(line string) []string {
	raw := csvrow.Split(line)
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.TrimSpace(stripCR(h))
	}
	return headers
}

func buildRecord(headers, fields []string) map[string]string {
	record := make(map[string]string, len(headers))
	for i, h := range headers {
		value := ""
		if i < len(fields) {
			value = fields[i]
		}
		record[h] = stripCR(csvrow.Unquote(strings.TrimSpace(value)))
	}
	return record
}

// splitMembers keeps quote characters inside names; only a blank final entry is dropped.
func splitMembers(raw string) []string {
	parts := csvrow.Split(raw)
	members := make([]string, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 && p == "" {
			break
		}
		members = append(members, p)
	}
	return members
}

func stripCR(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}

package schedule

import "strings"

// TimeslotLabel identifies one fixed presentation slot, e.g. "April 22 (Tue) 2:40-4:00pm".
// Labels come from configuration and must match schedule CSV column names exactly.
type TimeslotLabel string

// NewLabels converts configured strings into labels, dropping blanks and repeats
// while keeping the configured order.
func NewLabels(raw []string) []TimeslotLabel {
	seen := make(map[string]struct{}, len(raw))
	labels := make([]TimeslotLabel, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(strings.ReplaceAll(r, "\r", ""))
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		labels = append(labels, TimeslotLabel(r))
	}
	return labels
}

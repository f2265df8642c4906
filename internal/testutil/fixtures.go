package testutil

import (
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
)

// Sample documents shaped like the real presentation exports.
const (
	SampleScheduleCSV = "Slot A,Slot B,Slot C\r\n" +
		"Team Alpha,Team Beta,\r\n" +
		"\"Team, Gamma\",,Team Delta\r\n"
	SampleRosterCSV = "Team,Members\r\n" +
		"Team Alpha,\"Alice, Bob\"\r\n" +
		"Team Beta,Carol\r\n" +
		"\"Team, Gamma\",\"Dan, Eve,\"\r\n"
)

// SampleLabels are the labels matching SampleScheduleCSV.
func SampleLabels() []schedule.TimeslotLabel {
	return schedule.NewLabels([]string{"Slot A", "Slot B", "Slot C"})
}

// SampleBoard parses the sample documents into a board loaded at BoardTime.
func SampleBoard() schedule.Board {
	labels := SampleLabels()
	return schedule.NewBoard(
		labels,
		schedule.ParseSchedule(SampleScheduleCSV, labels),
		schedule.ParseRoster(SampleRosterCSV),
		BoardTime,
	)
}

// Package csvrow splits single CSV lines the way the schedule exports are
// written: double quotes group commas into one field, but they are kept in the
// field text and doubled quotes ("") are not treated as escapes. Callers strip
// the outer quotes themselves with Unquote.
package csvrow

import "strings"

type scanState int

const (
	stateNormal scanState = iota
	stateInQuotes
)

const (
	quote = '"'
	comma = ','
)

// Split returns the fields of line in column order. The final field is always
// emitted, so an empty line yields one empty field.
func Split(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var current strings.Builder
	state := stateNormal

	for _, ch := range line {
		switch {
		case ch == quote:
			state = toggle(state)
			current.WriteRune(ch)
		case ch == comma && state == stateNormal:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, current.String())
}

// TopLevelComma returns the byte index of the first comma outside quotes, or -1.
func TopLevelComma(line string) int {
	state := stateNormal
	for i, ch := range line {
		switch {
		case ch == quote:
			state = toggle(state)
		case ch == comma && state == stateNormal:
			return i
		}
	}
	return -1
}

// Unquote strips one layer of surrounding double quotes.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return s[1 : len(s)-1]
	}
	return s
}

func toggle(s scanState) scanState {
	if s == stateInQuotes {
		return stateNormal
	}
	return stateInQuotes
}

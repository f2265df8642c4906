package loader

import (
	"errors"
	"fmt"
)

// Document kinds reported by LoadFailure.
const (
	DocumentSchedule = "schedule"
	DocumentRoster   = "roster"
)

// LoadFailure reports that one of the two CSV documents could not be fetched.
// No board is produced when a load fails.
type LoadFailure struct {
	Document string
	cause    error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("failed to load %s document: %v", e.Document, e.cause)
}

func (e *LoadFailure) Unwrap() error {
	return e.cause
}

// AsLoadFailure attempts to unwrap err into a LoadFailure.
func AsLoadFailure(err error) (*LoadFailure, bool) {
	var lf *LoadFailure
	if errors.As(err, &lf) {
		return lf, true
	}
	return nil, false
}

package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSourceUnavailable is returned when a wrapper has no inner source.
	ErrSourceUnavailable = errors.New("document source unavailable")
	// ErrDocumentTooLarge is returned instead of a truncated document.
	ErrDocumentTooLarge = errors.New("document exceeds size limit")
)

// StatusError captures a non-success HTTP response from a document source.
type StatusError struct {
	Source     string
	Document   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d fetching %q", e.Source, e.StatusCode, e.Document)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RateLimitError captures rate limit responses from upstream sources.
type RateLimitError struct {
	Source     string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "source rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var stErr *StatusError
	if errors.As(err, &stErr) {
		return stErr, true
	}
	return nil, false
}

// Package requestutil holds the small request helpers shared by the router
// middleware and the board handlers.
package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request ID in and out of the service.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidRequestID returns incoming when it is safe to echo back and log, or "".
func ValidRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return ""
}

// SanitizeRequestID keeps a valid incoming ID and mints a fresh one otherwise.
func SanitizeRequestID(incoming string) string {
	if id := ValidRequestID(incoming); id != "" {
		return id
	}
	return NewRequestID()
}

func NewRequestID() string {
	return uuid.NewString()
}

// ClientIP prefers the first X-Forwarded-For hop and drops the port from RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

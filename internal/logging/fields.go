package logging

import "log/slog"

// Structured log keys shared across packages.
const (
	FieldError      = "error"
	FieldService    = "service"
	FieldVersion    = "version"
	FieldSource     = "source"
	FieldDocument   = "document"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldTimeslots  = "timeslots"
	FieldTeams      = "teams"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends the service and version attributes that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}

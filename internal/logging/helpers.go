package logging

import "log/slog"

// The helpers below tolerate a nil logger so optional wiring never needs a
// guard at the call site.

func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs msg at error level, attaching err under FieldError when non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, Err(err))
	}
	logger.Error(msg, args...)
}

// Err is the attribute form of an error.
func Err(err error) slog.Attr {
	return slog.Any(FieldError, err)
}

// Package logx carries a charmbracelet logger through context.Context so
// that library packages log with whatever the command configured.
package logx

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w with "HH:MM:SS.00" timestamps.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Level maps the CLI switches to a log level. quiet wins over verbose.
func Level(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the attached logger or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

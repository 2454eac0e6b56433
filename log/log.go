// Package log provides a context-aware logrus logger for the installer.
package log

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	G = GetLogger

	// L is an alias for the standard logger.
	L = logrus.NewEntry(logrus.StandardLogger())
)

type (
	loggerKey struct{}
)

// WithLogger returns a new context with the provided logger. Use in
// combination with logger.WithField(s) for great effect.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the current logger from the context. If no logger is
// available, the default logger is returned.
func GetLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(loggerKey{})

	if logger == nil {
		return L
	}

	return logger.(*logrus.Entry)
}

// SetOutput sends the standard logger's output to w, as plain timestamped text.
func SetOutput(w io.Writer) {
	L.Logger.SetOutput(w)
	L.Logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetVerbose switches the standard logger between info and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		L.Logger.SetLevel(logrus.DebugLevel)
	} else {
		L.Logger.SetLevel(logrus.InfoLevel)
	}
}

package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/greenroomhq/runsheet/pkg/constants"
)

// WithLogger returns a new context carrying the request-scoped log entry.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the logger from the context. Falls back to the standard
// logger so library code never has to nil-check.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.(*logrus.Entry)
}

// WithRequestID returns a new context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, id)
}

// UseRequestID returns the request id from the context.
// If none is set, the second return value is false.
func UseRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(constants.RequestIDKey).(string)
	return id, ok
}

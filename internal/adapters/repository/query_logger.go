package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"

	"github.com/okian/podium/pkg/logger"
)

// queryLogger routes pgx trace output into the service logger.
type queryLogger struct {
	log logger.Logger
}

func newQueryLogger(l logger.Logger) *queryLogger {
	return &queryLogger{log: l}
}

// Log implements tracelog.Logger.
func (q *queryLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := make([]logger.Field, 0, len(data))
	for k, v := range data {
		fields = append(fields, logger.Any(k, v))
	}

	switch level {
	case tracelog.LogLevelError:
		q.log.Error(ctx, msg, fields...)
	case tracelog.LogLevelWarn:
		q.log.Warn(ctx, msg, fields...)
	case tracelog.LogLevelInfo:
		q.log.Info(ctx, msg, fields...)
	default:
		q.log.Debug(ctx, msg, fields...)
	}
}

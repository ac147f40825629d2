package logging

import "context"

type logDataKey struct{}

// WithLogData attaches a per-request LogData accumulator to the context.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey{}, logData)
}

// GetLogData returns the request's LogData, or nil when the request did not
// come through the logging middleware. Callers nil-check before use.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey{}).(*LogData)
	return logData
}

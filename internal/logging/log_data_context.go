package logging

import "context"

type logDataKeyType struct{}

var logDataKey logDataKeyType

// WithLogData attaches a LogData to the context so handlers further down can
// record timings and fields against the request's log entry.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey, logData)
}

// GetLogData returns the LogData attached to the context, or nil when the
// request did not pass through a logging wrapper.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey).(*LogData)
	return logData
}

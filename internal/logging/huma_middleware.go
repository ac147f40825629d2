package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// HumaMiddleware is the huma counterpart of LoggingWrapper. It attaches a
// fresh LogData to each request and emits one structured line when the
// operation completes.
func HumaMiddleware(log *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		ctx = huma.WithValue(ctx, logDataKey{}, logData)

		stopTimer := logData.AddTiming("duration")
		next(ctx)
		stopTimer()

		logData.AddData("path", ctx.URL().Path)
		logData.AddData("status", ctx.Status())
		logData.Log().Info("Handler.Complete")
	}
}

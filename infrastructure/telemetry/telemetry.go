// Package telemetry provides the write-only analytics and crash-report
// sinks. Both are log-backed: a hosted provider can replace them behind the
// same interfaces without touching the error handler.
package telemetry

import (
	"github.com/prasetyowira/kerjaku/constant"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
)

// Analytics records analytics events into the structured log.
type Analytics struct{}

// NewAnalytics creates the analytics sink.
func NewAnalytics() *Analytics {
	return &Analytics{}
}

// Event records one analytics event.
func (a *Analytics) Event(name string, params map[string]string) {
	data := map[string]interface{}{"event": name}
	for k, v := range params {
		data[k] = v
	}
	appLogger.Info("Analytics event", appLogger.LoggerInfo{
		ContextFunction: constant.CtxTelemetry,
		Data:            data,
	})
}

// CrashReporter records non-fatal crash reports into the structured log.
type CrashReporter struct{}

// NewCrashReporter creates the crash-report sink.
func NewCrashReporter() *CrashReporter {
	return &CrashReporter{}
}

// Record records one crash report.
func (c *CrashReporter) Record(err error) {
	appLogger.Error("Crash report recorded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxTelemetry,
		Data: map[string]interface{}{
			constant.DataData: err.Error(),
		},
	})
}

package recommend

import (
	"time"

	"go.uber.org/zap"
)

// CallEvent records metadata about a single recommendation request.
type CallEvent struct {
	Domains    int
	StatusCode int
	Latency    time.Duration
	Success    bool
	ErrorCode  string
}

// Observer receives events about recommendation calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger.Named("recommend")}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.Int("domains", event.Domains),
		zap.Int("status", event.StatusCode),
		zap.Int64("latency_ms", event.Latency.Milliseconds()),
	}
	if !event.Success {
		o.logger.Warn("recommendation_call", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Info("recommendation_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

package service

import (
	"context"
	"log/slog"

	"kottage-backend/internal/logger"
)

// NoopAnalytics drops every event. Used in tests and when analytics is
// disabled.
type NoopAnalytics struct{}

func (NoopAnalytics) Track(ctx context.Context, event string, attrs map[string]string) {}

// LogAnalytics writes events to the structured log. It stands in for a real
// analytics backend without reintroducing a process-wide singleton: the
// sink is built once at startup and passed to the services that need it.
type LogAnalytics struct {
	log *slog.Logger
}

func NewLogAnalytics() *LogAnalytics {
	return &LogAnalytics{log: logger.WithService("analytics")}
}

func (a *LogAnalytics) Track(ctx context.Context, event string, attrs map[string]string) {
	args := make([]any, 0, len(attrs)*2+2)
	args = append(args, "event", event)
	for k, v := range attrs {
		args = append(args, k, v)
	}
	a.log.InfoContext(ctx, "Analytics event", args...)
}

package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that logs every request outcome.
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with slog-based request logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	if err != nil {
		slog.Warn("llm request failed",
			"model", l.inner.ModelID(),
			"latency", latency,
			"error", err)
		return nil, err
	}

	slog.Debug("llm request served",
		"model", resp.Model,
		"latency", latency,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose labels the calls made with ctx (explanation, hint, ...) for logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider logs latency and outcome of every call.
type LoggingProvider struct {
	inner Provider
	log   *logrus.Logger
}

func WithLogging(p Provider, log *logrus.Logger) Provider {
	if log == nil {
		return p
	}
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	entry := l.log.WithFields(logrus.Fields{
		"model":      l.inner.ModelID(),
		"purpose":    PurposeFrom(ctx),
		"latency_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.WithField("chars", len(resp.Text)).Debug("llm request completed")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

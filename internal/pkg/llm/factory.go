package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	KindOpenAI = "openai"
	KindGemini = "gemini"
)

type Config struct {
	Kind    string
	APIKey  string
	Model   string
	BaseURL string
	Retry   RetryConfig
}

// New builds a provider wrapped with retry and logging. It returns
// ErrNotConfigured when no API key is set so callers can run on fallbacks.
func New(ctx context.Context, cfg Config, log *logrus.Logger) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	var p Provider
	switch strings.ToLower(cfg.Kind) {
	case KindOpenAI:
		p = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case KindGemini:
		gemini, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		p = gemini
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Kind)
	}

	return WithLogging(WithRetry(p, cfg.Retry), log), nil
}

package summarizer

import (
	"context"
	"fmt"
	"os"
	"time"

	"wiki-summary/config"
	"wiki-summary/httpclient"
	"wiki-summary/quota"
)

// NewBackend builds the inference backend selected by cfg.LLM.Provider.
// API keys come from the environment only.
func NewBackend(ctx context.Context, cfg config.AppConfig) (Backend, error) {
	llm := cfg.LLM
	switch llm.Provider {
	case "huggingface":
		client := httpclient.New(httpclient.Config{Timeout: cfg.LLMTimeout()})
		return NewHuggingFaceBackend(client, llm.BaseURL, llm.ModelName, os.Getenv("HF_TOKEN")), nil
	case "google":
		return NewGeminiBackend(ctx, os.Getenv("GEMINI_API_KEY"), llm.ModelName, llm.MaxOutputToken)
	case "anthropic":
		return NewAnthropicBackend(os.Getenv("ANTHROPIC_API_KEY"), llm.BaseURL, llm.ModelName, llm.MaxOutputToken)
	case "openai":
		return NewOpenAIBackend(os.Getenv("OPENAI_API_KEY"), llm.BaseURL, llm.ModelName, llm.MaxOutputToken)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llm.Provider)
	}
}

// QuotaBackend reserves a slot from the limiter before every call and bounds each call with timeout.
type QuotaBackend struct {
	next    Backend
	limiter *quota.SummaryQuotaLimiter
	timeout time.Duration
}

func WithQuota(next Backend, limiter *quota.SummaryQuotaLimiter, timeout time.Duration) *QuotaBackend {
	return &QuotaBackend{next: next, limiter: limiter, timeout: timeout}
}

func (b *QuotaBackend) Summarize(ctx context.Context, text, hint string) (string, error) {
	if b.limiter != nil {
		if err := b.limiter.Reserve(ctx); err != nil {
			return "", err
		}
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	return b.next.Summarize(ctx, text, hint)
}

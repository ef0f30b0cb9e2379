package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicBackend struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicBackend(apiKey, baseURL, model string, maxTokens int) (*AnthropicBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicBackend{client: &client, model: model, maxTokens: int64(maxTokens)}, nil
}

func (b *AnthropicBackend) Summarize(ctx context.Context, text, hint string) (string, error) {
	message, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: b.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemInstruction}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text, hint))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var sb strings.Builder
	for _, block := range message.Content {
		sb.WriteString(block.AsText().Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

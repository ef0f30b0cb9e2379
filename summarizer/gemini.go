package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiBackend struct {
	client         *genai.Client
	model          string
	maxOutputToken int32
}

func NewGeminiBackend(ctx context.Context, apiKey, model string, maxOutputToken int) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiBackend{client: client, model: model, maxOutputToken: int32(maxOutputToken)}, nil
}

func (b *GeminiBackend) Summarize(ctx context.Context, text, hint string) (string, error) {
	result, err := b.client.Models.GenerateContent(
		ctx,
		b.model,
		genai.Text(buildPrompt(text, hint)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			MaxOutputTokens:   b.maxOutputToken,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("gemini: empty response")
	}
	return result.Text(), nil
}

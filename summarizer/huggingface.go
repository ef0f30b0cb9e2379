package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wiki-summary/httpclient"
	"wiki-summary/retry"
)

const HuggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceStatusError is a non-2xx answer from the inference API.
// 503 is returned while the model is still loading.
type HuggingFaceStatusError struct {
	StatusCode int
	Message    string
}

func (e *HuggingFaceStatusError) Error() string {
	return fmt.Sprintf("huggingface: status %d: %s", e.StatusCode, e.Message)
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	Truncation string `json:"truncation,omitempty"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// HuggingFaceBackend calls the summarization task of the Hugging Face Inference API
// (default model facebook/bart-large-cnn).
type HuggingFaceBackend struct {
	client *httpclient.BaseClient
	model  string
	token  string
	retry  retry.Config
}

func NewHuggingFaceBackend(httpClient *http.Client, baseURL, model, token string) *HuggingFaceBackend {
	if baseURL == "" {
		baseURL = HuggingFaceBaseURL
	}
	return &HuggingFaceBackend{
		client: httpclient.NewBaseClientWithClient(httpClient, baseURL),
		model:  model,
		token:  token,
		retry: retry.Config{
			MaxRetries: 2,
			BaseDelay:  2 * time.Second,
			ShouldRetry: func(err error) bool {
				var se *HuggingFaceStatusError
				return errors.As(err, &se) && retry.HTTPStatusRetryable(se.StatusCode)
			},
		},
	}
}

func (b *HuggingFaceBackend) Summarize(ctx context.Context, text, hint string) (string, error) {
	inputs := text
	if hint != "" {
		inputs = buildPrompt(text, hint)
	}
	payload, err := json.Marshal(hfRequest{
		Inputs:     inputs,
		Parameters: hfParameters{Truncation: "only_first"},
	})
	if err != nil {
		return "", err
	}

	var out string
	err = retry.WithBackoff(ctx, b.retry, func(ctx context.Context) error {
		s, err := b.call(ctx, payload)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

func (b *HuggingFaceBackend) call(ctx context.Context, payload []byte) (string, error) {
	req, err := b.client.NewRequest(ctx, http.MethodPost, "models/"+b.model, nil, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("huggingface: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e hfError
		msg := string(body)
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return "", &HuggingFaceStatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	var summaries []hfSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(summaries) == 0 {
		return "", errors.New("huggingface: empty response")
	}
	return summaries[0].SummaryText, nil
}

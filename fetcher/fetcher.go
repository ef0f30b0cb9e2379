// Package fetcher retrieves raw article HTML for the summary pipeline.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wiki-summary/config"
	"wiki-summary/httpclient"
	"wiki-summary/renderer"
	"wiki-summary/retry"
)

// maxBodyBytes caps a fetched page. Long wikipedia articles are well under this.
const maxBodyBytes = 10 << 20

// ErrFetch marks every failure to retrieve a page.
var ErrFetch = errors.New("fetch failed")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool { return target == ErrFetch }

// Fetcher returns the raw bytes of the page at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// New builds the fetcher selected by cfg.Fetch.Mode.
func New(cfg config.AppConfig) Fetcher {
	if cfg.Fetch.Mode == "browser" {
		return NewBrowserFetcher(renderer.Options{
			ChromePath: cfg.Fetch.ChromePath,
			Timeout:    cfg.FetchTimeout(),
		})
	}
	client := httpclient.New(httpclient.Config{
		Timeout:   cfg.FetchTimeout(),
		UserAgent: cfg.Fetch.UserAgent,
	})
	return NewHTTPFetcher(client, retry.Config{
		MaxRetries:  cfg.Fetch.MaxRetries,
		BaseDelay:   500 * time.Millisecond,
		ShouldRetry: IsRetryable,
	})
}

// HTTPFetcher fetches pages with a plain HTTP GET, retrying 5xx/429 and transport errors.
type HTTPFetcher struct {
	client *http.Client
	retry  retry.Config
}

func NewHTTPFetcher(client *http.Client, retryCfg retry.Config) *HTTPFetcher {
	if client == nil {
		client = httpclient.NewDefault()
	}
	return &HTTPFetcher{client: client, retry: retryCfg}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.WithBackoff(ctx, f.retry, func(ctx context.Context) error {
		b, err := f.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	return body, nil
}

// IsRetryable reports whether a fetch error is worth another attempt:
// transport errors and 5xx/429 responses are, other statuses and cancellation are not.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return retry.HTTPStatusRetryable(statusErr.StatusCode)
	}
	return true
}

// BrowserFetcher renders the page in headless chrome before returning it.
// Useful for sources that build their content client-side.
type BrowserFetcher struct {
	opts renderer.Options
}

func NewBrowserFetcher(opts renderer.Options) *BrowserFetcher {
	return &BrowserFetcher{opts: opts}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	html, err := renderer.RenderHTML(ctx, url, f.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: render %s: %w", ErrFetch, url, err)
	}
	return []byte(html), nil
}

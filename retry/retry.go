package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

// Config holds retry configuration
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	// ShouldRetry reports whether err is worth another attempt.
	// nil retries every error.
	ShouldRetry func(error) bool
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
	}
}

// WithBackoff executes a function with exponential backoff retry logic.
// The last error is returned wrapped so callers can still errors.Is/As it.
func WithBackoff(ctx context.Context, config Config, operation func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		err = operation(ctx)
		if err == nil {
			return nil
		}

		if config.ShouldRetry != nil && !config.ShouldRetry(err) {
			return err
		}

		if attempt == config.MaxRetries {
			break
		}

		// exponential backoff with jitter
		delay := config.BaseDelay * time.Duration(1<<attempt)
		if config.BaseDelay > 0 {
			delay += time.Duration(rand.Int64N(int64(config.BaseDelay)))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if config.MaxRetries == 0 {
		return err
	}
	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxRetries+1, err)
}

// HTTPStatusRetryable checks if an HTTP status code is retryable
func HTTPStatusRetryable(statusCode int) bool {
	// Retry on server errors (5xx) and rate limiting (429)
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
